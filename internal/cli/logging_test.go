package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fiveday-api/internal/config"
)

func TestConfigSummaryLines(t *testing.T) {
	assert.Equal(t, []string{"Configuration: <nil>"}, ConfigSummaryLines(nil))

	cfg := &config.Config{
		Env:     "prod",
		Symbols: []string{"TX", "MTX"},
		Count:   30,
		TTL:     config.CacheTTL{Series: 691200},
		Cron:    config.CronConf{Secret: "x", Night: "30 5 * * 1-6"},
	}
	cfg.Source.File = "/etc/fiveday/source.yaml"

	lines := ConfigSummaryLines(cfg)
	assert.Contains(t, lines, "Environment: prod")
	assert.Contains(t, lines, "Symbols: TX, MTX")
	assert.Contains(t, lines, "Redis: not configured")
	assert.Contains(t, lines, "TTL (series): 691200s")
	assert.Contains(t, lines, "Cron schedules (night/day): 30 5 * * 1-6 / disabled")
	assert.Contains(t, lines, "Cron secret: configured")
	assert.Contains(t, lines, "Providers (live/cache): default / default")
	assert.Contains(t, lines, "Source config: /etc/fiveday/source.yaml")
}
