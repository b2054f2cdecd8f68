package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"fiveday-api/internal/config"
	"fiveday-api/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Symbols: %s", strings.Join(cfg.Symbols, ", ")),
		fmt.Sprintf("Series count: %d", cfg.Count),
		fmt.Sprintf("Postgres archive: %s", presence(cfg.Postgres.DSN != "")),
		fmt.Sprintf("Redis: %s", presence(cfg.RedisEnabled())),
		fmt.Sprintf("TTL (series): %ds", cfg.TTL.Series),
		fmt.Sprintf("Coalesce misses: %t", cfg.Coalesce),
		fmt.Sprintf("Cron schedules (night/day): %s / %s", orNone(cfg.Cron.Night), orNone(cfg.Cron.Day)),
		fmt.Sprintf("Cron secret: %s", presence(cfg.Cron.Secret != "")),
		fmt.Sprintf("Providers (live/cache): %s / %s", orDefault(cfg.LiveProvider), orDefault(cfg.CacheProvider)),
		sectionLine("Source config", cfg.Source),
	}

	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "disabled"
	}
	return s
}

func orDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return "default"
	}
	return s
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	switch {
	case strings.TrimSpace(section.File) != "":
		return fmt.Sprintf("%s: %s", name, section.File)
	case section.Value != nil:
		return fmt.Sprintf("%s: inline", name)
	default:
		return fmt.Sprintf("%s: built-in defaults", name)
	}
}
