package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "fiveday-api/pkg/source/taifex"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sourceYAML = `
default: taifex_bulk
providers:
  taifex_bulk:
    type: taifex_bulk
    timeout: 20s
  taifex_daily:
    type: taifex_daily
    lookback: 120
    rate_limit: 2
`

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	dir := t.TempDir()
	path := writeFile(t, dir, "fiveday.yaml", "Name: fiveday-api\nHost: 127.0.0.1\nPort: 8888\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Env)
	assert.True(t, cfg.IsTestEnv())
	assert.Equal(t, DefaultSymbols, cfg.Symbols)
	assert.Equal(t, 30, cfg.Count)
	assert.Equal(t, 691200, cfg.TTL.Series)
	assert.Equal(t, "30 5 * * 1-6", cfg.Cron.Night)
	assert.Equal(t, "0 15 * * 1-5", cfg.Cron.Day)
	assert.False(t, cfg.Coalesce)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.Source.Loaded())
	assert.Equal(t, path, cfg.MainPath())
	assert.Equal(t, dir, cfg.BaseDir())
}

func TestLoadHydratesSource(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	t.Setenv("CRON_SECRET", "s3cret")
	dir := t.TempDir()
	writeFile(t, dir, "source.yaml", sourceYAML)
	path := writeFile(t, dir, "fiveday.yaml", `Name: fiveday-api
Host: 127.0.0.1
Port: 8888
Env: prod
Symbols: [tx, MTX, TX]
LiveProvider: taifex_daily
Cron:
  Secret: ${CRON_SECRET}
Source:
  File: source.yaml
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"TX", "MTX"}, cfg.Symbols)
	assert.Equal(t, "s3cret", cfg.Cron.Secret)
	require.True(t, cfg.Source.Loaded())
	assert.Equal(t, filepath.Join(dir, "source.yaml"), cfg.Source.File)
	assert.Equal(t, "taifex_bulk", cfg.Source.Value.Default)
	assert.Len(t, cfg.Source.Value.Providers, 2)
	assert.True(t, cfg.AllowsSymbol("MTX"))
	assert.False(t, cfg.AllowsSymbol("TMF"))
}

func TestLoadUnknownProvider(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	dir := t.TempDir()
	writeFile(t, dir, "source.yaml", sourceYAML)
	path := writeFile(t, dir, "fiveday.yaml",
		"Name: fiveday-api\nHost: 127.0.0.1\nPort: 8888\nCacheProvider: missing\nSource:\n  File: source.yaml\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cacheProvider")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Env: "dev", Count: 30, TTL: CacheTTL{Series: 60}, Cron: CronConf{Night: "30 5 * * 1-6"}}
	}

	cases := map[string]func(*Config){
		"env":      func(c *Config) { c.Env = "staging" },
		"ttl":      func(c *Config) { c.TTL.Series = -1 },
		"count":    func(c *Config) { c.Count = 61 },
		"symbol":   func(c *Config) { c.Symbols = []string{"TX-1"} },
		"schedule": func(c *Config) { c.Cron.Day = "every day" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultSymbols, cfg.Symbols)
}

func TestValidateFillsMissingSections(t *testing.T) {
	cfg := Config{Env: "prod", Count: 30}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultSeriesTTLSeconds, cfg.TTL.Series)
	assert.Equal(t, DefaultNightSchedule, cfg.Cron.Night)
	assert.Equal(t, DefaultDaySchedule, cfg.Cron.Day)
	assert.Equal(t, DefaultPostgresMaxOpen, cfg.Postgres.MaxOpen)
	assert.Equal(t, DefaultPostgresMaxIdle, cfg.Postgres.MaxIdle)

	kept := Config{
		Env:      "dev",
		Count:    10,
		TTL:      CacheTTL{Series: 60},
		Cron:     CronConf{Night: " 0 6 * * 2-6 ", Day: ScheduleDisabled},
		Postgres: PostgresConf{MaxOpen: 3, MaxIdle: 1},
	}
	require.NoError(t, kept.Validate())
	assert.Equal(t, 60, kept.TTL.Series)
	assert.Equal(t, "0 6 * * 2-6", kept.Cron.Night)
	assert.Empty(t, kept.Cron.Day)
	assert.Equal(t, 3, kept.Postgres.MaxOpen)
	assert.Equal(t, 1, kept.Postgres.MaxIdle)
}

func TestLoadWithoutOptionalSections(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	dir := t.TempDir()
	path := writeFile(t, dir, "fiveday.yaml", `Name: fiveday-api
Host: 127.0.0.1
Port: 8888
Cron:
  Secret: s3cret
  Day: "-"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSeriesTTLSeconds, cfg.TTL.Series)
	assert.Equal(t, "s3cret", cfg.Cron.Secret)
	assert.Equal(t, DefaultNightSchedule, cfg.Cron.Night)
	assert.Empty(t, cfg.Cron.Day)
}
