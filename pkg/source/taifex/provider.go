package taifex

import (
	"net/http"
	"time"

	"fiveday-api/pkg/series"
	"fiveday-api/pkg/source"
	taifexclient "fiveday-api/pkg/taifex"
)

const (
	// TypeBulk reads the open-data daily market report feed.
	TypeBulk = "taifex_bulk"
	// TypeDaily walks the per-date futures daily market reports.
	TypeDaily = "taifex_daily"

	defaultBulkTimeout = 30 * time.Second
	defaultDayTimeout  = 15 * time.Second
)

type providerConfig struct {
	timeout       time.Duration
	lookback      int
	clock         func() time.Time
	clientOptions []taifexclient.Option
}

// ProviderOption customises a TAIFEX provider.
type ProviderOption func(*providerConfig)

// WithTimeout bounds the bulk download, or each per-date fetch of a walk.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(cfg *providerConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithLookback overrides how many calendar days a walk may inspect.
func WithLookback(days int) ProviderOption {
	return func(cfg *providerConfig) {
		if days > 0 {
			cfg.lookback = days
		}
	}
}

// WithClock overrides the time source used for fetch stamps and walk anchors.
func WithClock(clock func() time.Time) ProviderOption {
	return func(cfg *providerConfig) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}

// WithClientOptions passes options to the underlying TAIFEX client.
func WithClientOptions(options ...taifexclient.Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientOptions = append(cfg.clientOptions, options...)
	}
}

func newProviderConfig(defaultTimeout time.Duration, opts []ProviderOption) *providerConfig {
	cfg := &providerConfig{
		timeout:  defaultTimeout,
		lookback: series.DefaultLookback,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func init() {
	source.RegisterProvider(TypeBulk, func(name string, cfg *source.ProviderConfig) (source.Provider, error) {
		return NewBulkProvider(name, optionsFromConfig(cfg)...), nil
	})
	source.RegisterProvider(TypeDaily, func(name string, cfg *source.ProviderConfig) (source.Provider, error) {
		return NewDailyProvider(name, optionsFromConfig(cfg)...), nil
	})
}

func optionsFromConfig(cfg *source.ProviderConfig) []ProviderOption {
	var opts []ProviderOption
	var clientOpts []taifexclient.Option
	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}
	if cfg.Lookback > 0 {
		opts = append(opts, WithLookback(cfg.Lookback))
	}
	if cfg.HTTPTimeout > 0 {
		clientOpts = append(clientOpts, taifexclient.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, taifexclient.WithReportURL(cfg.BaseURL))
	}
	if cfg.BulkURL != "" {
		clientOpts = append(clientOpts, taifexclient.WithBulkURL(cfg.BulkURL))
	}
	if cfg.UserAgent != "" {
		clientOpts = append(clientOpts, taifexclient.WithUserAgent(cfg.UserAgent))
	}
	if cfg.RateLimit > 0 {
		clientOpts = append(clientOpts, taifexclient.WithRateLimit(cfg.RateLimit))
	}
	if len(clientOpts) > 0 {
		opts = append(opts, WithClientOptions(clientOpts...))
	}
	return opts
}
