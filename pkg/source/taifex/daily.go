package taifex

import (
	"context"
	"time"

	"fiveday-api/pkg/series"
	"fiveday-api/pkg/source"
	taifexclient "fiveday-api/pkg/taifex"
)

// DailyProvider walks back over per-date reports until enough trading days
// are collected.
type DailyProvider struct {
	name   string
	walker *series.Walker
	clock  func() time.Time
}

var _ source.Provider = (*DailyProvider)(nil)

// NewDailyProvider constructs a per-date report provider.
func NewDailyProvider(name string, opts ...ProviderOption) *DailyProvider {
	cfg := newProviderConfig(defaultDayTimeout, opts)
	return &DailyProvider{
		name: name,
		walker: &series.Walker{
			Fetcher:  &dayFetcher{client: taifexclient.NewClient(cfg.clientOptions...), timeout: cfg.timeout},
			Lookback: cfg.lookback,
			Clock:    cfg.clock,
			Location: series.Taipei,
		},
		clock: cfg.clock,
	}
}

// Name implements source.Provider.
func (p *DailyProvider) Name() string { return p.name }

// Closes implements source.Provider. Days that fail to load are skipped, so
// the only error is cancellation of ctx.
func (p *DailyProvider) Closes(ctx context.Context, req series.Request) (*series.Result, error) {
	points, err := p.walker.Walk(ctx, req)
	if err != nil {
		return nil, err
	}
	return series.NewResult(req.Symbol, req.Session, p.clock(), points), nil
}

type dayFetcher struct {
	client  *taifexclient.Client
	timeout time.Duration
}

func (f *dayFetcher) FetchDay(ctx context.Context, symbol string, session series.Session, day time.Time) (*series.DayQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	row, err := f.client.FetchDay(ctx, symbol, int(session), day)
	if err != nil || row == nil {
		return nil, err
	}
	return &series.DayQuote{Close: row.Close, ContractMonth: row.ContractMonth, Volume: row.Volume}, nil
}
