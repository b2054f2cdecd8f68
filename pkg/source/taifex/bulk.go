package taifex

import (
	"context"
	"fmt"
	"time"

	"fiveday-api/pkg/series"
	"fiveday-api/pkg/source"
	taifexclient "fiveday-api/pkg/taifex"
)

// BulkProvider builds series from the open-data bulk feed with one download.
type BulkProvider struct {
	name    string
	client  *taifexclient.Client
	timeout time.Duration
	clock   func() time.Time
}

var _ source.Provider = (*BulkProvider)(nil)

// NewBulkProvider constructs a bulk feed provider.
func NewBulkProvider(name string, opts ...ProviderOption) *BulkProvider {
	cfg := newProviderConfig(defaultBulkTimeout, opts)
	return &BulkProvider{
		name:    name,
		client:  taifexclient.NewClient(cfg.clientOptions...),
		timeout: cfg.timeout,
		clock:   cfg.clock,
	}
}

// Name implements source.Provider.
func (p *BulkProvider) Name() string { return p.name }

// Closes implements source.Provider. Upstream failures and feed layout
// changes are returned as errors.
func (p *BulkProvider) Closes(ctx context.Context, req series.Request) (*series.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	text, err := p.client.FetchBulk(ctx)
	if err != nil {
		return nil, err
	}
	feed, err := taifexclient.ParseFeed(text)
	if err != nil {
		return nil, err
	}
	fields, err := taifexclient.ResolveFields(feed.Header, taifexclient.BulkFieldSpecs)
	if err != nil {
		return nil, fmt.Errorf("taifex bulk %s: %w", req.Symbol, err)
	}

	feedRows := feed.Rows(req.Symbol, req.Session.AfterHours(), fields)
	rows := make([]series.DailyRow, len(feedRows))
	for i, r := range feedRows {
		rows[i] = series.DailyRow{
			Date:          r.Date,
			ContractMonth: r.ContractMonth,
			Close:         r.Close,
			Volume:        r.Volume,
		}
	}
	points := series.SelectMainByDate(rows, series.ClampCount(req.Count), req.Anchor)
	return series.NewResult(req.Symbol, req.Session, p.clock(), points), nil
}
