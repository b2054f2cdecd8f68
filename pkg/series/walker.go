package series

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

// DefaultLookback bounds how many calendar days one walk may inspect.
const DefaultLookback = 170

// DayQuote is the main contract close for one trading day.
type DayQuote struct {
	Close         float64
	ContractMonth string
	Volume        int64
}

// DayFetcher loads the close for a single calendar day. A nil quote with a
// nil error means the exchange did not trade that day.
type DayFetcher interface {
	FetchDay(ctx context.Context, symbol string, session Session, day time.Time) (*DayQuote, error)
}

// Walker assembles a series by stepping back one calendar day at a time.
type Walker struct {
	Fetcher  DayFetcher
	Lookback int
	Clock    func() time.Time
	Location *time.Location
}

// Walk collects up to ClampCount(req.Count) points, newest first. Fetch
// errors are logged and the day is skipped. Cancelling ctx ends the walk and
// returns the points gathered so far together with ctx.Err().
func (w *Walker) Walk(ctx context.Context, req Request) ([]ClosePoint, error) {
	need := ClampCount(req.Count)
	lookback := w.Lookback
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	loc := w.Location
	if loc == nil {
		loc = Taipei
	}
	start := req.Anchor
	if start.IsZero() {
		now := time.Now
		if w.Clock != nil {
			now = w.Clock
		}
		start = now()
	}
	day := StartOfDay(start, loc)

	points := make([]ClosePoint, 0, need)
	for attempt := 0; attempt < lookback && len(points) < need; attempt++ {
		if err := ctx.Err(); err != nil {
			return points, err
		}
		quote, err := w.Fetcher.FetchDay(ctx, req.Symbol, req.Session, day)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return points, ctxErr
			}
			logx.WithContext(ctx).Errorf("series: fetch day symbol=%s session=%s day=%s err=%v",
				req.Symbol, req.Session, day.Format(DateLayout), err)
		case quote != nil:
			points = append(points, ClosePoint{
				Date:          day.Format(DateLayout),
				Close:         quote.Close,
				ContractMonth: quote.ContractMonth,
				Volume:        quote.Volume,
			})
		}
		day = day.AddDate(0, 0, -1)
	}
	return points, nil
}
