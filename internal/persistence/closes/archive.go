package closespersist

import (
	"context"
	"fmt"
	"time"

	"fiveday-api/internal/model"
	"fiveday-api/pkg/series"
)

// Archiver mirrors computed series into Postgres, one row per trading day.
type Archiver struct {
	model model.FuturesClosePointsModel
}

func NewArchiver(m model.FuturesClosePointsModel) *Archiver {
	if m == nil {
		return nil
	}
	return &Archiver{model: m}
}

// Archive upserts every point of res.
func (a *Archiver) Archive(ctx context.Context, res *series.Result) error {
	if a == nil || res == nil || len(res.Points) == 0 {
		return nil
	}
	rows := make([]*model.FuturesClosePoints, 0, len(res.Points))
	for _, p := range res.Points {
		day, err := time.ParseInLocation(series.DateLayout, p.Date, series.Taipei)
		if err != nil {
			return fmt.Errorf("closespersist: archive %s date %q: %w", res.Symbol, p.Date, err)
		}
		rows = append(rows, &model.FuturesClosePoints{
			Symbol:        res.Symbol,
			Session:       int64(res.Session),
			TradeDate:     day,
			Close:         p.Close,
			ContractMonth: p.ContractMonth,
			Volume:        p.Volume,
		})
	}
	return a.model.UpsertBatch(ctx, rows)
}

// Recent reads up to limit archived points, newest first.
func (a *Archiver) Recent(ctx context.Context, symbol string, session series.Session, limit int) ([]series.ClosePoint, error) {
	if a == nil {
		return nil, nil
	}
	rows, err := a.model.FindRecent(ctx, symbol, int64(session), limit)
	if err != nil {
		return nil, err
	}
	points := make([]series.ClosePoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, series.ClosePoint{
			Date:          row.TradeDate.Format(series.DateLayout),
			Close:         row.Close,
			ContractMonth: row.ContractMonth,
			Volume:        row.Volume,
		})
	}
	return points, nil
}
