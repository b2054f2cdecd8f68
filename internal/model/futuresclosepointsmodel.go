package model

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ FuturesClosePointsModel = (*customFuturesClosePointsModel)(nil)

type (
	// FuturesClosePointsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customFuturesClosePointsModel.
	FuturesClosePointsModel interface {
		futuresClosePointsModel
		// UpsertBatch writes rows in one transaction keyed by (symbol, session, trade_date).
		UpsertBatch(ctx context.Context, rows []*FuturesClosePoints) error
		// FindRecent returns up to limit rows, newest trade date first.
		FindRecent(ctx context.Context, symbol string, session int64, limit int) ([]*FuturesClosePoints, error)
	}

	customFuturesClosePointsModel struct {
		*defaultFuturesClosePointsModel
	}
)

// NewFuturesClosePointsModel returns a model for the database table.
func NewFuturesClosePointsModel(conn sqlx.SqlConn) FuturesClosePointsModel {
	return &customFuturesClosePointsModel{
		defaultFuturesClosePointsModel: newFuturesClosePointsModel(conn),
	}
}

func (m *customFuturesClosePointsModel) UpsertBatch(ctx context.Context, rows []*FuturesClosePoints) error {
	if len(rows) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
INSERT INTO %s (%s)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (symbol, session, trade_date) DO UPDATE SET
    close = EXCLUDED.close,
    contract_month = EXCLUDED.contract_month,
    volume = EXCLUDED.volume,
    updated_at = NOW();`, m.tableName(), futuresClosePointsRowsExpectAutoSet)
	return m.conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		for _, row := range rows {
			if _, err := session.ExecCtx(ctx, query,
				row.Symbol, row.Session, row.TradeDate, row.Close, row.ContractMonth, row.Volume,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (m *customFuturesClosePointsModel) FindRecent(ctx context.Context, symbol string, session int64, limit int) ([]*FuturesClosePoints, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := fmt.Sprintf("select %s from %s where symbol = $1 and session = $2 order by trade_date desc limit $3",
		futuresClosePointsRows, m.tableName())
	var resp []*FuturesClosePoints
	if err := m.conn.QueryRowsCtx(ctx, &resp, query, symbol, session, limit); err != nil {
		return nil, err
	}
	return resp, nil
}
