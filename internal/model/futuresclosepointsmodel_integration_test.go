//go:build integration
// +build integration

package model_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"fiveday-api/internal/model"
	"fiveday-api/pkg/confkit"
)

func requireConn(t *testing.T) sqlx.SqlConn {
	t.Helper()
	confkit.LoadDotenvOnce()
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}
	conn := sqlx.NewSqlConn("pgx", dsn)

	migration, err := os.ReadFile(filepath.Join(confkit.MustProjectPath("migrations"), "001_futures_close_points.sql"))
	require.NoError(t, err)
	_, err = conn.Exec(string(migration))
	require.NoError(t, err)
	return conn
}

func TestFuturesClosePointsUpsertAndFindRecent(t *testing.T) {
	conn := requireConn(t)
	m := model.NewFuturesClosePointsModel(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	symbol := "ITEST"
	_, err := conn.ExecCtx(ctx, `DELETE FROM public.futures_close_points WHERE symbol = $1`, symbol)
	require.NoError(t, err)

	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	rows := []*model.FuturesClosePoints{
		{Symbol: symbol, Session: 1, TradeDate: day(3), Close: 17500, ContractMonth: "202501", Volume: 100},
		{Symbol: symbol, Session: 1, TradeDate: day(2), Close: 17400, ContractMonth: "202501", Volume: 90},
	}
	require.NoError(t, m.UpsertBatch(ctx, rows))

	rows[0].Close = 17555
	require.NoError(t, m.UpsertBatch(ctx, rows[:1]))

	got, err := m.FindRecent(ctx, symbol, 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 17555, got[0].Close, 1e-9)
	assert.Equal(t, "202501", got[1].ContractMonth)

	one, err := m.FindOneBySymbolSessionTradeDate(ctx, symbol, 1, day(2))
	require.NoError(t, err)
	assert.Equal(t, int64(90), one.Volume)

	_, err = m.FindOneBySymbolSessionTradeDate(ctx, symbol, 0, day(2))
	assert.ErrorIs(t, err, model.ErrNotFound)
}
