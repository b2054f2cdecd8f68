package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"fiveday-api/internal/svc"
	"fiveday-api/internal/types"
	"fiveday-api/pkg/series"
)

type SeriesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSeriesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SeriesLogic {
	return &SeriesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SeriesLogic) Series(req *types.SeriesRequest) (resp *series.Result, err error) {
	symbol, err := parseSymbol(&l.svcCtx.Config, req.Symbol)
	if err != nil {
		return nil, err
	}
	session, err := parseMarketCode(req.MarketCode)
	if err != nil {
		return nil, err
	}
	return l.svcCtx.Closes.GetOrWarm(l.ctx, symbol, session)
}
