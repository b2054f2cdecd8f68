package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"fiveday-api/internal/svc"
	"fiveday-api/internal/types"
	"fiveday-api/pkg/series"
)

type ArchiveLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewArchiveLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ArchiveLogic {
	return &ArchiveLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Archive reads close points mirrored to Postgres by earlier refreshes.
func (l *ArchiveLogic) Archive(req *types.ArchiveRequest) (resp *types.ArchiveResponse, err error) {
	if !l.svcCtx.Closes.Archived() {
		return nil, ErrArchiveDisabled
	}
	symbol, err := parseSymbol(&l.svcCtx.Config, req.Symbol)
	if err != nil {
		return nil, err
	}
	session, err := parseMarketCode(req.MarketCode)
	if err != nil {
		return nil, err
	}
	points, err := l.svcCtx.Closes.Recent(l.ctx, symbol, session, series.ClampCount(req.Days))
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []series.ClosePoint{}
	}
	return &types.ArchiveResponse{Symbol: symbol, MarketCode: session, Points: points}, nil
}
