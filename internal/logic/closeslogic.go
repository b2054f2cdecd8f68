package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"fiveday-api/internal/svc"
	"fiveday-api/internal/types"
	"fiveday-api/pkg/series"
)

type ClosesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewClosesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ClosesLogic {
	return &ClosesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Closes walks the per-date reports live. Results are never cached.
func (l *ClosesLogic) Closes(req *types.ClosesRequest) (resp *types.ClosesResponse, err error) {
	symbol, err := parseSymbol(&l.svcCtx.Config, req.Symbol)
	if err != nil {
		return nil, err
	}
	session, err := parseMarketCode(req.MarketCode)
	if err != nil {
		return nil, err
	}
	anchor, err := series.ParseAnchor(req.Start)
	if err != nil {
		return nil, badRequest("bad start")
	}

	res, err := l.svcCtx.LiveProvider.Closes(l.ctx, series.Request{
		Symbol:  symbol,
		Session: session,
		Count:   series.ClampCount(req.Days),
		Anchor:  anchor,
	})
	if err != nil {
		return nil, err
	}

	resp = &types.ClosesResponse{Result: *res}
	if req.Start != "" {
		start := req.Start
		resp.Start = &start
	}
	return resp, nil
}
