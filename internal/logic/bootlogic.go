package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"fiveday-api/internal/svc"
	"fiveday-api/internal/types"
	"fiveday-api/pkg/series"
)

const defaultSymbol = "TX"

type BootLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewBootLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BootLogic {
	return &BootLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Boot returns every cached series keyed "<symbol>:<marketCode>", warming
// misses on the way.
func (l *BootLogic) Boot() (resp *types.BootResponse, err error) {
	symbols := l.svcCtx.Config.Symbols
	boot := make(map[string]*series.Result, len(symbols)*len(series.Sessions))
	for _, session := range series.Sessions {
		for _, symbol := range symbols {
			res, err := l.svcCtx.Closes.GetOrWarm(l.ctx, symbol, session)
			if err != nil {
				return nil, err
			}
			boot[symbol+":"+session.String()] = res
		}
	}

	def := defaultSymbol
	if !l.svcCtx.Config.AllowsSymbol(def) && len(symbols) > 0 {
		def = symbols[0]
	}
	return &types.BootResponse{
		DefaultSymbol: def,
		DefaultMarket: series.SessionRegular.String(),
		Boot:          boot,
	}, nil
}
