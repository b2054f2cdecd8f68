package logic

import (
	"context"
	"crypto/subtle"

	"github.com/zeromicro/go-zero/core/logx"

	closespersist "fiveday-api/internal/persistence/closes"
	"fiveday-api/internal/svc"
	"fiveday-api/internal/types"
	"fiveday-api/pkg/series"
)

const refreshNight = "night"

type CronNightLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCronNightLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CronNightLogic {
	return &CronNightLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// CronNight refreshes the after-hours series of every allowlisted symbol.
func (l *CronNightLogic) CronNight(authorization string) (resp *types.RefreshResponse, err error) {
	if !Authorized(l.svcCtx.Config.Cron.Secret, authorization) {
		return nil, ErrUnauthorized
	}
	outcomes := l.svcCtx.Closes.RefreshAll(l.ctx, l.svcCtx.Config.Symbols, series.SessionAfterHours)
	return RefreshReport(refreshNight, outcomes), nil
}

// Authorized reports whether header carries "Bearer <secret>". An empty
// secret authorizes nothing.
func Authorized(secret, header string) bool {
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(header), []byte("Bearer "+secret)) == 1
}

// RefreshReport renders refresh outcomes. The report is ok even when single
// symbols failed.
func RefreshReport(kind string, outcomes []closespersist.Outcome) *types.RefreshResponse {
	results := make([]types.RefreshResult, 0, len(outcomes))
	for _, o := range outcomes {
		r := types.RefreshResult{Symbol: o.Symbol, MarketCode: o.Session, Ok: o.Err == nil}
		if o.Err != nil {
			r.Error = o.Err.Error()
		} else if o.Result != nil {
			r.FetchedAt = o.Result.FetchedAt
		}
		results = append(results, r)
	}
	return &types.RefreshResponse{Ok: true, Type: kind, Results: results}
}
