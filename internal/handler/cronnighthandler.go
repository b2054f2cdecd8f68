package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"fiveday-api/internal/logic"
	"fiveday-api/internal/svc"
)

func CronNightHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewCronNightLogic(r.Context(), svcCtx)
		resp, err := l.CronNight(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
