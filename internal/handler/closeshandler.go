package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"fiveday-api/internal/logic"
	"fiveday-api/internal/svc"
	"fiveday-api/internal/types"
)

func ClosesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ClosesRequest
		if !parseRequest(w, r, &req) {
			return
		}

		l := logic.NewClosesLogic(r.Context(), svcCtx)
		resp, err := l.Closes(&req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
