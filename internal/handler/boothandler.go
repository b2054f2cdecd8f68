package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"fiveday-api/internal/logic"
	"fiveday-api/internal/svc"
)

func BootHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewBootLogic(r.Context(), svcCtx)
		resp, err := l.Boot()
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
