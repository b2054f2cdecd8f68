package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"fiveday-api/internal/logic"
	"fiveday-api/internal/svc"
	"fiveday-api/internal/types"
)

func ArchiveHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ArchiveRequest
		if !parseRequest(w, r, &req) {
			return
		}

		l := logic.NewArchiveLogic(r.Context(), svcCtx)
		resp, err := l.Archive(&req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
