package handler

import (
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"fiveday-api/internal/logic"
	"fiveday-api/internal/types"
	"fiveday-api/pkg/taifex"
)

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		bad *logic.BadRequestError
		acq *taifex.AcquisitionError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &bad):
		status = http.StatusBadRequest
	case errors.Is(err, logic.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, logic.ErrArchiveDisabled):
		status = http.StatusServiceUnavailable
	case errors.Is(err, taifex.ErrSchemaMismatch), errors.As(err, &acq):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		logx.WithContext(r.Context()).Errorf("handler: %s %s status=%d err=%v", r.Method, r.URL.Path, status, err)
	}
	httpx.WriteJsonCtx(r.Context(), w, status, types.ErrorResponse{Error: err.Error()})
}

func parseRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.Parse(r, v); err != nil {
		httpx.WriteJsonCtx(r.Context(), w, http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}
