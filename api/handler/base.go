package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/blr-world/hub-backend/api/transport"
	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

// respondError maps domain errors onto HTTP codes. Anything that is not a
// classified domain error is logged in full and answered with a generic
// internal message so downstream detail never reaches the caller.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	var dErr *domain.Error
	if !errors.As(err, &dErr) || dErr.Code == domain.ErrCodeInternal {
		h.logger.Error("request failed", zap.String("path", string(ctx.Path())), zap.Error(err))
		h.respondJSON(ctx, http.StatusInternalServerError,
			transport.NewError(string(domain.ErrCodeInternal), "internal error", nil))
		return
	}
	status := statusForCode(dErr.Code)
	h.respondJSON(ctx, status, transport.NewError(string(dErr.Code), dErr.Message, nil))
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrCodeForbidden:
		return http.StatusForbidden
	case domain.ErrCodeInvalid:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// callerID returns the identity injected by the auth middleware.
func callerID(ctx *fasthttp.RequestCtx) string {
	return string(ctx.Request.Header.Peek("X-User-ID"))
}

// callerRole returns the role claim injected by the auth middleware.
func callerRole(ctx *fasthttp.RequestCtx) domain.Role {
	return domain.ParseRole(string(ctx.Request.Header.Peek("X-User-Role")))
}
