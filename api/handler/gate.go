package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/blr-world/hub-backend/api/transport"
	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/pkg/httpcontext"
)

// GateHandler lets the client shell delegate its navigation decisions. The
// evaluation is pure; privileged callables do not rely on it.
type GateHandler struct {
	baseHandler
}

func NewGateHandler(adapter *httpcontext.Adapter, logger *zap.Logger) *GateHandler {
	return &GateHandler{baseHandler: newBaseHandler(adapter, logger)}
}

// @Summary Evaluate a navigation against the caller's auth state
// @Tags gate
// @Router /api/v1/route-gate [post]
func (h *GateHandler) Evaluate(ctx *fasthttp.RequestCtx) {
	var req transport.RouteGateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Path == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	decision := domain.EvaluateRoute(req.Path, domain.GateState{
		Loading:       req.Loading,
		Authenticated: req.Authenticated,
		Role:          domain.ParseRole(req.Role),
	})
	h.respondSuccess(ctx, http.StatusOK, decision)
}
