package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/blr-world/hub-backend/api/transport"
	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/internal/hooks"
	"github.com/blr-world/hub-backend/pkg/httpcontext"
)

// HooksHandler exposes the account-lifecycle hooks over HTTP. Under the
// enforcing variant a disallowed email is rejected with permission-denied;
// under the stub variant every request is acknowledged and tagged as a
// stand-in so deploy tooling does not fail where blocking hooks are
// unavailable.
type HooksHandler struct {
	baseHandler
	enforcer hooks.Enforcer
}

func NewHooksHandler(enforcer hooks.Enforcer, adapter *httpcontext.Adapter, logger *zap.Logger) *HooksHandler {
	return &HooksHandler{
		baseHandler: newBaseHandler(adapter, logger),
		enforcer:    enforcer,
	}
}

// @Summary Workspace-domain guard for account creation
// @Tags hooks
// @Router /hooks/enforce-domain-on-create [post]
func (h *HooksHandler) OnCreate(ctx *fasthttp.RequestCtx) {
	h.run(ctx, h.enforcer.BeforeCreate)
}

// @Summary Workspace-domain guard for sign-in
// @Tags hooks
// @Router /hooks/enforce-domain-on-signin [post]
func (h *HooksHandler) OnSignIn(ctx *fasthttp.RequestCtx) {
	h.run(ctx, h.enforcer.BeforeSignIn)
}

func (h *HooksHandler) run(ctx *fasthttp.RequestCtx, guard func(ctx context.Context, email string) error) {
	if h.enforcer.Mode() == hooks.ModeStub {
		h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
			"ok":   true,
			"mode": string(hooks.ModeStub),
			"note": "blocking hooks unavailable in this deployment; domain policy is applied by the provisioner",
		})
		return
	}

	var req transport.HookRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := guard(stdCtx, req.Email); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"ok":   true,
		"mode": string(hooks.ModeEnforcing),
	})
}
