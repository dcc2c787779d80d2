package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/blr-world/hub-backend/api/transport"
	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/pkg/httpcontext"
	authUC "github.com/blr-world/hub-backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Register a workspace account
// @Tags auth
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) SignUp(ctx *fasthttp.RequestCtx) {
	var req transport.SignUpRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" || req.Password == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.SignUp(stdCtx, req.Email, req.Password, req.Name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, result)
}

// @Summary Sign in with workspace credentials
// @Tags auth
// @Router /api/v1/auth/signin [post]
func (h *AuthHandler) SignIn(ctx *fasthttp.RequestCtx) {
	var req transport.SignInRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" || req.Password == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.SignIn(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Revoke the current session
// @Tags auth
// @Router /api/v1/auth/signout [post]
func (h *AuthHandler) SignOut(ctx *fasthttp.RequestCtx) {
	var req transport.SignOutRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.SessionID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SignOut(stdCtx, req.SessionID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]bool{"success": true})
}
