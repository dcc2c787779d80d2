package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/blr-world/hub-backend/api/transport"
	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/pkg/httpcontext"
	"github.com/blr-world/hub-backend/repository"
	profileUC "github.com/blr-world/hub-backend/usecase/profile"
)

type ProfileHandler struct {
	baseHandler
	uc *profileUC.UseCase
}

func NewProfileHandler(uc *profileUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Get the caller's merged profile
// @Tags profile
// @Success 200 {object} transport.Envelope
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(ctx *fasthttp.RequestCtx) {
	userID := callerID(ctx)
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "authentication required", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	profile, err := h.uc.GetUserProfile(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, profile)
}

// @Summary Update the caller's self-service fields
// @Tags profile
// @Accept json
// @Produce json
// @Router /api/v1/profile [put]
func (h *ProfileHandler) UpdateProfile(ctx *fasthttp.RequestCtx) {
	userID := callerID(ctx)
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "authentication required", nil))
		return
	}

	var req transport.ProfileUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateProfile(stdCtx, userID, repository.ProfileUpdate{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		WorkHours:   req.WorkHours,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Stamp the caller's last sign-in time
// @Tags profile
// @Router /api/v1/profile/last-login [post]
func (h *ProfileHandler) UpdateLastLogin(ctx *fasthttp.RequestCtx) {
	userID := callerID(ctx)
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "authentication required", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.UpdateLastLogin(stdCtx, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]bool{"success": true})
}
