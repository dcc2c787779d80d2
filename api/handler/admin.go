package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/blr-world/hub-backend/api/transport"
	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/pkg/httpcontext"
	adminUC "github.com/blr-world/hub-backend/usecase/admin"
)

type AdminHandler struct {
	baseHandler
	uc *adminUC.UseCase
}

func NewAdminHandler(uc *adminUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create a user with a role claim and profile
// @Tags admin
// @Router /api/v1/admin/users [post]
func (h *AdminHandler) CreateUser(ctx *fasthttp.RequestCtx) {
	var req transport.AdminCreateUserRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" || req.Password == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := h.uc.CreateUser(stdCtx, callerRole(ctx), adminUC.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.ParseRole(req.Role),
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, map[string]string{"id": id})
}

// @Summary List all user profiles
// @Tags admin
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.ListUsers(stdCtx, callerRole(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, users)
}

// @Summary Change a user's role claim and profile role
// @Tags admin
// @Router /api/v1/admin/users/{id}/role [put]
func (h *AdminHandler) UpdateUserRole(ctx *fasthttp.RequestCtx) {
	userID, _ := ctx.UserValue("id").(string)
	var req transport.RoleUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || userID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.UpdateUserRole(stdCtx, callerRole(ctx), userID, domain.Role(req.Role)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]bool{"success": true})
}

// @Summary Replace a user's weekly work hours
// @Tags admin
// @Router /api/v1/admin/users/{id}/work-hours [put]
func (h *AdminHandler) SetWorkHours(ctx *fasthttp.RequestCtx) {
	userID, _ := ctx.UserValue("id").(string)
	var req transport.WorkHoursRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || userID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetWorkHours(stdCtx, callerRole(ctx), userID, req.WorkHours); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]bool{"success": true})
}

// @Summary Attach a document link to a user's profile
// @Tags admin
// @Router /api/v1/admin/users/{id}/documents [post]
func (h *AdminHandler) AttachDocument(ctx *fasthttp.RequestCtx) {
	userID, _ := ctx.UserValue("id").(string)
	var req transport.DocumentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || userID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.AttachDocument(stdCtx, callerRole(ctx), userID, domain.Document{Name: req.Name, URL: req.URL}); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, map[string]bool{"success": true})
}

// @Summary List departments
// @Tags departments
// @Router /api/v1/departments [get]
func (h *AdminHandler) ListDepartments(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	departments, err := h.uc.ListDepartments(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, departments)
}

// @Summary Create a department
// @Tags departments
// @Router /api/v1/departments [post]
func (h *AdminHandler) CreateDepartment(ctx *fasthttp.RequestCtx) {
	var req transport.DepartmentCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Name == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	department, err := h.uc.CreateDepartment(stdCtx, callerRole(ctx), req.Name, req.ManagerID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, department)
}
