package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/blr-world/hub-backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Admin   *apiHandler.AdminHandler
	Gate    *apiHandler.GateHandler
	Hooks   *apiHandler.HooksHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/signup", handlers.Auth.SignUp)
	r.POST("/api/v1/auth/signin", handlers.Auth.SignIn)
	r.POST("/api/v1/auth/signout", handlers.Auth.SignOut)

	// Lifecycle hooks: a single handler set is registered per trigger
	// name; whether it enforces or stubs is decided at construction.
	r.POST("/hooks/enforce-domain-on-create", handlers.Hooks.OnCreate)
	r.POST("/hooks/enforce-domain-on-signin", handlers.Hooks.OnSignIn)

	// Route gate is consulted by the client shell before it knows who the
	// caller is, so it stays public.
	r.POST("/api/v1/route-gate", handlers.Gate.Evaluate)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))
	r.POST("/api/v1/profile/last-login", authMiddleware(handlers.Profile.UpdateLastLogin))

	r.GET("/api/v1/departments", authMiddleware(handlers.Admin.ListDepartments))
	r.POST("/api/v1/departments", authMiddleware(handlers.Admin.CreateDepartment))

	r.POST("/api/v1/admin/users", authMiddleware(handlers.Admin.CreateUser))
	r.GET("/api/v1/admin/users", authMiddleware(handlers.Admin.ListUsers))
	r.PUT("/api/v1/admin/users/{id}/role", authMiddleware(handlers.Admin.UpdateUserRole))
	r.PUT("/api/v1/admin/users/{id}/work-hours", authMiddleware(handlers.Admin.SetWorkHours))
	r.POST("/api/v1/admin/users/{id}/documents", authMiddleware(handlers.Admin.AttachDocument))

	return r
}
