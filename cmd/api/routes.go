package main

import (
	"net/http"

	"pathific-platform/internal/httpapi"
	"pathific-platform/internal/policy"
	"pathific-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// accessTable is the single source of truth for who may reach what. The
// authorization gate consults it on every request; routes not listed here
// require an authenticated caller.
func accessTable() *policy.Table {
	return policy.NewTable(
		// Public surface
		policy.Rule{Method: http.MethodGet, Pattern: "/healthz", Access: policy.Public},
		policy.Rule{Method: http.MethodPost, Pattern: "/api/auth/*", Access: policy.Public},
		policy.Rule{Method: http.MethodGet, Pattern: "/api/learnmore", Access: policy.Public},
		policy.Rule{Method: http.MethodGet, Pattern: "/api/courts", Access: policy.Public},
		policy.Rule{Method: http.MethodGet, Pattern: "/api/courts/winner", Access: policy.Public},
		policy.Rule{Method: http.MethodGet, Pattern: "/api/badges", Access: policy.Public},
		// Provider callback authenticates with a shared hash, not a token.
		policy.Rule{Method: http.MethodPost, Pattern: "/api/payments/webhook", Access: policy.Public},

		// Role-restricted writes
		policy.Rule{Method: http.MethodPost, Pattern: "/api/courts", Access: policy.Authenticated,
			Roles: []string{rbac.RoleAdmin}},
		policy.Rule{Method: http.MethodPost, Pattern: "/api/courts/*", Access: policy.Authenticated,
			Roles: []string{rbac.RoleCurator, rbac.RoleAdmin}},
		policy.Rule{Method: http.MethodPut, Pattern: "/api/modules/*", Access: policy.Authenticated,
			Roles: []string{rbac.RoleCurator, rbac.RoleAdmin}},
		policy.Rule{Method: http.MethodDelete, Pattern: "/api/modules/*", Access: policy.Authenticated,
			Roles: []string{rbac.RoleCurator, rbac.RoleAdmin}},
		policy.Rule{Method: http.MethodPost, Pattern: "/api/module-items/*", Access: policy.Authenticated,
			Roles: []string{rbac.RoleCurator, rbac.RoleAdmin}},
		policy.Rule{Method: http.MethodPut, Pattern: "/api/module-items/*", Access: policy.Authenticated,
			Roles: []string{rbac.RoleCurator, rbac.RoleAdmin}},
		policy.Rule{Method: http.MethodDelete, Pattern: "/api/module-items/*", Access: policy.Authenticated,
			Roles: []string{rbac.RoleCurator, rbac.RoleAdmin}},

		// Everything else under /api needs a session.
		policy.Rule{Pattern: "/api/*", Access: policy.Authenticated},
	)
}

func registerRoutes(r *gin.Engine, h httpapi.Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)

	api.GET("/me", h.Me)

	// Content
	api.GET("/learnmore", h.LearnMore)
	api.GET("/courts", h.ListCourts)
	api.GET("/courts/winner", h.WeeklyWinner)
	api.GET("/badges", h.ListBadges)
	api.POST("/courts", rbac.RequireAnyRole(rbac.RoleAdmin), h.CreateCourt)

	// Modules live under their court; item mutations address the module id.
	// rbac middleware is the second line of defense behind the gate.
	api.GET("/courts/:court_id/modules", h.ListModules)
	api.POST("/courts/:court_id/modules", rbac.RequireAnyRole(rbac.RoleCurator), h.CreateModule)
	api.PUT("/modules/:id", rbac.RequireAnyRole(rbac.RoleCurator), h.UpdateModule)
	api.DELETE("/modules/:id", rbac.RequireAnyRole(rbac.RoleCurator), h.DeleteModule)

	// Items inside a module. :id is the module for list/create and the item
	// for update/delete.
	api.GET("/module-items/:id", h.ListModuleItems)
	api.POST("/module-items/:id", rbac.RequireAnyRole(rbac.RoleCurator), h.CreateModuleItem)
	api.PUT("/module-items/:id", rbac.RequireAnyRole(rbac.RoleCurator), h.UpdateModuleItem)
	api.DELETE("/module-items/:id", rbac.RequireAnyRole(rbac.RoleCurator), h.DeleteModuleItem)

	api.POST("/completions", h.Complete)

	// Payments
	api.POST("/payments/checkout", h.Checkout)
	api.POST("/payments/webhook", h.PaymentWebhook)
}
