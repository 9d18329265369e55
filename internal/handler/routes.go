package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shelkesanchit/Suvidha-sub000/internal/middleware"
	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	"github.com/shelkesanchit/Suvidha-sub000/internal/service"
)

// Handlers groups every route handler for registration.
type Handlers struct {
	Auth         *AuthHandler
	Applications *ApplicationHandler
	Complaints   *ComplaintHandler
	Billing      *BillingHandler
	Tariffs      *TariffHandler
	Settings     *SettingHandler
	Dashboard    *DashboardHandler
	Documents    *DocumentHandler
}

// RegisterRoutes wires the department-scoped citizen and admin surfaces
// onto the router group. Everything lives under /:dept so the three
// verticals share one code path.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, auth *service.AuthService) {
	dept := api.Group("/:dept")
	dept.Use(middleware.Department())

	// Citizen kiosk surface. No authentication; the kiosk is a trusted
	// terminal and records carry their own public numbers.
	dept.POST("/applications/submit", h.Applications.Submit)
	dept.GET("/applications/:number/status", h.Applications.Track)
	dept.POST("/complaints/submit", h.Complaints.Submit)
	dept.POST("/payments/prepaid-recharge", h.Billing.PrepaidRecharge)
	dept.GET("/payments/receipts/:number", h.Billing.ReceiptDownload)
	dept.POST("/consumer/meter-reading", h.Billing.MeterReading)
	dept.GET("/documents/:token", h.Documents.Download)

	admin := dept.Group("/admin")
	admin.POST("/login", h.Auth.Login)
	admin.GET("/verify", h.Auth.Verify)
	admin.POST("/refresh", h.Auth.Refresh)

	secured := admin.Group("")
	secured.Use(middleware.JWT(auth), middleware.DepartmentAccess())

	secured.POST("/logout", h.Auth.Logout)

	staff := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin, models.RoleEngineer)
	admins := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin)

	secured.GET("/dashboard", staff, h.Dashboard.Summary)
	secured.GET("/audit-logs", admins, h.Dashboard.AuditLogs)

	secured.GET("/applications", staff, h.Applications.List)
	secured.GET("/applications/export", staff, h.Applications.Export)
	secured.GET("/applications/:id", staff, h.Applications.Get)
	secured.PUT("/applications/:id", staff, h.Applications.UpdateStatus)

	secured.GET("/complaints", staff, h.Complaints.List)
	secured.GET("/complaints/:id", staff, h.Complaints.Get)
	secured.PUT("/complaints/:id", staff, h.Complaints.Update)

	secured.GET("/tariffs", staff, h.Tariffs.List)
	secured.POST("/tariffs", admins, h.Tariffs.Create)
	secured.PUT("/tariffs/:id", admins, h.Tariffs.Update)
	secured.DELETE("/tariffs/:id", admins, h.Tariffs.Delete)

	secured.GET("/settings", staff, h.Settings.List)
	secured.PUT("/settings", admins, h.Settings.Update)

	secured.GET("/documents/:id/signed-url", staff, h.Documents.SignedURL)
}
