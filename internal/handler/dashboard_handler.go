package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shelkesanchit/Suvidha-sub000/internal/middleware"
	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	"github.com/shelkesanchit/Suvidha-sub000/internal/repository"
	"github.com/shelkesanchit/Suvidha-sub000/internal/service"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/response"
)

// DashboardHandler exposes the admin landing summary and the audit trail.
type DashboardHandler struct {
	dashboard *service.DashboardService
	users     *repository.UserRepository
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService, users *repository.UserRepository) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, users: users}
}

// Summary godoc
// @Summary Department dashboard summary
// @Tags Dashboard
// @Produce json
// @Param dept path string true "Department"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context(), middleware.CurrentDepartment(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// AuditLogs godoc
// @Summary Recent audit trail entries for the department
// @Tags Dashboard
// @Produce json
// @Param dept path string true "Department"
// @Param action query string false "Filter by action"
// @Param resource query string false "Filter by resource"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/audit-logs [get]
func (h *DashboardHandler) AuditLogs(c *gin.Context) {
	filter := models.AuditFilter{
		Department: middleware.CurrentDepartment(c),
		Action:     c.Query("action"),
		Resource:   c.Query("resource"),
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil {
		filter.Limit = limit
	}
	logs, err := h.users.ListAuditLogs(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, nil)
}
