package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shelkesanchit/Suvidha-sub000/internal/middleware"
	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	"github.com/shelkesanchit/Suvidha-sub000/internal/service"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/response"
)

// ApplicationHandler exposes citizen submission and admin review endpoints
// for service applications.
type ApplicationHandler struct {
	applications *service.ApplicationService
	metrics      *service.MetricsService
}

// NewApplicationHandler constructs ApplicationHandler.
func NewApplicationHandler(applications *service.ApplicationService, metrics *service.MetricsService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, metrics: metrics}
}

// Submit godoc
// @Summary Submit a citizen application
// @Tags Applications
// @Accept json
// @Produce json
// @Param dept path string true "Department"
// @Param payload body service.SubmitApplicationRequest true "Application payload"
// @Success 201 {object} response.Envelope
// @Router /{dept}/applications/submit [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req service.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	dept := middleware.CurrentDepartment(c)
	detail, err := h.applications.Submit(c.Request.Context(), dept, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordSubmission(string(dept), "application")
	response.Created(c, detail)
}

// Track godoc
// @Summary Track an application by its public number
// @Tags Applications
// @Produce json
// @Param dept path string true "Department"
// @Param number path string true "Application number"
// @Success 200 {object} response.Envelope
// @Router /{dept}/applications/{number}/status [get]
func (h *ApplicationHandler) Track(c *gin.Context) {
	dept := middleware.CurrentDepartment(c)
	detail, err := h.applications.Track(c.Request.Context(), dept, strings.TrimSpace(c.Param("number")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// List godoc
// @Summary List applications for the admin register
// @Tags Applications
// @Produce json
// @Param dept path string true "Department"
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by application type"
// @Param search query string false "Search by number, applicant or consumer number"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	filter := h.filterFromQuery(c)
	applications, pagination, err := h.applications.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, applications, pagination)
}

// Get godoc
// @Summary Get application detail with stage history
// @Tags Applications
// @Produce json
// @Param dept path string true "Department"
// @Param id path string true "Application ID"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	detail, err := h.applications.Get(c.Request.Context(), middleware.CurrentDepartment(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// UpdateStatus godoc
// @Summary Update application status
// @Tags Applications
// @Accept json
// @Produce json
// @Param dept path string true "Department"
// @Param id path string true "Application ID"
// @Param payload body service.UpdateApplicationStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/applications/{id} [put]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	dept := middleware.CurrentDepartment(c)
	detail, err := h.applications.UpdateStatus(c.Request.Context(), dept, c.Param("id"), req, middleware.CurrentUser(c), c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordStatusChange(string(dept), "application")
	response.Message(c, fmt.Sprintf("Application %s updated", detail.ApplicationNumber), detail)
}

// Export godoc
// @Summary Export the filtered application register as CSV
// @Tags Applications
// @Produce text/csv
// @Param dept path string true "Department"
// @Success 200 {string} string "CSV content"
// @Router /{dept}/admin/applications/export [get]
func (h *ApplicationHandler) Export(c *gin.Context) {
	filter := h.filterFromQuery(c)
	data, err := h.applications.ExportCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("applications-%s-%s.csv", filter.Department, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *ApplicationHandler) filterFromQuery(c *gin.Context) models.ApplicationFilter {
	filter := models.ApplicationFilter{
		Department: middleware.CurrentDepartment(c),
		Status:     models.ApplicationStatus(c.Query("status")),
		Type:       c.Query("type"),
		Search:     strings.TrimSpace(c.Query("search")),
		SortBy:     c.Query("sort"),
		SortOrder:  c.Query("order"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	return filter
}
