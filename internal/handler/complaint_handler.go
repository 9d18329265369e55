package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shelkesanchit/Suvidha-sub000/internal/middleware"
	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	"github.com/shelkesanchit/Suvidha-sub000/internal/service"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/response"
)

// ComplaintHandler exposes citizen complaint intake and admin review
// endpoints.
type ComplaintHandler struct {
	complaints *service.ComplaintService
	metrics    *service.MetricsService
}

// NewComplaintHandler constructs ComplaintHandler.
func NewComplaintHandler(complaints *service.ComplaintService, metrics *service.MetricsService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints, metrics: metrics}
}

// Submit godoc
// @Summary Submit a citizen complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Param dept path string true "Department"
// @Param payload body service.SubmitComplaintRequest true "Complaint payload"
// @Success 201 {object} response.Envelope
// @Router /{dept}/complaints/submit [post]
func (h *ComplaintHandler) Submit(c *gin.Context) {
	var req service.SubmitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	dept := middleware.CurrentDepartment(c)
	detail, err := h.complaints.Submit(c.Request.Context(), dept, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordSubmission(string(dept), "complaint")
	response.Created(c, detail)
}

// List godoc
// @Summary List complaints for the admin register
// @Tags Complaints
// @Produce json
// @Param dept path string true "Department"
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param priority query string false "Filter by priority"
// @Param search query string false "Search by number, complainant or consumer number"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/complaints [get]
func (h *ComplaintHandler) List(c *gin.Context) {
	filter := models.ComplaintFilter{
		Department: middleware.CurrentDepartment(c),
		Status:     models.ComplaintStatus(c.Query("status")),
		Category:   c.Query("category"),
		Priority:   models.ComplaintPriority(c.Query("priority")),
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

	complaints, pagination, err := h.complaints.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, complaints, pagination)
}

// Get godoc
// @Summary Get complaint detail
// @Tags Complaints
// @Produce json
// @Param dept path string true "Department"
// @Param id path string true "Complaint ID"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/complaints/{id} [get]
func (h *ComplaintHandler) Get(c *gin.Context) {
	detail, err := h.complaints.Get(c.Request.Context(), middleware.CurrentDepartment(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Update godoc
// @Summary Update a complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Param dept path string true "Department"
// @Param id path string true "Complaint ID"
// @Param payload body service.UpdateComplaintRequest true "Review payload"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/complaints/{id} [put]
func (h *ComplaintHandler) Update(c *gin.Context) {
	var req service.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	dept := middleware.CurrentDepartment(c)
	detail, err := h.complaints.Update(c.Request.Context(), dept, c.Param("id"), req, middleware.CurrentUser(c), c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordStatusChange(string(dept), "complaint")
	response.Message(c, fmt.Sprintf("Complaint %s updated", detail.ComplaintNumber), detail)
}
