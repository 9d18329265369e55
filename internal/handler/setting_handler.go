package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelkesanchit/Suvidha-sub000/internal/middleware"
	"github.com/shelkesanchit/Suvidha-sub000/internal/service"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/response"
)

// SettingHandler exposes department configuration endpoints.
type SettingHandler struct {
	settings *service.SettingService
}

// NewSettingHandler constructs SettingHandler.
func NewSettingHandler(settings *service.SettingService) *SettingHandler {
	return &SettingHandler{settings: settings}
}

// List godoc
// @Summary List department settings
// @Tags Settings
// @Produce json
// @Param dept path string true "Department"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/settings [get]
func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.settings.List(c.Request.Context(), middleware.CurrentDepartment(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Update godoc
// @Summary Replace a batch of department settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param dept path string true "Department"
// @Param payload body service.UpdateSettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/settings [put]
func (h *SettingHandler) Update(c *gin.Context) {
	var req service.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	settings, err := h.settings.Update(c.Request.Context(), middleware.CurrentDepartment(c), req, middleware.CurrentUser(c), c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Settings saved", settings)
}
