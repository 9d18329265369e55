package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelkesanchit/Suvidha-sub000/internal/middleware"
	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	"github.com/shelkesanchit/Suvidha-sub000/internal/service"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/response"
)

// TariffHandler exposes rate table management endpoints.
type TariffHandler struct {
	tariffs *service.TariffService
}

// NewTariffHandler constructs TariffHandler.
func NewTariffHandler(tariffs *service.TariffService) *TariffHandler {
	return &TariffHandler{tariffs: tariffs}
}

// List godoc
// @Summary List tariff slabs
// @Tags Tariffs
// @Produce json
// @Param dept path string true "Department"
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/tariffs [get]
func (h *TariffHandler) List(c *gin.Context) {
	tariffs, err := h.tariffs.List(c.Request.Context(), models.TariffFilter{
		Department: middleware.CurrentDepartment(c),
		Category:   c.Query("category"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tariffs, nil)
}

// Create godoc
// @Summary Create a tariff slab
// @Tags Tariffs
// @Accept json
// @Produce json
// @Param dept path string true "Department"
// @Param payload body service.TariffRequest true "Tariff payload"
// @Success 201 {object} response.Envelope
// @Router /{dept}/admin/tariffs [post]
func (h *TariffHandler) Create(c *gin.Context) {
	var req service.TariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tariff, err := h.tariffs.Create(c.Request.Context(), middleware.CurrentDepartment(c), req, middleware.CurrentUser(c), c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tariff)
}

// Update godoc
// @Summary Update a tariff slab
// @Tags Tariffs
// @Accept json
// @Produce json
// @Param dept path string true "Department"
// @Param id path string true "Tariff ID"
// @Param payload body service.TariffRequest true "Tariff payload"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/tariffs/{id} [put]
func (h *TariffHandler) Update(c *gin.Context) {
	var req service.TariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tariff, err := h.tariffs.Update(c.Request.Context(), middleware.CurrentDepartment(c), c.Param("id"), req, middleware.CurrentUser(c), c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Tariff updated", tariff)
}

// Delete godoc
// @Summary Delete a tariff slab
// @Tags Tariffs
// @Produce json
// @Param dept path string true "Department"
// @Param id path string true "Tariff ID"
// @Success 204 {object} nil
// @Router /{dept}/admin/tariffs/{id} [delete]
func (h *TariffHandler) Delete(c *gin.Context) {
	if err := h.tariffs.Delete(c.Request.Context(), middleware.CurrentDepartment(c), c.Param("id"), middleware.CurrentUser(c), c.ClientIP(), c.GetHeader("User-Agent")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
