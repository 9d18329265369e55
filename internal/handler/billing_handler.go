package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shelkesanchit/Suvidha-sub000/internal/middleware"
	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	"github.com/shelkesanchit/Suvidha-sub000/internal/service"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/response"
)

// BillingHandler exposes kiosk payment and meter reading endpoints.
type BillingHandler struct {
	billing *service.BillingService
	metrics *service.MetricsService
}

// NewBillingHandler constructs BillingHandler.
func NewBillingHandler(billing *service.BillingService, metrics *service.MetricsService) *BillingHandler {
	return &BillingHandler{billing: billing, metrics: metrics}
}

// PrepaidRecharge godoc
// @Summary Record a prepaid recharge and issue a receipt
// @Tags Billing
// @Accept json
// @Produce json
// @Param dept path string true "Department"
// @Param payload body service.RechargeRequest true "Recharge payload"
// @Success 201 {object} response.Envelope
// @Router /{dept}/payments/prepaid-recharge [post]
func (h *BillingHandler) PrepaidRecharge(c *gin.Context) {
	var req service.RechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	dept := middleware.CurrentDepartment(c)
	result, err := h.billing.PrepaidRecharge(c.Request.Context(), dept, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordPayment(string(dept), string(models.PaymentKindPrepaidRecharge), result.Payment.Amount)
	response.Created(c, result)
}

// MeterReading godoc
// @Summary Submit a consumer meter reading
// @Tags Billing
// @Accept json
// @Produce json
// @Param dept path string true "Department"
// @Param payload body service.MeterReadingRequest true "Reading payload"
// @Success 201 {object} response.Envelope
// @Router /{dept}/consumer/meter-reading [post]
func (h *BillingHandler) MeterReading(c *gin.Context) {
	var req service.MeterReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	reading, err := h.billing.SubmitMeterReading(c.Request.Context(), middleware.CurrentDepartment(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reading)
}

// ReceiptDownload godoc
// @Summary Re-issue a signed download token for a receipt
// @Tags Billing
// @Produce json
// @Param dept path string true "Department"
// @Param number path string true "Receipt number"
// @Success 200 {object} response.Envelope
// @Router /{dept}/payments/receipts/{number} [get]
func (h *BillingHandler) ReceiptDownload(c *gin.Context) {
	token, expires, err := h.billing.ReceiptDownload(c.Request.Context(), middleware.CurrentDepartment(c), strings.TrimSpace(c.Param("number")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"receipt_token": token, "token_expires": expires}, nil)
}
