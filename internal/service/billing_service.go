package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	"github.com/shelkesanchit/Suvidha-sub000/internal/repository"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/export"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/storage"
)

type billingRepository interface {
	LatestReading(ctx context.Context, dept models.Department, consumerNumber string) (*models.MeterReading, error)
	CreateReading(ctx context.Context, reading *models.MeterReading) error
	CreatePayment(ctx context.Context, payment *models.Payment) error
	FindPaymentByReceipt(ctx context.Context, dept models.Department, receiptNumber string) (*models.Payment, error)
}

// BillingConfig carries the published recharge constants.
type BillingConfig struct {
	RechargeRebateRate float64
	PricePerUnit       float64
}

// RechargeRequest is the kiosk payload for a prepaid recharge.
type RechargeRequest struct {
	ConsumerNumber string  `json:"consumer_number" validate:"required"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	IP             string  `json:"-"`
	UserAgent      string  `json:"-"`
}

// RechargeResult returns the recorded payment plus a download token for
// the rendered receipt.
type RechargeResult struct {
	Payment      models.Payment `json:"payment"`
	ReceiptToken string         `json:"receipt_token"`
	TokenExpires time.Time      `json:"token_expires"`
}

// MeterReadingRequest is the kiosk payload for a consumer meter reading.
type MeterReadingRequest struct {
	ConsumerNumber string  `json:"consumer_number" validate:"required"`
	CurrentReading float64 `json:"current_reading" validate:"required,gt=0"`
	IP             string  `json:"-"`
	UserAgent      string  `json:"-"`
}

// BillingService handles prepaid recharges, bill payments and consumer
// meter readings.
type BillingService struct {
	repo      billingRepository
	numbers   numberIssuer
	receipts  *storage.LocalStorage
	renderer  *export.ReceiptRenderer
	signer    *storage.SignedURLSigner
	notifier  notificationQueuer
	audit     auditRecorder
	dashboard dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	cfg       BillingConfig
	now       func() time.Time
}

// NewBillingService constructs the billing service.
func NewBillingService(repo billingRepository, numbers numberIssuer, receipts *storage.LocalStorage, signer *storage.SignedURLSigner, notifier notificationQueuer, audit auditRecorder, dashboard dashboardInvalidator, validate *validator.Validate, logger *zap.Logger, cfg BillingConfig) *BillingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RechargeRebateRate <= 0 {
		cfg.RechargeRebateRate = 0.02
	}
	if cfg.PricePerUnit <= 0 {
		cfg.PricePerUnit = 6.42
	}
	return &BillingService{
		repo:      repo,
		numbers:   numbers,
		receipts:  receipts,
		renderer:  export.NewReceiptRenderer(),
		signer:    signer,
		notifier:  notifier,
		audit:     audit,
		dashboard: dashboard,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// PrepaidRecharge records a prepaid recharge. The rebate is deducted from
// the paid amount and the estimated units are derived from the net amount
// at the published per-unit price, both rounded to two decimals.
func (s *BillingService) PrepaidRecharge(ctx context.Context, dept models.Department, req RechargeRequest) (*RechargeResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid recharge payload")
	}

	rebate := round2(req.Amount * s.cfg.RechargeRebateRate)
	net := round2(req.Amount - rebate)
	units := round2(net / s.cfg.PricePerUnit)

	now := s.now()
	seq, err := s.numbers.Next(ctx, dept, repository.CounterKindReceipt, now.Year())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue receipt number")
	}

	payment := &models.Payment{
		ID:             uuid.NewString(),
		ReceiptNumber:  fmt.Sprintf("%s-%d-%05d", dept.ReceiptPrefix(), now.Year(), seq),
		Department:     dept,
		ConsumerNumber: req.ConsumerNumber,
		Kind:           models.PaymentKindPrepaidRecharge,
		Amount:         req.Amount,
		Rebate:         rebate,
		NetAmount:      net,
		EstimatedUnits: units,
		Status:         models.PaymentStatusSuccess,
		CreatedAt:      now,
	}

	pdf, err := s.renderer.Render(export.Receipt{
		ReceiptNumber:  payment.ReceiptNumber,
		Department:     dept.DisplayName(),
		ConsumerNumber: payment.ConsumerNumber,
		Kind:           "Prepaid Recharge",
		Amount:         payment.Amount,
		Rebate:         payment.Rebate,
		NetAmount:      payment.NetAmount,
		EstimatedUnits: payment.EstimatedUnits,
		IssuedAt:       now,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render receipt")
	}
	relPath := filepath.Join(string(dept), payment.ReceiptNumber+".pdf")
	if _, err := s.receipts.Save(relPath, pdf); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store receipt")
	}
	payment.ReceiptPath = relPath

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
	}

	token, expires, err := s.signer.Generate(payment.ID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign receipt download")
	}

	recordAudit(ctx, s.audit, s.logger, nil, dept, models.AuditActionPaymentRecorded, "payment", payment.ID, map[string]interface{}{
		"receipt_number": payment.ReceiptNumber,
		"kind":           payment.Kind,
		"amount":         payment.Amount,
	}, req.IP, req.UserAgent)

	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, dept)
	}
	return &RechargeResult{Payment: *payment, ReceiptToken: token, TokenExpires: expires}, nil
}

// SubmitMeterReading validates and records a consumer meter reading. The
// current reading must exceed the previous one; nothing is written when it
// does not.
func (s *BillingService) SubmitMeterReading(ctx context.Context, dept models.Department, req MeterReadingRequest) (*models.MeterReading, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reading payload")
	}

	previous, err := s.repo.LatestReading(ctx, dept, req.ConsumerNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load previous reading")
	}

	var prevValue float64
	if previous != nil {
		prevValue = previous.CurrentReading
	}
	if req.CurrentReading <= prevValue {
		return nil, appErrors.Clone(appErrors.ErrInvalidReading, "")
	}

	now := s.now()
	reading := &models.MeterReading{
		ID:              uuid.NewString(),
		Department:      dept,
		ConsumerNumber:  req.ConsumerNumber,
		PreviousReading: prevValue,
		CurrentReading:  req.CurrentReading,
		UnitsConsumed:   round2(req.CurrentReading - prevValue),
		ReadingDate:     now,
		CreatedAt:       now,
	}
	if err := s.repo.CreateReading(ctx, reading); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record reading")
	}
	return reading, nil
}

// ReceiptDownload re-issues a signed download token for an existing
// receipt by its public number.
func (s *BillingService) ReceiptDownload(ctx context.Context, dept models.Department, receiptNumber string) (string, time.Time, error) {
	payment, err := s.repo.FindPaymentByReceipt(ctx, dept, receiptNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, appErrors.Clone(appErrors.ErrNotFound, "no receipt with that number")
		}
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payment")
	}
	token, expires, err := s.signer.Generate(payment.ID, payment.ReceiptPath)
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign receipt download")
	}
	return token, expires, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
