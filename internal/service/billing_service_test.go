package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/storage"
)

type mockBillingRepo struct {
	latest   *models.MeterReading
	readings []models.MeterReading
	payments []models.Payment
}

func (m *mockBillingRepo) LatestReading(_ context.Context, _ models.Department, _ string) (*models.MeterReading, error) {
	return m.latest, nil
}

func (m *mockBillingRepo) CreateReading(_ context.Context, reading *models.MeterReading) error {
	m.readings = append(m.readings, *reading)
	return nil
}

func (m *mockBillingRepo) CreatePayment(_ context.Context, payment *models.Payment) error {
	m.payments = append(m.payments, *payment)
	return nil
}

func (m *mockBillingRepo) FindPaymentByReceipt(_ context.Context, _ models.Department, receiptNumber string) (*models.Payment, error) {
	for _, p := range m.payments {
		if p.ReceiptNumber == receiptNumber {
			payment := p
			return &payment, nil
		}
	}
	return nil, sql.ErrNoRows
}

func newBillingService(t *testing.T, repo *mockBillingRepo) (*BillingService, *mockAudit, *mockDashboard) {
	t.Helper()
	receipts, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	audit := &mockAudit{}
	dashboard := &mockDashboard{}
	svc := NewBillingService(repo, &mockNumbers{}, receipts, signer, &mockNotifier{}, audit, dashboard, validator.New(), zap.NewNop(), BillingConfig{
		RechargeRebateRate: 0.02,
		PricePerUnit:       6.42,
	})
	return svc, audit, dashboard
}

func TestBillingServicePrepaidRechargeMath(t *testing.T) {
	repo := &mockBillingRepo{}
	svc, audit, dashboard := newBillingService(t, repo)

	result, err := svc.PrepaidRecharge(context.Background(), models.DepartmentElectricity, RechargeRequest{
		ConsumerNumber: "EC-1001",
		Amount:         1000,
	})
	require.NoError(t, err)

	assert.Equal(t, 20.00, result.Payment.Rebate)
	assert.Equal(t, 980.00, result.Payment.NetAmount)
	assert.Equal(t, 152.65, result.Payment.EstimatedUnits)
	assert.Equal(t, models.PaymentStatusSuccess, result.Payment.Status)
	assert.Regexp(t, `^ER-\d{4}-\d{5}$`, result.Payment.ReceiptNumber)
	assert.NotEmpty(t, result.ReceiptToken)

	require.Len(t, repo.payments, 1)
	assert.NotEmpty(t, repo.payments[0].ReceiptPath)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionPaymentRecorded, audit.logs[0].Action)
	assert.Len(t, dashboard.invalidated, 1)
}

func TestBillingServicePrepaidRechargeRejectsNonPositiveAmount(t *testing.T) {
	svc, _, _ := newBillingService(t, &mockBillingRepo{})

	_, err := svc.PrepaidRecharge(context.Background(), models.DepartmentGas, RechargeRequest{
		ConsumerNumber: "GC-2001",
		Amount:         0,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBillingServiceMeterReadingRejectsNonIncreasing(t *testing.T) {
	repo := &mockBillingRepo{latest: &models.MeterReading{CurrentReading: 500}}
	svc, _, _ := newBillingService(t, repo)

	_, err := svc.SubmitMeterReading(context.Background(), models.DepartmentWater, MeterReadingRequest{
		ConsumerNumber: "WC-3001",
		CurrentReading: 500,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidReading.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.readings, "a rejected reading must not be written")
}

func TestBillingServiceMeterReadingRecordsConsumption(t *testing.T) {
	repo := &mockBillingRepo{latest: &models.MeterReading{CurrentReading: 500}}
	svc, _, _ := newBillingService(t, repo)

	reading, err := svc.SubmitMeterReading(context.Background(), models.DepartmentWater, MeterReadingRequest{
		ConsumerNumber: "WC-3001",
		CurrentReading: 523.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, reading.PreviousReading)
	assert.Equal(t, 23.5, reading.UnitsConsumed)
	require.Len(t, repo.readings, 1)
}

func TestBillingServiceMeterReadingFirstReading(t *testing.T) {
	repo := &mockBillingRepo{}
	svc, _, _ := newBillingService(t, repo)

	reading, err := svc.SubmitMeterReading(context.Background(), models.DepartmentGas, MeterReadingRequest{
		ConsumerNumber: "GC-2001",
		CurrentReading: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, reading.PreviousReading)
	assert.Equal(t, 12.0, reading.UnitsConsumed)
}

func TestBillingServiceReceiptDownloadUnknownNumber(t *testing.T) {
	svc, _, _ := newBillingService(t, &mockBillingRepo{})

	_, _, err := svc.ReceiptDownload(context.Background(), models.DepartmentElectricity, "ER-2026-99999")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
