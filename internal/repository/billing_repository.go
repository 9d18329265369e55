package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
)

// BillingRepository manages meter readings and payment records.
type BillingRepository struct {
	db *sqlx.DB
}

// NewBillingRepository constructs a BillingRepository.
func NewBillingRepository(db *sqlx.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

// LatestReading returns the most recent reading for a consumer, or nil
// when the consumer has no readings yet.
func (r *BillingRepository) LatestReading(ctx context.Context, dept models.Department, consumerNumber string) (*models.MeterReading, error) {
	const query = `SELECT id, department, consumer_number, previous_reading, current_reading, units_consumed, reading_date, created_at
        FROM meter_readings WHERE department = $1 AND consumer_number = $2
        ORDER BY reading_date DESC, created_at DESC LIMIT 1`
	var reading models.MeterReading
	if err := r.db.GetContext(ctx, &reading, query, dept, consumerNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest reading: %w", err)
	}
	return &reading, nil
}

// CreateReading inserts a meter reading.
func (r *BillingRepository) CreateReading(ctx context.Context, reading *models.MeterReading) error {
	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}
	if reading.CreatedAt.IsZero() {
		reading.CreatedAt = time.Now().UTC()
	}
	if reading.ReadingDate.IsZero() {
		reading.ReadingDate = reading.CreatedAt
	}
	const query = `INSERT INTO meter_readings (id, department, consumer_number, previous_reading, current_reading, units_consumed, reading_date, created_at)
        VALUES (:id, :department, :consumer_number, :previous_reading, :current_reading, :units_consumed, :reading_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reading); err != nil {
		return fmt.Errorf("create meter reading: %w", err)
	}
	return nil
}

// CreatePayment inserts a payment record.
func (r *BillingRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO payments (id, receipt_number, department, consumer_number, kind, amount, rebate, net_amount, estimated_units, status, receipt_path, created_at)
        VALUES (:id, :receipt_number, :department, :consumer_number, :kind, :amount, :rebate, :net_amount, :estimated_units, :status, :receipt_path, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// FindPaymentByReceipt fetches a payment by its receipt number.
func (r *BillingRepository) FindPaymentByReceipt(ctx context.Context, dept models.Department, receiptNumber string) (*models.Payment, error) {
	const query = `SELECT id, receipt_number, department, consumer_number, kind, amount, rebate, net_amount, estimated_units, status, receipt_path, created_at
        FROM payments WHERE department = $1 AND receipt_number = $2`
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, dept, receiptNumber); err != nil {
		return nil, err
	}
	return &payment, nil
}

// SumPaymentsSince totals successful payment amounts received after the
// given instant, for the dashboard.
func (r *BillingRepository) SumPaymentsSince(ctx context.Context, dept models.Department, since time.Time) (float64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE department = $1 AND status = $2 AND created_at >= $3`
	var total float64
	if err := r.db.GetContext(ctx, &total, query, dept, models.PaymentStatusSuccess, since); err != nil {
		return 0, fmt.Errorf("sum recent payments: %w", err)
	}
	return total, nil
}
