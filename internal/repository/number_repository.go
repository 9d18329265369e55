package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
)

// NumberRepository issues monotonic sequence values for human-readable
// record numbers. One counter row exists per (department, kind, year).
type NumberRepository struct {
	db *sqlx.DB
}

// NewNumberRepository constructs a NumberRepository.
func NewNumberRepository(db *sqlx.DB) *NumberRepository {
	return &NumberRepository{db: db}
}

// Counter kinds.
const (
	CounterKindApplication = "application"
	CounterKindComplaint   = "complaint"
	CounterKindReceipt     = "receipt"
)

// Next atomically increments and returns the counter for the given scope.
// The upsert makes concurrent issuers serialize on the counter row, so two
// submissions can never receive the same number.
func (r *NumberRepository) Next(ctx context.Context, dept models.Department, kind string, year int) (int, error) {
	const query = `INSERT INTO number_counters (department, kind, year, value)
        VALUES ($1, $2, $3, 1)
        ON CONFLICT (department, kind, year)
        DO UPDATE SET value = number_counters.value + 1
        RETURNING value`
	var value int
	if err := r.db.GetContext(ctx, &value, query, dept, kind, year); err != nil {
		return 0, fmt.Errorf("next %s number: %w", kind, err)
	}
	return value, nil
}
