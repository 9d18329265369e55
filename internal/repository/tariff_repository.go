package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
)

// TariffRepository manages persistence for department rate tables.
type TariffRepository struct {
	db *sqlx.DB
}

// NewTariffRepository constructs a TariffRepository.
func NewTariffRepository(db *sqlx.DB) *TariffRepository {
	return &TariffRepository{db: db}
}

const tariffColumns = `id, department, category, unit_from, unit_to, rate_per_unit, fixed_charge, effective_from, created_at, updated_at`

// List returns tariffs for a department ordered by category and slab.
func (r *TariffRepository) List(ctx context.Context, filter models.TariffFilter) ([]models.Tariff, error) {
	query := fmt.Sprintf("SELECT %s FROM tariffs WHERE department = $1", tariffColumns)
	args := []interface{}{filter.Department}
	if filter.Category != "" {
		query += " AND category = $2"
		args = append(args, filter.Category)
	}
	query += " ORDER BY category ASC, unit_from ASC, effective_from DESC NULLS LAST"

	var tariffs []models.Tariff
	if err := r.db.SelectContext(ctx, &tariffs, query, args...); err != nil {
		return nil, fmt.Errorf("list tariffs: %w", err)
	}
	return tariffs, nil
}

// FindByID fetches a tariff slab by primary key.
func (r *TariffRepository) FindByID(ctx context.Context, id string) (*models.Tariff, error) {
	query := fmt.Sprintf("SELECT %s FROM tariffs WHERE id = $1", tariffColumns)
	var tariff models.Tariff
	if err := r.db.GetContext(ctx, &tariff, query, id); err != nil {
		return nil, err
	}
	return &tariff, nil
}

// Create inserts a new tariff slab.
func (r *TariffRepository) Create(ctx context.Context, tariff *models.Tariff) error {
	if tariff.ID == "" {
		tariff.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if tariff.CreatedAt.IsZero() {
		tariff.CreatedAt = now
	}
	tariff.UpdatedAt = now
	const query = `INSERT INTO tariffs (id, department, category, unit_from, unit_to, rate_per_unit, fixed_charge, effective_from, created_at, updated_at)
        VALUES (:id, :department, :category, :unit_from, :unit_to, :rate_per_unit, :fixed_charge, :effective_from, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, tariff); err != nil {
		return fmt.Errorf("create tariff: %w", err)
	}
	return nil
}

// Update modifies an existing tariff slab.
func (r *TariffRepository) Update(ctx context.Context, tariff *models.Tariff) error {
	tariff.UpdatedAt = time.Now().UTC()
	const query = `UPDATE tariffs SET category = :category, unit_from = :unit_from, unit_to = :unit_to,
        rate_per_unit = :rate_per_unit, fixed_charge = :fixed_charge, effective_from = :effective_from, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, tariff); err != nil {
		return fmt.Errorf("update tariff: %w", err)
	}
	return nil
}

// Delete removes a tariff slab.
func (r *TariffRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tariffs WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete tariff: %w", err)
	}
	return nil
}
