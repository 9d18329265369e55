package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
)

// SettingRepository manages department-scoped key/value settings.
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository constructs a SettingRepository.
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// List returns all settings for a department ordered by key.
func (r *SettingRepository) List(ctx context.Context, dept models.Department) ([]models.Setting, error) {
	const query = `SELECT id, department, key, value, type, updated_by, updated_at
        FROM settings WHERE department = $1 ORDER BY key ASC`
	var settings []models.Setting
	if err := r.db.SelectContext(ctx, &settings, query, dept); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

// Get fetches one setting by department and key.
func (r *SettingRepository) Get(ctx context.Context, dept models.Department, key string) (*models.Setting, error) {
	const query = `SELECT id, department, key, value, type, updated_by, updated_at
        FROM settings WHERE department = $1 AND key = $2`
	var setting models.Setting
	if err := r.db.GetContext(ctx, &setting, query, dept, key); err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert creates or replaces a setting value.
func (r *SettingRepository) Upsert(ctx context.Context, setting *models.Setting) error {
	if setting.ID == "" {
		setting.ID = uuid.NewString()
	}
	setting.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO settings (id, department, key, value, type, updated_by, updated_at)
        VALUES (:id, :department, :key, :value, :type, :updated_by, :updated_at)
        ON CONFLICT (department, key)
        DO UPDATE SET value = EXCLUDED.value, type = EXCLUDED.type, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, setting); err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

// BulkUpsert applies several settings in one transaction.
func (r *SettingRepository) BulkUpsert(ctx context.Context, settings []models.Setting) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings upsert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO settings (id, department, key, value, type, updated_by, updated_at)
        VALUES (:id, :department, :key, :value, :type, :updated_by, :updated_at)
        ON CONFLICT (department, key)
        DO UPDATE SET value = EXCLUDED.value, type = EXCLUDED.type, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at`
	for i := range settings {
		if settings[i].ID == "" {
			settings[i].ID = uuid.NewString()
		}
		settings[i].UpdatedAt = time.Now().UTC()
		if _, err := tx.NamedExecContext(ctx, query, settings[i]); err != nil {
			return fmt.Errorf("upsert setting %s: %w", settings[i].Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings upsert: %w", err)
	}
	return nil
}
