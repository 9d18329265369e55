package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
)

// ApplicationRepository manages persistence for citizen applications and
// their stage history.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs an ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, application_number, department, application_type, status, current_stage,
        assigned_engineer, applicant_name, applicant_phone, applicant_email, address, consumer_number,
        application_fee, security_deposit, total_fee, submitted_at, updated_at`

// List returns applications matching the provided filters.
func (r *ApplicationRepository) List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, int, error) {
	base := "FROM applications WHERE department = $1"
	args := []interface{}{filter.Department}

	if filter.Status != "" {
		base += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, filter.Status)
	}
	if filter.Type != "" {
		base += fmt.Sprintf(" AND application_type = $%d", len(args)+1)
		args = append(args, filter.Type)
	}
	if filter.Search != "" {
		idx := len(args) + 1
		base += fmt.Sprintf(" AND (LOWER(application_number) LIKE $%d OR LOWER(applicant_name) LIKE $%d OR LOWER(consumer_number) LIKE $%d)", idx, idx, idx)
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"submitted_at":       "submitted_at",
		"updated_at":         "updated_at",
		"application_number": "application_number",
		"status":             "status",
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "submitted_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", applicationColumns, base, column, order, size, offset)

	var applications []models.Application
	if err := r.db.SelectContext(ctx, &applications, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}

	countQuery := "SELECT COUNT(*) " + base
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}
	return applications, total, nil
}

// FindByID fetches an application by primary key.
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*models.Application, error) {
	query := fmt.Sprintf("SELECT %s FROM applications WHERE id = $1", applicationColumns)
	var application models.Application
	if err := r.db.GetContext(ctx, &application, query, id); err != nil {
		return nil, err
	}
	return &application, nil
}

// FindByNumber fetches an application by its human-readable number.
func (r *ApplicationRepository) FindByNumber(ctx context.Context, dept models.Department, number string) (*models.Application, error) {
	query := fmt.Sprintf("SELECT %s FROM applications WHERE department = $1 AND application_number = $2", applicationColumns)
	var application models.Application
	if err := r.db.GetContext(ctx, &application, query, dept, number); err != nil {
		return nil, err
	}
	return &application, nil
}

// Create inserts a new application together with its initial stage history
// row in one transaction.
func (r *ApplicationRepository) Create(ctx context.Context, application *models.Application, initial *models.StageHistoryEntry) error {
	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if application.SubmittedAt.IsZero() {
		application.SubmittedAt = now
	}
	application.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create application: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertApp = `INSERT INTO applications (id, application_number, department, application_type, status, current_stage,
        assigned_engineer, applicant_name, applicant_phone, applicant_email, address, consumer_number,
        application_fee, security_deposit, total_fee, submitted_at, updated_at)
        VALUES (:id, :application_number, :department, :application_type, :status, :current_stage,
        :assigned_engineer, :applicant_name, :applicant_phone, :applicant_email, :address, :consumer_number,
        :application_fee, :security_deposit, :total_fee, :submitted_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertApp, application); err != nil {
		return fmt.Errorf("create application: %w", err)
	}

	if initial != nil {
		if err := insertStageHistory(ctx, tx, application.ID, initial); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create application: %w", err)
	}
	return nil
}

// UpdateStatusParams carries the admin transition payload. The application
// number and submitted_at are intentionally absent: they are immutable.
type UpdateStatusParams struct {
	ID               string
	Status           models.ApplicationStatus
	CurrentStage     string
	AssignedEngineer string
	Remarks          string
	RecordedBy       string
}

// UpdateStatus overwrites the workflow fields and appends a stage history
// row in one transaction. A failed update mutates nothing.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, params UpdateStatusParams) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin status update: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const update = `UPDATE applications SET status = $2, current_stage = $3, assigned_engineer = $4, updated_at = $5 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, update, params.ID, params.Status, params.CurrentStage, params.AssignedEngineer, time.Now().UTC()); err != nil {
		return fmt.Errorf("update application status: %w", err)
	}

	entry := &models.StageHistoryEntry{
		Stage:      params.CurrentStage,
		Status:     params.Status,
		Remarks:    params.Remarks,
		RecordedBy: params.RecordedBy,
	}
	if err := insertStageHistory(ctx, tx, params.ID, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit status update: %w", err)
	}
	return nil
}

// ListStageHistory returns the append-only trail in chronological order.
func (r *ApplicationRepository) ListStageHistory(ctx context.Context, applicationID string) ([]models.StageHistoryEntry, error) {
	const query = `SELECT id, application_id, stage, status, remarks, recorded_by, recorded_at
        FROM application_stage_history WHERE application_id = $1 ORDER BY recorded_at ASC`
	var entries []models.StageHistoryEntry
	if err := r.db.SelectContext(ctx, &entries, query, applicationID); err != nil {
		return nil, fmt.Errorf("list stage history: %w", err)
	}
	return entries, nil
}

// CountByStatus groups applications per status for the dashboard.
func (r *ApplicationRepository) CountByStatus(ctx context.Context, dept models.Department) ([]models.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM applications WHERE department = $1 GROUP BY status`
	var counts []models.StatusCount
	if err := r.db.SelectContext(ctx, &counts, query, dept); err != nil {
		return nil, fmt.Errorf("count applications by status: %w", err)
	}
	return counts, nil
}

// CountSubmittedSince returns the number of applications received after
// the given instant.
func (r *ApplicationRepository) CountSubmittedSince(ctx context.Context, dept models.Department, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM applications WHERE department = $1 AND submitted_at >= $2`
	var total int
	if err := r.db.GetContext(ctx, &total, query, dept, since); err != nil {
		return 0, fmt.Errorf("count recent applications: %w", err)
	}
	return total, nil
}

func insertStageHistory(ctx context.Context, tx *sqlx.Tx, applicationID string, entry *models.StageHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.ApplicationID = applicationID
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	const insert = `INSERT INTO application_stage_history (id, application_id, stage, status, remarks, recorded_by, recorded_at)
        VALUES (:id, :application_id, :stage, :status, :remarks, :recorded_by, :recorded_at)`
	if _, err := tx.NamedExecContext(ctx, insert, entry); err != nil {
		return fmt.Errorf("append stage history: %w", err)
	}
	return nil
}
