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

// ComplaintRepository manages persistence for citizen complaints.
type ComplaintRepository struct {
	db *sqlx.DB
}

// NewComplaintRepository constructs a ComplaintRepository.
func NewComplaintRepository(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

const complaintColumns = `id, complaint_number, department, category, priority, status,
        complainant_name, complainant_phone, complainant_email, address, consumer_number,
        description, assigned_engineer, resolution_notes, created_at, updated_at`

// List returns complaints matching the provided filters.
func (r *ComplaintRepository) List(ctx context.Context, filter models.ComplaintFilter) ([]models.Complaint, int, error) {
	base := "FROM complaints WHERE department = $1"
	args := []interface{}{filter.Department}

	if filter.Status != "" {
		base += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		base += fmt.Sprintf(" AND category = $%d", len(args)+1)
		args = append(args, filter.Category)
	}
	if filter.Priority != "" {
		base += fmt.Sprintf(" AND priority = $%d", len(args)+1)
		args = append(args, filter.Priority)
	}
	if filter.Search != "" {
		idx := len(args) + 1
		base += fmt.Sprintf(" AND (LOWER(complaint_number) LIKE $%d OR LOWER(complainant_name) LIKE $%d OR LOWER(consumer_number) LIKE $%d)", idx, idx, idx)
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	allowedSorts := map[string]string{
		"created_at":       "created_at",
		"updated_at":       "updated_at",
		"complaint_number": "complaint_number",
		"priority":         "priority",
		"status":           "status",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "created_at"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", complaintColumns, base, column, order, size, offset)

	var complaints []models.Complaint
	if err := r.db.SelectContext(ctx, &complaints, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list complaints: %w", err)
	}

	countQuery := "SELECT COUNT(*) " + base
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count complaints: %w", err)
	}
	return complaints, total, nil
}

// FindByID fetches a complaint by primary key.
func (r *ComplaintRepository) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	query := fmt.Sprintf("SELECT %s FROM complaints WHERE id = $1", complaintColumns)
	var complaint models.Complaint
	if err := r.db.GetContext(ctx, &complaint, query, id); err != nil {
		return nil, err
	}
	return &complaint, nil
}

// Create inserts a new complaint record.
func (r *ComplaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if complaint.CreatedAt.IsZero() {
		complaint.CreatedAt = now
	}
	complaint.UpdatedAt = now
	const query = `INSERT INTO complaints (id, complaint_number, department, category, priority, status,
        complainant_name, complainant_phone, complainant_email, address, consumer_number,
        description, assigned_engineer, resolution_notes, created_at, updated_at)
        VALUES (:id, :complaint_number, :department, :category, :priority, :status,
        :complainant_name, :complainant_phone, :complainant_email, :address, :consumer_number,
        :description, :assigned_engineer, :resolution_notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, complaint); err != nil {
		return fmt.Errorf("create complaint: %w", err)
	}
	return nil
}

// UpdateComplaintParams carries the admin review payload. The complaint
// number is immutable and deliberately absent.
type UpdateComplaintParams struct {
	ID               string
	Status           models.ComplaintStatus
	AssignedEngineer string
	ResolutionNotes  string
	Priority         models.ComplaintPriority
}

// Update overwrites the review fields. Last write wins; no version check.
func (r *ComplaintRepository) Update(ctx context.Context, params UpdateComplaintParams) error {
	const query = `UPDATE complaints SET status = $2, assigned_engineer = $3, resolution_notes = $4, priority = $5, updated_at = $6 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, params.ID, params.Status, params.AssignedEngineer, params.ResolutionNotes, params.Priority, time.Now().UTC()); err != nil {
		return fmt.Errorf("update complaint: %w", err)
	}
	return nil
}

// CountByStatus groups complaints per status for the dashboard.
func (r *ComplaintRepository) CountByStatus(ctx context.Context, dept models.Department) ([]models.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM complaints WHERE department = $1 GROUP BY status`
	var counts []models.StatusCount
	if err := r.db.SelectContext(ctx, &counts, query, dept); err != nil {
		return nil, fmt.Errorf("count complaints by status: %w", err)
	}
	return counts, nil
}

// CountCreatedSince returns the number of complaints received after the
// given instant.
func (r *ComplaintRepository) CountCreatedSince(ctx context.Context, dept models.Department, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM complaints WHERE department = $1 AND created_at >= $2`
	var total int
	if err := r.db.GetContext(ctx, &total, query, dept, since); err != nil {
		return 0, fmt.Errorf("count recent complaints: %w", err)
	}
	return total, nil
}
