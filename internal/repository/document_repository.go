package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
)

// DocumentRepository manages metadata for stored citizen attachments.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository constructs a DocumentRepository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts document metadata.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	const query = `INSERT INTO documents (id, department, resource, resource_id, file_name, mime_type, size_bytes, path, uploaded_at)
        VALUES (:id, :department, :resource, :resource_id, :file_name, :mime_type, :size_bytes, :path, :uploaded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// FindByID fetches document metadata by primary key.
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*models.Document, error) {
	const query = `SELECT id, department, resource, resource_id, file_name, mime_type, size_bytes, path, uploaded_at
        FROM documents WHERE id = $1`
	var doc models.Document
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListByResource returns the attachments for one application or complaint.
func (r *DocumentRepository) ListByResource(ctx context.Context, resource, resourceID string) ([]models.Document, error) {
	const query = `SELECT id, department, resource, resource_id, file_name, mime_type, size_bytes, path, uploaded_at
        FROM documents WHERE resource = $1 AND resource_id = $2 ORDER BY uploaded_at ASC`
	var docs []models.Document
	if err := r.db.SelectContext(ctx, &docs, query, resource, resourceID); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}
