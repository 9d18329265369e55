package service

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/storage"
)

type documentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	FindByID(ctx context.Context, id string) (*models.Document, error)
	ListByResource(ctx context.Context, resource, resourceID string) ([]models.Document, error)
}

// DocumentServiceConfig carries upload validation limits.
type DocumentServiceConfig struct {
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// DocumentService stores citizen attachments and issues signed download
// tokens for them.
type DocumentService struct {
	repo     documentRepository
	store    *storage.LocalStorage
	receipts *storage.LocalStorage
	signer   *storage.SignedURLSigner
	logger   *zap.Logger
	maxSize  int64
	mimes    map[string]struct{}
}

// NewDocumentService constructs the document service. The receipts store
// backs download tokens issued for payment receipts, which live outside
// the citizen upload tree.
func NewDocumentService(repo documentRepository, store, receipts *storage.LocalStorage, signer *storage.SignedURLSigner, logger *zap.Logger, cfg DocumentServiceConfig) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxSize := cfg.MaxFileSizeBytes
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	mimes := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, m := range cfg.AllowedMIMEs {
		mimes[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}
	if receipts == nil {
		receipts = store
	}
	return &DocumentService{repo: repo, store: store, receipts: receipts, signer: signer, logger: logger, maxSize: maxSize, mimes: mimes}
}

// StoreUploads validates, decodes and persists kiosk attachments for one
// application or complaint. All-or-nothing: the first bad upload aborts the
// batch before anything is written.
func (s *DocumentService) StoreUploads(ctx context.Context, dept models.Department, resource, resourceID string, uploads []models.DocumentUpload) ([]models.Document, error) {
	if len(uploads) == 0 {
		return nil, nil
	}

	decoded := make([][]byte, len(uploads))
	for i, upload := range uploads {
		if _, ok := s.mimes[strings.ToLower(upload.MimeType)]; !ok && len(s.mimes) > 0 {
			return nil, appErrors.Clone(appErrors.ErrUnsupportedMIME, fmt.Sprintf("document type %s is not accepted", upload.MimeType))
		}
		raw, err := base64.StdEncoding.DecodeString(upload.Content)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "document content is not valid base64")
		}
		if int64(len(raw)) > s.maxSize {
			return nil, appErrors.Clone(appErrors.ErrDocumentTooLarge, "")
		}
		decoded[i] = raw
	}

	docs := make([]models.Document, 0, len(uploads))
	for i, upload := range uploads {
		id := uuid.NewString()
		relPath := filepath.Join(string(dept), resource, id+"-"+sanitizeFileName(upload.FileName))
		if _, err := s.store.Save(relPath, decoded[i]); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store document")
		}

		doc := models.Document{
			ID:         id,
			Department: dept,
			Resource:   resource,
			ResourceID: resourceID,
			FileName:   upload.FileName,
			MimeType:   strings.ToLower(upload.MimeType),
			SizeBytes:  int64(len(decoded[i])),
			Path:       relPath,
			UploadedAt: time.Now().UTC(),
		}
		if err := s.repo.Create(ctx, &doc); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record document")
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ListByResource returns attachment metadata for one record.
func (s *DocumentService) ListByResource(ctx context.Context, resource, resourceID string) ([]models.Document, error) {
	docs, err := s.repo.ListByResource(ctx, resource, resourceID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list documents")
	}
	return docs, nil
}

// SignedDownload issues a time-limited download token for a stored document.
func (s *DocumentService) SignedDownload(ctx context.Context, documentID string) (string, time.Time, error) {
	doc, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, appErrors.Clone(appErrors.ErrNotFound, "document not found")
		}
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}
	token, expiresAt, err := s.signer.Generate(doc.ID, doc.Path)
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download")
	}
	return token, expiresAt, nil
}

// SignPath issues a download token for an arbitrary stored path, used for
// payment receipts that have no documents row.
func (s *DocumentService) SignPath(id, relPath string) (string, time.Time, error) {
	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download")
	}
	return token, expiresAt, nil
}

// Resolve validates a download token and opens the referenced file. The
// returned metadata may be nil when the token points at a receipt render
// rather than a citizen upload.
func (s *DocumentService) Resolve(ctx context.Context, token string) (*models.Document, *os.File, error) {
	id, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired download token")
	}

	var doc *models.Document
	stored, err := s.repo.FindByID(ctx, id)
	switch {
	case err == nil:
		doc = stored
	case errors.Is(err, sql.ErrNoRows):
		// Receipt tokens carry a payment id with no documents row.
	default:
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}

	source := s.store
	if doc == nil {
		source = s.receipts
	}
	file, err := source.Open(relPath)
	if err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "stored file is missing")
	}
	return doc, file, nil
}

func sanitizeFileName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "upload"
	}
	return name
}
