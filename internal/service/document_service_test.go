package service

import (
	"context"
	"database/sql"
	"encoding/base64"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/storage"
)

type mockDocumentRepo struct {
	docs map[string]*models.Document
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{docs: make(map[string]*models.Document)}
}

func (m *mockDocumentRepo) Create(_ context.Context, doc *models.Document) error {
	copied := *doc
	m.docs[doc.ID] = &copied
	return nil
}

func (m *mockDocumentRepo) FindByID(_ context.Context, id string) (*models.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *doc
	return &copied, nil
}

func (m *mockDocumentRepo) ListByResource(_ context.Context, resource, resourceID string) ([]models.Document, error) {
	out := make([]models.Document, 0)
	for _, doc := range m.docs {
		if doc.Resource == resource && doc.ResourceID == resourceID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func newDocumentService(t *testing.T, repo *mockDocumentRepo) (*DocumentService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	receipts, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	svc := NewDocumentService(repo, store, receipts, signer, nil, DocumentServiceConfig{
		MaxFileSizeBytes: 1024,
		AllowedMIMEs:     []string{"application/pdf", "image/png"},
	})
	return svc, receipts
}

func pdfUpload(name, content string) models.DocumentUpload {
	return models.DocumentUpload{
		FileName: name,
		MimeType: "application/pdf",
		Content:  base64.StdEncoding.EncodeToString([]byte(content)),
	}
}

func TestDocumentServiceStoreUploadsRoundTrip(t *testing.T) {
	repo := newMockDocumentRepo()
	svc, _ := newDocumentService(t, repo)

	docs, err := svc.StoreUploads(context.Background(), models.DepartmentWater, "application", "app-1",
		[]models.DocumentUpload{pdfUpload("id proof.pdf", "%PDF-1.4 fake")})

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "id proof.pdf", docs[0].FileName)
	assert.Equal(t, int64(len("%PDF-1.4 fake")), docs[0].SizeBytes)

	token, _, err := svc.SignedDownload(context.Background(), docs[0].ID)
	require.NoError(t, err)

	doc, file, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck
	require.NotNil(t, doc)
	body, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(body))
}

func TestDocumentServiceStoreUploadsRejectsMIME(t *testing.T) {
	repo := newMockDocumentRepo()
	svc, _ := newDocumentService(t, repo)

	_, err := svc.StoreUploads(context.Background(), models.DepartmentWater, "application", "app-1",
		[]models.DocumentUpload{
			pdfUpload("ok.pdf", "fine"),
			{FileName: "malware.exe", MimeType: "application/x-msdownload", Content: base64.StdEncoding.EncodeToString([]byte("MZ"))},
		})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedMIME.Code, appErrors.FromError(err).Code)
	// All-or-nothing: the valid upload in the batch is not stored either.
	assert.Empty(t, repo.docs)
}

func TestDocumentServiceStoreUploadsRejectsOversize(t *testing.T) {
	repo := newMockDocumentRepo()
	svc, _ := newDocumentService(t, repo)

	big := make([]byte, 2048)
	_, err := svc.StoreUploads(context.Background(), models.DepartmentWater, "application", "app-1",
		[]models.DocumentUpload{{FileName: "big.pdf", MimeType: "application/pdf", Content: base64.StdEncoding.EncodeToString(big)}})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDocumentTooLarge.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.docs)
}

func TestDocumentServiceResolveReceiptToken(t *testing.T) {
	repo := newMockDocumentRepo()
	svc, receipts := newDocumentService(t, repo)

	_, err := receipts.Save("water/WR-2026-00001.pdf", []byte("receipt body"))
	require.NoError(t, err)

	token, _, err := svc.SignPath("pay-1", "water/WR-2026-00001.pdf")
	require.NoError(t, err)

	doc, file, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck
	assert.Nil(t, doc)
	body, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "receipt body", string(body))
}

func TestDocumentServiceResolveTamperedToken(t *testing.T) {
	repo := newMockDocumentRepo()
	svc, _ := newDocumentService(t, repo)

	token, _, err := svc.SignPath("pay-1", "water/WR-2026-00001.pdf")
	require.NoError(t, err)

	_, _, err = svc.Resolve(context.Background(), token+"ff")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
