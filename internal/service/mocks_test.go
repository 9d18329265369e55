package service

import (
	"context"
	"fmt"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
)

type mockNumbers struct {
	next int
	err  error
}

func (m *mockNumbers) Next(_ context.Context, _ models.Department, _ string, _ int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.next++
	return m.next, nil
}

type mockNotifier struct {
	queued []models.Notification
}

func (m *mockNotifier) Queue(_ context.Context, n models.Notification) {
	m.queued = append(m.queued, n)
}

type mockAudit struct {
	logs []models.AuditLog
}

func (m *mockAudit) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, *log)
	return nil
}

type mockDashboard struct {
	invalidated []models.Department
}

func (m *mockDashboard) Invalidate(_ context.Context, dept models.Department) {
	m.invalidated = append(m.invalidated, dept)
}

type mockDocuments struct {
	stored map[string][]models.Document
}

func (m *mockDocuments) StoreUploads(_ context.Context, dept models.Department, resource, resourceID string, uploads []models.DocumentUpload) ([]models.Document, error) {
	if m.stored == nil {
		m.stored = make(map[string][]models.Document)
	}
	docs := make([]models.Document, 0, len(uploads))
	for i, upload := range uploads {
		docs = append(docs, models.Document{
			ID:         fmt.Sprintf("doc-%d", i+1),
			Department: dept,
			Resource:   resource,
			ResourceID: resourceID,
			FileName:   upload.FileName,
			MimeType:   upload.MimeType,
		})
	}
	m.stored[resource+"/"+resourceID] = docs
	return docs, nil
}

func (m *mockDocuments) ListByResource(_ context.Context, resource, resourceID string) ([]models.Document, error) {
	return m.stored[resource+"/"+resourceID], nil
}
