package handler

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	"github.com/shelkesanchit/Suvidha-sub000/internal/repository"
)

type applicationRepoStub struct {
	apps       map[string]*models.Application
	history    map[string][]models.StageHistoryEntry
	lastUpdate repository.UpdateStatusParams
}

func newApplicationRepoStub() *applicationRepoStub {
	return &applicationRepoStub{
		apps:    make(map[string]*models.Application),
		history: make(map[string][]models.StageHistoryEntry),
	}
}

func (s *applicationRepoStub) List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, int, error) {
	out := make([]models.Application, 0, len(s.apps))
	for _, a := range s.apps {
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (s *applicationRepoStub) FindByID(ctx context.Context, id string) (*models.Application, error) {
	a, ok := s.apps[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (s *applicationRepoStub) FindByNumber(ctx context.Context, dept models.Department, number string) (*models.Application, error) {
	for _, a := range s.apps {
		if a.Department == dept && a.ApplicationNumber == number {
			copied := *a
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *applicationRepoStub) Create(ctx context.Context, application *models.Application, initial *models.StageHistoryEntry) error {
	application.ID = fmt.Sprintf("app-%d", len(s.apps)+1)
	copied := *application
	s.apps[application.ID] = &copied
	entry := *initial
	entry.ApplicationID = application.ID
	s.history[application.ID] = append(s.history[application.ID], entry)
	return nil
}

func (s *applicationRepoStub) UpdateStatus(ctx context.Context, params repository.UpdateStatusParams) error {
	s.lastUpdate = params
	a, ok := s.apps[params.ID]
	if !ok {
		return sql.ErrNoRows
	}
	a.Status = params.Status
	a.CurrentStage = params.CurrentStage
	a.AssignedEngineer = params.AssignedEngineer
	s.history[params.ID] = append(s.history[params.ID], models.StageHistoryEntry{
		ApplicationID: params.ID,
		Stage:         params.CurrentStage,
		Status:        params.Status,
		Remarks:       params.Remarks,
		RecordedBy:    params.RecordedBy,
		RecordedAt:    time.Now().UTC(),
	})
	return nil
}

func (s *applicationRepoStub) ListStageHistory(ctx context.Context, applicationID string) ([]models.StageHistoryEntry, error) {
	return s.history[applicationID], nil
}

type billingRepoStub struct {
	readings map[string]*models.MeterReading
	payments map[string]*models.Payment
}

func newBillingRepoStub() *billingRepoStub {
	return &billingRepoStub{
		readings: make(map[string]*models.MeterReading),
		payments: make(map[string]*models.Payment),
	}
}

func (s *billingRepoStub) LatestReading(ctx context.Context, dept models.Department, consumerNumber string) (*models.MeterReading, error) {
	return s.readings[consumerNumber], nil
}

func (s *billingRepoStub) CreateReading(ctx context.Context, reading *models.MeterReading) error {
	s.readings[reading.ConsumerNumber] = reading
	return nil
}

func (s *billingRepoStub) CreatePayment(ctx context.Context, payment *models.Payment) error {
	s.payments[payment.ReceiptNumber] = payment
	return nil
}

func (s *billingRepoStub) FindPaymentByReceipt(ctx context.Context, dept models.Department, receiptNumber string) (*models.Payment, error) {
	p, ok := s.payments[receiptNumber]
	if !ok || p.Department != dept {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

type authRepoStub struct {
	users  map[string]*models.User
	audits []*models.AuditLog
}

func newAuthRepoStub(users ...*models.User) *authRepoStub {
	s := &authRepoStub{users: make(map[string]*models.User)}
	for _, u := range users {
		s.users[u.Username] = u
	}
	return s
}

func (s *authRepoStub) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (s *authRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *authRepoStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error { return nil }

func (s *authRepoStub) RevokeUserRefreshTokens(ctx context.Context, userID string) error { return nil }

func (s *authRepoStub) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return nil
}

func (s *authRepoStub) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	return nil, sql.ErrNoRows
}

func (s *authRepoStub) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	return nil
}

func (s *authRepoStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	s.audits = append(s.audits, log)
	return nil
}

type numbersStub struct{ seq int }

func (s *numbersStub) Next(ctx context.Context, dept models.Department, kind string, year int) (int, error) {
	s.seq++
	return s.seq, nil
}

type documentsStub struct{}

func (documentsStub) StoreUploads(ctx context.Context, dept models.Department, resource, resourceID string, uploads []models.DocumentUpload) ([]models.Document, error) {
	return nil, nil
}

func (documentsStub) ListByResource(ctx context.Context, resource, resourceID string) ([]models.Document, error) {
	return nil, nil
}

type notifierStub struct{ queued []models.Notification }

func (s *notifierStub) Queue(ctx context.Context, n models.Notification) {
	s.queued = append(s.queued, n)
}

type auditStub struct{ logs []*models.AuditLog }

func (s *auditStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	s.logs = append(s.logs, log)
	return nil
}

type dashboardStub struct{ invalidated []models.Department }

func (s *dashboardStub) Invalidate(ctx context.Context, dept models.Department) {
	s.invalidated = append(s.invalidated, dept)
}
