package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	"github.com/shelkesanchit/Suvidha-sub000/internal/repository"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/export"
)

type applicationRepository interface {
	List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, int, error)
	FindByID(ctx context.Context, id string) (*models.Application, error)
	FindByNumber(ctx context.Context, dept models.Department, number string) (*models.Application, error)
	Create(ctx context.Context, application *models.Application, initial *models.StageHistoryEntry) error
	UpdateStatus(ctx context.Context, params repository.UpdateStatusParams) error
	ListStageHistory(ctx context.Context, applicationID string) ([]models.StageHistoryEntry, error)
}

type numberIssuer interface {
	Next(ctx context.Context, dept models.Department, kind string, year int) (int, error)
}

type auditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type documentStorer interface {
	StoreUploads(ctx context.Context, dept models.Department, resource, resourceID string, uploads []models.DocumentUpload) ([]models.Document, error)
	ListByResource(ctx context.Context, resource, resourceID string) ([]models.Document, error)
}

type notificationQueuer interface {
	Queue(ctx context.Context, n models.Notification)
}

type dashboardInvalidator interface {
	Invalidate(ctx context.Context, dept models.Department)
}

// SubmitApplicationRequest is the kiosk payload for a new service request.
type SubmitApplicationRequest struct {
	ApplicationType string                  `json:"application_type" validate:"required"`
	ApplicantName   string                  `json:"applicant_name" validate:"required"`
	ApplicantPhone  string                  `json:"applicant_phone" validate:"required"`
	ApplicantEmail  string                  `json:"applicant_email" validate:"omitempty,email"`
	Address         string                  `json:"address" validate:"required"`
	ConsumerNumber  string                  `json:"consumer_number"`
	ApplicationFee  float64                 `json:"application_fee" validate:"gte=0"`
	SecurityDeposit float64                 `json:"security_deposit" validate:"gte=0"`
	Documents       []models.DocumentUpload `json:"documents" validate:"dive"`
	IP              string                  `json:"-"`
	UserAgent       string                  `json:"-"`
}

// UpdateApplicationStatusRequest is the admin review payload.
type UpdateApplicationStatusRequest struct {
	Status           models.ApplicationStatus `json:"status" validate:"required"`
	CurrentStage     string                   `json:"current_stage"`
	AssignedEngineer string                   `json:"assigned_engineer"`
	Remarks          string                   `json:"remarks"`
}

// ApplicationService handles citizen submissions and admin review of
// service applications.
type ApplicationService struct {
	repo      applicationRepository
	numbers   numberIssuer
	documents documentStorer
	notifier  notificationQueuer
	audit     auditRecorder
	dashboard dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewApplicationService constructs the application service.
func NewApplicationService(repo applicationRepository, numbers numberIssuer, documents documentStorer, notifier notificationQueuer, audit auditRecorder, dashboard dashboardInvalidator, validate *validator.Validate, logger *zap.Logger) *ApplicationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		repo:      repo,
		numbers:   numbers,
		documents: documents,
		notifier:  notifier,
		audit:     audit,
		dashboard: dashboard,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit registers a new citizen application. A human-readable number is
// issued and the first stage history entry is written in the same
// transaction as the application row.
func (s *ApplicationService) Submit(ctx context.Context, dept models.Department, req SubmitApplicationRequest) (*models.ApplicationDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid application payload")
	}

	now := s.now()
	seq, err := s.numbers.Next(ctx, dept, repository.CounterKindApplication, now.Year())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue application number")
	}

	application := &models.Application{
		ApplicationNumber: fmt.Sprintf("%s-%d-%05d", dept.ApplicationPrefix(), now.Year(), seq),
		Department:        dept,
		ApplicationType:   req.ApplicationType,
		Status:            models.ApplicationStatusSubmitted,
		CurrentStage:      "Application Received",
		ApplicantName:     req.ApplicantName,
		ApplicantPhone:    req.ApplicantPhone,
		ApplicantEmail:    req.ApplicantEmail,
		Address:           req.Address,
		ConsumerNumber:    req.ConsumerNumber,
		ApplicationFee:    req.ApplicationFee,
		SecurityDeposit:   req.SecurityDeposit,
		TotalFee:          req.ApplicationFee + req.SecurityDeposit,
		SubmittedAt:       now,
		UpdatedAt:         now,
	}
	initial := &models.StageHistoryEntry{
		Stage:      application.CurrentStage,
		Status:     application.Status,
		Remarks:    "Submitted at self-service kiosk",
		RecordedAt: now,
	}
	if err := s.repo.Create(ctx, application, initial); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create application")
	}

	docs, err := s.documents.StoreUploads(ctx, dept, "application", application.ID, req.Documents)
	if err != nil {
		// The application row is already committed; surface the document
		// failure but keep the submission.
		s.logger.Warn("failed to store application documents",
			zap.String("application_number", application.ApplicationNumber), zap.Error(err))
	}

	recordAudit(ctx, s.audit, s.logger, nil, dept, models.AuditActionCitizenSubmit, "application", application.ID, map[string]interface{}{
		"application_number": application.ApplicationNumber,
		"application_type":   application.ApplicationType,
	}, req.IP, req.UserAgent)

	s.notifier.Queue(ctx, models.Notification{
		Department: dept,
		Channel:    models.ChannelSMS,
		Recipient:  application.ApplicantPhone,
		Subject:    "Application received",
		Body: fmt.Sprintf("Your %s application %s has been received. Track it with this number at the kiosk.",
			dept.DisplayName(), application.ApplicationNumber),
		Resource:   "application",
		ResourceID: application.ID,
	})

	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, dept)
	}

	initial.ApplicationID = application.ID
	return &models.ApplicationDetail{
		Application:  *application,
		StageHistory: []models.StageHistoryEntry{*initial},
		Documents:    docs,
	}, nil
}

// List returns applications and pagination metadata for the admin register.
func (s *ApplicationService) List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, *models.Pagination, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrInvalidStatus, "")
	}
	applications, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return applications, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one application with its full stage history and documents.
func (s *ApplicationService) Get(ctx context.Context, dept models.Department, id string) (*models.ApplicationDetail, error) {
	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	if application.Department != dept {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
	}
	return s.buildDetail(ctx, application)
}

// Track resolves an application by its public number for the kiosk status
// screen. No authentication is required; the number itself is the secret.
func (s *ApplicationService) Track(ctx context.Context, dept models.Department, number string) (*models.ApplicationDetail, error) {
	application, err := s.repo.FindByNumber(ctx, dept, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no application with that number")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	return s.buildDetail(ctx, application)
}

// UpdateStatus applies an admin review decision. Any member of the status
// enum is accepted regardless of the current value; the stage history entry
// is appended in the same transaction as the update.
func (s *ApplicationService) UpdateStatus(ctx context.Context, dept models.Department, id string, req UpdateApplicationStatusRequest, actor *models.JWTClaims, ip, userAgent string) (*models.ApplicationDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrInvalidStatus, "")
	}

	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	if application.Department != dept {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
	}

	stage := req.CurrentStage
	if stage == "" {
		stage = stageLabel(req.Status)
	}
	engineer := req.AssignedEngineer
	if engineer == "" {
		engineer = application.AssignedEngineer
	}

	var recordedBy string
	if actor != nil {
		recordedBy = actor.UserID
	}
	if err := s.repo.UpdateStatus(ctx, repository.UpdateStatusParams{
		ID:               id,
		Status:           req.Status,
		CurrentStage:     stage,
		AssignedEngineer: engineer,
		Remarks:          req.Remarks,
		RecordedBy:       recordedBy,
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update application status")
	}

	var actorID *string
	if actor != nil {
		actorID = &actor.UserID
	}
	recordAudit(ctx, s.audit, s.logger, actorID, dept, models.AuditActionStatusUpdate, "application", id, map[string]interface{}{
		"from": application.Status,
		"to":   req.Status,
	}, ip, userAgent)

	s.notifier.Queue(ctx, models.Notification{
		Department: dept,
		Channel:    models.ChannelSMS,
		Recipient:  application.ApplicantPhone,
		Subject:    "Application update",
		Body: fmt.Sprintf("Application %s is now at stage: %s.",
			application.ApplicationNumber, stage),
		Resource:   "application",
		ResourceID: id,
	})

	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, dept)
	}
	return s.Get(ctx, dept, id)
}

// ExportCSV renders the filtered application register as CSV bytes.
func (s *ApplicationService) ExportCSV(ctx context.Context, filter models.ApplicationFilter) ([]byte, error) {
	filter.Page = 1
	filter.PageSize = 100
	headers := []string{"Application No", "Type", "Status", "Stage", "Applicant", "Phone", "Consumer No", "Total Fee", "Submitted At"}
	rows := make([]map[string]string, 0)

	for {
		applications, total, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export applications")
		}
		for _, a := range applications {
			rows = append(rows, map[string]string{
				"Application No": a.ApplicationNumber,
				"Type":           a.ApplicationType,
				"Status":         string(a.Status),
				"Stage":          a.CurrentStage,
				"Applicant":      a.ApplicantName,
				"Phone":          a.ApplicantPhone,
				"Consumer No":    a.ConsumerNumber,
				"Total Fee":      fmt.Sprintf("%.2f", a.TotalFee),
				"Submitted At":   a.SubmittedAt.Format(time.RFC3339),
			})
		}
		if len(rows) >= total || len(applications) == 0 {
			break
		}
		filter.Page++
	}

	return export.NewCSVExporter().Render(export.Dataset{Headers: headers, Rows: rows})
}

func (s *ApplicationService) buildDetail(ctx context.Context, application *models.Application) (*models.ApplicationDetail, error) {
	history, err := s.repo.ListStageHistory(ctx, application.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stage history")
	}
	docs, err := s.documents.ListByResource(ctx, "application", application.ID)
	if err != nil {
		s.logger.Warn("failed to list application documents", zap.String("application_id", application.ID), zap.Error(err))
	}
	return &models.ApplicationDetail{Application: *application, StageHistory: history, Documents: docs}, nil
}

func stageLabel(status models.ApplicationStatus) string {
	switch status {
	case models.ApplicationStatusSubmitted:
		return "Application Received"
	case models.ApplicationStatusDocumentVerification:
		return "Document Verification"
	case models.ApplicationStatusSiteInspection:
		return "Site Inspection"
	case models.ApplicationStatusApprovalPending:
		return "Approval Pending"
	case models.ApplicationStatusApproved:
		return "Approved"
	case models.ApplicationStatusRejected:
		return "Rejected"
	case models.ApplicationStatusWorkInProgress:
		return "Work In Progress"
	case models.ApplicationStatusCompleted:
		return "Completed"
	default:
		return string(status)
	}
}
