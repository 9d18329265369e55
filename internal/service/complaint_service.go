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
)

type complaintRepository interface {
	List(ctx context.Context, filter models.ComplaintFilter) ([]models.Complaint, int, error)
	FindByID(ctx context.Context, id string) (*models.Complaint, error)
	Create(ctx context.Context, complaint *models.Complaint) error
	Update(ctx context.Context, params repository.UpdateComplaintParams) error
}

// SubmitComplaintRequest is the kiosk payload for a new complaint. Urgency
// uses the legacy 1-10 scale; priority may be supplied directly instead.
type SubmitComplaintRequest struct {
	Category         string                   `json:"category" validate:"required"`
	Description      string                   `json:"description" validate:"required"`
	ComplainantName  string                   `json:"complainant_name" validate:"required"`
	ComplainantPhone string                   `json:"complainant_phone" validate:"required"`
	ComplainantEmail string                   `json:"complainant_email" validate:"omitempty,email"`
	Address          string                   `json:"address"`
	ConsumerNumber   string                   `json:"consumer_number"`
	Priority         models.ComplaintPriority `json:"priority"`
	Urgency          int                      `json:"urgency" validate:"gte=0,lte=10"`
	Documents        []models.DocumentUpload  `json:"documents" validate:"dive"`
	IP               string                   `json:"-"`
	UserAgent        string                   `json:"-"`
}

// UpdateComplaintRequest is the admin review payload.
type UpdateComplaintRequest struct {
	Status           models.ComplaintStatus   `json:"status" validate:"required"`
	AssignedEngineer string                   `json:"assigned_engineer"`
	ResolutionNotes  string                   `json:"resolution_notes"`
	Priority         models.ComplaintPriority `json:"priority"`
}

// ComplaintService handles citizen complaint intake and admin review.
type ComplaintService struct {
	repo      complaintRepository
	numbers   numberIssuer
	documents documentStorer
	notifier  notificationQueuer
	audit     auditRecorder
	dashboard dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewComplaintService constructs the complaint service.
func NewComplaintService(repo complaintRepository, numbers numberIssuer, documents documentStorer, notifier notificationQueuer, audit auditRecorder, dashboard dashboardInvalidator, validate *validator.Validate, logger *zap.Logger) *ComplaintService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplaintService{
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

// Submit registers a new citizen complaint and issues its number.
func (s *ComplaintService) Submit(ctx context.Context, dept models.Department, req SubmitComplaintRequest) (*models.ComplaintDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid complaint payload")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityFromUrgency(req.Urgency)
	}
	if !priority.Valid() {
		return nil, appErrors.Wrap(fmt.Errorf("priority %q", req.Priority), appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown priority")
	}

	now := s.now()
	seq, err := s.numbers.Next(ctx, dept, repository.CounterKindComplaint, now.Year())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue complaint number")
	}

	complaint := &models.Complaint{
		ComplaintNumber:  fmt.Sprintf("%s-%d-%05d", dept.ComplaintPrefix(), now.Year(), seq),
		Department:       dept,
		Category:         req.Category,
		Priority:         priority,
		Status:           models.ComplaintStatusOpen,
		ComplainantName:  req.ComplainantName,
		ComplainantPhone: req.ComplainantPhone,
		ComplainantEmail: req.ComplainantEmail,
		Address:          req.Address,
		ConsumerNumber:   req.ConsumerNumber,
		Description:      req.Description,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create complaint")
	}

	docs, err := s.documents.StoreUploads(ctx, dept, "complaint", complaint.ID, req.Documents)
	if err != nil {
		s.logger.Warn("failed to store complaint documents",
			zap.String("complaint_number", complaint.ComplaintNumber), zap.Error(err))
	}

	recordAudit(ctx, s.audit, s.logger, nil, dept, models.AuditActionCitizenSubmit, "complaint", complaint.ID, map[string]interface{}{
		"complaint_number": complaint.ComplaintNumber,
		"category":         complaint.Category,
		"priority":         complaint.Priority,
	}, req.IP, req.UserAgent)

	s.notifier.Queue(ctx, models.Notification{
		Department: dept,
		Channel:    models.ChannelSMS,
		Recipient:  complaint.ComplainantPhone,
		Subject:    "Complaint registered",
		Body: fmt.Sprintf("Your %s complaint %s has been registered and will be attended shortly.",
			dept.DisplayName(), complaint.ComplaintNumber),
		Resource:   "complaint",
		ResourceID: complaint.ID,
	})

	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, dept)
	}
	return &models.ComplaintDetail{Complaint: *complaint, Documents: docs}, nil
}

// List returns complaints and pagination metadata for the admin register.
func (s *ComplaintService) List(ctx context.Context, filter models.ComplaintFilter) ([]models.Complaint, *models.Pagination, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrInvalidStatus, "")
	}
	complaints, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list complaints")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return complaints, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one complaint with its attachments.
func (s *ComplaintService) Get(ctx context.Context, dept models.Department, id string) (*models.ComplaintDetail, error) {
	complaint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load complaint")
	}
	if complaint.Department != dept {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
	}
	docs, err := s.documents.ListByResource(ctx, "complaint", complaint.ID)
	if err != nil {
		s.logger.Warn("failed to list complaint documents", zap.String("complaint_id", complaint.ID), zap.Error(err))
	}
	return &models.ComplaintDetail{Complaint: *complaint, Documents: docs}, nil
}

// Update applies an admin review decision. Last write wins; concurrent
// edits are not detected.
func (s *ComplaintService) Update(ctx context.Context, dept models.Department, id string, req UpdateComplaintRequest, actor *models.JWTClaims, ip, userAgent string) (*models.ComplaintDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid complaint payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrInvalidStatus, "")
	}

	complaint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load complaint")
	}
	if complaint.Department != dept {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
	}

	priority := req.Priority
	if priority == "" {
		priority = complaint.Priority
	}
	if !priority.Valid() {
		return nil, appErrors.Wrap(fmt.Errorf("priority %q", req.Priority), appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown priority")
	}
	engineer := req.AssignedEngineer
	if engineer == "" {
		engineer = complaint.AssignedEngineer
	}
	notes := req.ResolutionNotes
	if notes == "" {
		notes = complaint.ResolutionNotes
	}

	if err := s.repo.Update(ctx, repository.UpdateComplaintParams{
		ID:               id,
		Status:           req.Status,
		AssignedEngineer: engineer,
		ResolutionNotes:  notes,
		Priority:         priority,
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update complaint")
	}

	var actorID *string
	if actor != nil {
		actorID = &actor.UserID
	}
	recordAudit(ctx, s.audit, s.logger, actorID, dept, models.AuditActionComplaintUpdate, "complaint", id, map[string]interface{}{
		"from": complaint.Status,
		"to":   req.Status,
	}, ip, userAgent)

	if req.Status == models.ComplaintStatusResolved || req.Status == models.ComplaintStatusClosed {
		s.notifier.Queue(ctx, models.Notification{
			Department: dept,
			Channel:    models.ChannelSMS,
			Recipient:  complaint.ComplainantPhone,
			Subject:    "Complaint update",
			Body: fmt.Sprintf("Complaint %s has been marked %s. Thank you for your patience.",
				complaint.ComplaintNumber, req.Status),
			Resource:   "complaint",
			ResourceID: id,
		})
	}

	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, dept)
	}
	return s.Get(ctx, dept, id)
}
