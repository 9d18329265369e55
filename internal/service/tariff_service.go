package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
)

type tariffRepository interface {
	List(ctx context.Context, filter models.TariffFilter) ([]models.Tariff, error)
	FindByID(ctx context.Context, id string) (*models.Tariff, error)
	Create(ctx context.Context, tariff *models.Tariff) error
	Update(ctx context.Context, tariff *models.Tariff) error
	Delete(ctx context.Context, id string) error
}

// TariffRequest is the payload for creating or replacing a tariff slab.
type TariffRequest struct {
	Category      string     `json:"category" validate:"required"`
	UnitFrom      float64    `json:"unit_from" validate:"gte=0"`
	UnitTo        float64    `json:"unit_to" validate:"gte=0"`
	RatePerUnit   float64    `json:"rate_per_unit" validate:"required,gt=0"`
	FixedCharge   float64    `json:"fixed_charge" validate:"gte=0"`
	EffectiveFrom *time.Time `json:"effective_from"`
}

// TariffService manages department rate tables.
type TariffService struct {
	repo      tariffRepository
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTariffService constructs the tariff service.
func NewTariffService(repo tariffRepository, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *TariffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TariffService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// List returns the rate table for a department.
func (s *TariffService) List(ctx context.Context, filter models.TariffFilter) ([]models.Tariff, error) {
	tariffs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tariffs")
	}
	return tariffs, nil
}

// Create adds a new tariff slab. Overlapping slabs are accepted; readers
// pick the latest applicable slab by effective date.
func (s *TariffService) Create(ctx context.Context, dept models.Department, req TariffRequest, actor *models.JWTClaims, ip, userAgent string) (*models.Tariff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tariff payload")
	}
	if req.UnitTo > 0 && req.UnitTo < req.UnitFrom {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unit_to must not be below unit_from")
	}

	tariff := &models.Tariff{
		Department:    dept,
		Category:      req.Category,
		UnitFrom:      req.UnitFrom,
		UnitTo:        req.UnitTo,
		RatePerUnit:   req.RatePerUnit,
		FixedCharge:   req.FixedCharge,
		EffectiveFrom: req.EffectiveFrom,
	}
	if err := s.repo.Create(ctx, tariff); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create tariff")
	}

	s.auditChange(ctx, actor, dept, tariff.ID, "create", ip, userAgent)
	return tariff, nil
}

// Update replaces an existing tariff slab.
func (s *TariffService) Update(ctx context.Context, dept models.Department, id string, req TariffRequest, actor *models.JWTClaims, ip, userAgent string) (*models.Tariff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tariff payload")
	}
	if req.UnitTo > 0 && req.UnitTo < req.UnitFrom {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unit_to must not be below unit_from")
	}

	tariff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "tariff not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tariff")
	}
	if tariff.Department != dept {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "tariff not found")
	}

	tariff.Category = req.Category
	tariff.UnitFrom = req.UnitFrom
	tariff.UnitTo = req.UnitTo
	tariff.RatePerUnit = req.RatePerUnit
	tariff.FixedCharge = req.FixedCharge
	tariff.EffectiveFrom = req.EffectiveFrom
	if err := s.repo.Update(ctx, tariff); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update tariff")
	}

	s.auditChange(ctx, actor, dept, id, "update", ip, userAgent)
	return tariff, nil
}

// Delete removes a tariff slab.
func (s *TariffService) Delete(ctx context.Context, dept models.Department, id string, actor *models.JWTClaims, ip, userAgent string) error {
	tariff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "tariff not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tariff")
	}
	if tariff.Department != dept {
		return appErrors.Clone(appErrors.ErrNotFound, "tariff not found")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete tariff")
	}
	s.auditChange(ctx, actor, dept, id, "delete", ip, userAgent)
	return nil
}

func (s *TariffService) auditChange(ctx context.Context, actor *models.JWTClaims, dept models.Department, tariffID, op, ip, userAgent string) {
	var actorID *string
	if actor != nil {
		actorID = &actor.UserID
	}
	recordAudit(ctx, s.audit, s.logger, actorID, dept, models.AuditActionTariffChange, "tariff", tariffID, map[string]interface{}{
		"operation": op,
	}, ip, userAgent)
}
