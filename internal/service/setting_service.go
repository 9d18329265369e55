package service

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
)

type settingRepository interface {
	List(ctx context.Context, dept models.Department) ([]models.Setting, error)
	BulkUpsert(ctx context.Context, settings []models.Setting) error
}

// SettingItem is one key/value pair in an update payload.
type SettingItem struct {
	Key   string             `json:"key" validate:"required"`
	Value string             `json:"value"`
	Type  models.SettingType `json:"type" validate:"required"`
}

// UpdateSettingsRequest replaces a batch of department settings.
type UpdateSettingsRequest struct {
	Settings []SettingItem `json:"settings" validate:"required,min=1,dive"`
}

// SettingService manages per-department portal configuration.
type SettingService struct {
	repo      settingRepository
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingService constructs the setting service.
func NewSettingService(repo settingRepository, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *SettingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// List returns all settings for a department.
func (s *SettingService) List(ctx context.Context, dept models.Department) ([]models.Setting, error) {
	settings, err := s.repo.List(ctx, dept)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list settings")
	}
	return settings, nil
}

// Update upserts a batch of settings in one transaction. Values are
// type-checked against their declared type hint before anything is
// written.
func (s *SettingService) Update(ctx context.Context, dept models.Department, req UpdateSettingsRequest, actor *models.JWTClaims, ip, userAgent string) ([]models.Setting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}

	var updatedBy string
	if actor != nil {
		updatedBy = actor.UserID
	}
	settings := make([]models.Setting, 0, len(req.Settings))
	for _, item := range req.Settings {
		if !item.Type.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown setting type "+string(item.Type))
		}
		if err := checkSettingValue(item); err != nil {
			return nil, err
		}
		settings = append(settings, models.Setting{
			Department: dept,
			Key:        item.Key,
			Value:      item.Value,
			Type:       item.Type,
			UpdatedBy:  updatedBy,
		})
	}

	if err := s.repo.BulkUpsert(ctx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save settings")
	}

	var actorID *string
	if actor != nil {
		actorID = &actor.UserID
	}
	keys := make([]string, 0, len(settings))
	for _, setting := range settings {
		keys = append(keys, setting.Key)
	}
	recordAudit(ctx, s.audit, s.logger, actorID, dept, models.AuditActionSettingsChange, "settings", string(dept), map[string]interface{}{
		"keys": keys,
	}, ip, userAgent)

	return s.List(ctx, dept)
}

func checkSettingValue(item SettingItem) error {
	switch item.Type {
	case models.SettingTypeNumber:
		if _, err := strconv.ParseFloat(item.Value, 64); err != nil {
			return appErrors.Clone(appErrors.ErrValidation, "setting "+item.Key+" must be numeric")
		}
	case models.SettingTypeBoolean:
		if _, err := strconv.ParseBool(item.Value); err != nil {
			return appErrors.Clone(appErrors.ErrValidation, "setting "+item.Key+" must be true or false")
		}
	}
	return nil
}
