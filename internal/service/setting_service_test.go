package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
)

type mockSettingRepo struct {
	settings map[string]models.Setting
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{settings: make(map[string]models.Setting)}
}

func (m *mockSettingRepo) List(_ context.Context, dept models.Department) ([]models.Setting, error) {
	out := make([]models.Setting, 0, len(m.settings))
	for _, s := range m.settings {
		if s.Department == dept {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSettingRepo) BulkUpsert(_ context.Context, settings []models.Setting) error {
	for _, s := range settings {
		m.settings[string(s.Department)+"/"+s.Key] = s
	}
	return nil
}

func TestSettingServiceUpdatePersistsBatch(t *testing.T) {
	repo := newMockSettingRepo()
	audit := &mockAudit{}
	svc := NewSettingService(repo, audit, nil, nil)

	actor := &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin, Department: models.DepartmentWater}
	settings, err := svc.Update(context.Background(), models.DepartmentWater, UpdateSettingsRequest{
		Settings: []SettingItem{
			{Key: "office_hours", Value: "09:00-17:00", Type: models.SettingTypeString},
			{Key: "helpline", Value: "1916", Type: models.SettingTypeNumber},
			{Key: "kiosk_enabled", Value: "true", Type: models.SettingTypeBoolean},
		},
	}, actor, "10.0.0.1", "kiosk-admin")

	require.NoError(t, err)
	assert.Len(t, settings, 3)
	assert.Equal(t, "admin-1", repo.settings["water/office_hours"].UpdatedBy)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionSettingsChange, audit.logs[0].Action)
}

func TestSettingServiceUpdateRejectsNonNumericValue(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo, &mockAudit{}, nil, nil)

	_, err := svc.Update(context.Background(), models.DepartmentWater, UpdateSettingsRequest{
		Settings: []SettingItem{{Key: "helpline", Value: "one-nine-one-six", Type: models.SettingTypeNumber}},
	}, nil, "", "")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.settings)
}

func TestSettingServiceUpdateRejectsNonBooleanValue(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo, &mockAudit{}, nil, nil)

	_, err := svc.Update(context.Background(), models.DepartmentGas, UpdateSettingsRequest{
		Settings: []SettingItem{{Key: "kiosk_enabled", Value: "maybe", Type: models.SettingTypeBoolean}},
	}, nil, "", "")

	require.Error(t, err)
	assert.Empty(t, repo.settings)
}

func TestSettingServiceUpdateRejectsUnknownType(t *testing.T) {
	svc := NewSettingService(newMockSettingRepo(), &mockAudit{}, nil, nil)

	_, err := svc.Update(context.Background(), models.DepartmentGas, UpdateSettingsRequest{
		Settings: []SettingItem{{Key: "theme", Value: "dark", Type: "color"}},
	}, nil, "", "")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSettingServiceUpdateRejectsEmptyBatch(t *testing.T) {
	svc := NewSettingService(newMockSettingRepo(), &mockAudit{}, nil, nil)

	_, err := svc.Update(context.Background(), models.DepartmentGas, UpdateSettingsRequest{}, nil, "", "")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
