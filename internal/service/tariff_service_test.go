package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
)

type mockTariffRepo struct {
	tariffs map[string]*models.Tariff
	deleted []string
}

func newMockTariffRepo() *mockTariffRepo {
	return &mockTariffRepo{tariffs: make(map[string]*models.Tariff)}
}

func (m *mockTariffRepo) List(_ context.Context, filter models.TariffFilter) ([]models.Tariff, error) {
	out := make([]models.Tariff, 0, len(m.tariffs))
	for _, tariff := range m.tariffs {
		if tariff.Department == filter.Department {
			out = append(out, *tariff)
		}
	}
	return out, nil
}

func (m *mockTariffRepo) FindByID(_ context.Context, id string) (*models.Tariff, error) {
	tariff, ok := m.tariffs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *tariff
	return &copied, nil
}

func (m *mockTariffRepo) Create(_ context.Context, tariff *models.Tariff) error {
	tariff.ID = fmt.Sprintf("tariff-%d", len(m.tariffs)+1)
	copied := *tariff
	m.tariffs[tariff.ID] = &copied
	return nil
}

func (m *mockTariffRepo) Update(_ context.Context, tariff *models.Tariff) error {
	copied := *tariff
	m.tariffs[tariff.ID] = &copied
	return nil
}

func (m *mockTariffRepo) Delete(_ context.Context, id string) error {
	delete(m.tariffs, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func TestTariffServiceCreate(t *testing.T) {
	repo := newMockTariffRepo()
	audit := &mockAudit{}
	svc := NewTariffService(repo, audit, nil, nil)

	tariff, err := svc.Create(context.Background(), models.DepartmentElectricity, TariffRequest{
		Category:    "domestic",
		UnitFrom:    0,
		UnitTo:      100,
		RatePerUnit: 4.1,
		FixedCharge: 50,
	}, &models.JWTClaims{UserID: "admin-1"}, "10.0.0.1", "portal")

	require.NoError(t, err)
	assert.NotEmpty(t, tariff.ID)
	assert.Equal(t, models.DepartmentElectricity, tariff.Department)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionTariffChange, audit.logs[0].Action)
}

func TestTariffServiceCreateRejectsInvertedSlab(t *testing.T) {
	repo := newMockTariffRepo()
	svc := NewTariffService(repo, &mockAudit{}, nil, nil)

	_, err := svc.Create(context.Background(), models.DepartmentElectricity, TariffRequest{
		Category:    "domestic",
		UnitFrom:    200,
		UnitTo:      100,
		RatePerUnit: 4.1,
	}, nil, "", "")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.tariffs)
}

func TestTariffServiceUpdateOtherDepartmentNotFound(t *testing.T) {
	repo := newMockTariffRepo()
	repo.tariffs["tariff-1"] = &models.Tariff{ID: "tariff-1", Department: models.DepartmentGas, Category: "domestic", RatePerUnit: 3.2}
	svc := NewTariffService(repo, &mockAudit{}, nil, nil)

	_, err := svc.Update(context.Background(), models.DepartmentWater, "tariff-1", TariffRequest{
		Category:    "domestic",
		RatePerUnit: 3.5,
	}, nil, "", "")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTariffServiceDelete(t *testing.T) {
	repo := newMockTariffRepo()
	repo.tariffs["tariff-1"] = &models.Tariff{ID: "tariff-1", Department: models.DepartmentGas, Category: "commercial", RatePerUnit: 7.8}
	audit := &mockAudit{}
	svc := NewTariffService(repo, audit, nil, nil)

	err := svc.Delete(context.Background(), models.DepartmentGas, "tariff-1", &models.JWTClaims{UserID: "admin-1"}, "", "")

	require.NoError(t, err)
	assert.Equal(t, []string{"tariff-1"}, repo.deleted)
	require.Len(t, audit.logs, 1)
}

func TestTariffServiceDeleteUnknownID(t *testing.T) {
	svc := NewTariffService(newMockTariffRepo(), &mockAudit{}, nil, nil)

	err := svc.Delete(context.Background(), models.DepartmentGas, "tariff-404", nil, "", "")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
