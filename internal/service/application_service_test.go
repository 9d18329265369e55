package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	"github.com/shelkesanchit/Suvidha-sub000/internal/repository"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
)

type mockApplicationRepo struct {
	applications map[string]models.Application
	history      map[string][]models.StageHistoryEntry
	lastUpdate   repository.UpdateStatusParams
}

func (m *mockApplicationRepo) List(_ context.Context, filter models.ApplicationFilter) ([]models.Application, int, error) {
	out := make([]models.Application, 0, len(m.applications))
	for _, a := range m.applications {
		if a.Department == filter.Department {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (m *mockApplicationRepo) FindByID(_ context.Context, id string) (*models.Application, error) {
	if a, ok := m.applications[id]; ok {
		application := a
		return &application, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockApplicationRepo) FindByNumber(_ context.Context, dept models.Department, number string) (*models.Application, error) {
	for _, a := range m.applications {
		if a.Department == dept && a.ApplicationNumber == number {
			application := a
			return &application, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockApplicationRepo) Create(_ context.Context, application *models.Application, initial *models.StageHistoryEntry) error {
	if m.applications == nil {
		m.applications = make(map[string]models.Application)
		m.history = make(map[string][]models.StageHistoryEntry)
	}
	if application.ID == "" {
		application.ID = "generated"
	}
	m.applications[application.ID] = *application
	if initial != nil {
		entry := *initial
		entry.ApplicationID = application.ID
		m.history[application.ID] = append(m.history[application.ID], entry)
	}
	return nil
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, params repository.UpdateStatusParams) error {
	m.lastUpdate = params
	a, ok := m.applications[params.ID]
	if !ok {
		return sql.ErrNoRows
	}
	a.Status = params.Status
	a.CurrentStage = params.CurrentStage
	a.AssignedEngineer = params.AssignedEngineer
	a.UpdatedAt = time.Now().UTC()
	m.applications[params.ID] = a
	m.history[params.ID] = append(m.history[params.ID], models.StageHistoryEntry{
		ApplicationID: params.ID,
		Stage:         params.CurrentStage,
		Status:        params.Status,
		Remarks:       params.Remarks,
		RecordedBy:    params.RecordedBy,
		RecordedAt:    time.Now().UTC(),
	})
	return nil
}

func (m *mockApplicationRepo) ListStageHistory(_ context.Context, applicationID string) ([]models.StageHistoryEntry, error) {
	return m.history[applicationID], nil
}

func newApplicationService(repo *mockApplicationRepo) (*ApplicationService, *mockNotifier, *mockAudit) {
	notifier := &mockNotifier{}
	audit := &mockAudit{}
	svc := NewApplicationService(repo, &mockNumbers{}, &mockDocuments{}, notifier, audit, &mockDashboard{}, validator.New(), zap.NewNop())
	return svc, notifier, audit
}

func TestApplicationServiceSubmit(t *testing.T) {
	repo := &mockApplicationRepo{}
	svc, notifier, audit := newApplicationService(repo)

	detail, err := svc.Submit(context.Background(), models.DepartmentElectricity, SubmitApplicationRequest{
		ApplicationType: models.ApplicationTypeNewConnection,
		ApplicantName:   "Asha Kulkarni",
		ApplicantPhone:  "9800000001",
		Address:         "12 MG Road",
		ApplicationFee:  100,
		SecurityDeposit: 500,
	})
	require.NoError(t, err)

	assert.Regexp(t, `^EL-\d{4}-\d{5}$`, detail.ApplicationNumber)
	assert.Equal(t, models.ApplicationStatusSubmitted, detail.Status)
	assert.Equal(t, 600.0, detail.TotalFee)
	require.Len(t, detail.StageHistory, 1)
	assert.Equal(t, "Application Received", detail.StageHistory[0].Stage)

	require.Len(t, notifier.queued, 1)
	assert.Equal(t, "9800000001", notifier.queued[0].Recipient)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionCitizenSubmit, audit.logs[0].Action)
}

func TestApplicationServiceSubmitRequiresApplicant(t *testing.T) {
	svc, _, _ := newApplicationService(&mockApplicationRepo{})

	_, err := svc.Submit(context.Background(), models.DepartmentGas, SubmitApplicationRequest{
		ApplicationType: models.ApplicationTypeNewCylinder,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestApplicationServiceUpdateStatusAppendsHistory(t *testing.T) {
	repo := &mockApplicationRepo{
		applications: map[string]models.Application{
			"app-1": {ID: "app-1", Department: models.DepartmentWater, Status: models.ApplicationStatusSubmitted, ApplicantPhone: "9800000002"},
		},
		history: map[string][]models.StageHistoryEntry{
			"app-1": {{ApplicationID: "app-1", Stage: "Application Received", Status: models.ApplicationStatusSubmitted}},
		},
	}
	svc, notifier, audit := newApplicationService(repo)

	actor := &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin, Department: models.DepartmentWater}
	detail, err := svc.UpdateStatus(context.Background(), models.DepartmentWater, "app-1", UpdateApplicationStatusRequest{
		Status:           models.ApplicationStatusSiteInspection,
		AssignedEngineer: "R. Patil",
		Remarks:          "Visit planned",
	}, actor, "10.0.0.1", "kiosk-admin")
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusSiteInspection, detail.Status)
	require.Len(t, detail.StageHistory, 2)
	assert.Equal(t, "admin-1", repo.lastUpdate.RecordedBy)

	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionStatusUpdate, audit.logs[0].Action)
	require.Len(t, notifier.queued, 1)
}

func TestApplicationServiceUpdateStatusAllowsBackwardMove(t *testing.T) {
	repo := &mockApplicationRepo{
		applications: map[string]models.Application{
			"app-1": {ID: "app-1", Department: models.DepartmentGas, Status: models.ApplicationStatusCompleted},
		},
		history: map[string][]models.StageHistoryEntry{"app-1": {}},
	}
	svc, _, _ := newApplicationService(repo)

	detail, err := svc.UpdateStatus(context.Background(), models.DepartmentGas, "app-1", UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusSubmitted,
	}, nil, "", "")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusSubmitted, detail.Status)
}

func TestApplicationServiceUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := &mockApplicationRepo{
		applications: map[string]models.Application{
			"app-1": {ID: "app-1", Department: models.DepartmentGas, Status: models.ApplicationStatusSubmitted},
		},
	}
	svc, _, _ := newApplicationService(repo)

	_, err := svc.UpdateStatus(context.Background(), models.DepartmentGas, "app-1", UpdateApplicationStatusRequest{
		Status: models.ApplicationStatus("archived"),
	}, nil, "", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidStatus.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.lastUpdate.ID, "no update should reach the repository")
}

func TestApplicationServiceTrackWrongDepartment(t *testing.T) {
	repo := &mockApplicationRepo{
		applications: map[string]models.Application{
			"app-1": {ID: "app-1", Department: models.DepartmentElectricity, ApplicationNumber: "EL-2026-00001"},
		},
		history: map[string][]models.StageHistoryEntry{"app-1": {}},
	}
	svc, _, _ := newApplicationService(repo)

	_, err := svc.Track(context.Background(), models.DepartmentWater, "EL-2026-00001")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestApplicationServiceExportCSV(t *testing.T) {
	repo := &mockApplicationRepo{
		applications: map[string]models.Application{
			"app-1": {ID: "app-1", Department: models.DepartmentElectricity, ApplicationNumber: "EL-2026-00001", Status: models.ApplicationStatusSubmitted, ApplicantName: "Asha"},
		},
	}
	svc, _, _ := newApplicationService(repo)

	data, err := svc.ExportCSV(context.Background(), models.ApplicationFilter{Department: models.DepartmentElectricity})
	require.NoError(t, err)
	assert.Contains(t, string(data), "EL-2026-00001")
	assert.Contains(t, string(data), "Application No")
}
