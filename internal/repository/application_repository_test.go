package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func applicationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "application_number", "department", "application_type", "status", "current_stage",
		"assigned_engineer", "applicant_name", "applicant_phone", "applicant_email", "address", "consumer_number",
		"application_fee", "security_deposit", "total_fee", "submitted_at", "updated_at",
	}).AddRow("app-1", "EL-2026-00042", "electricity", "new_connection", "submitted", "Application Received",
		"", "Asha Kulkarni", "9800000001", "asha@example.com", "12 MG Road", "EC-1001",
		100.0, 500.0, 600.0, time.Now(), time.Now())
}

func TestApplicationRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectQuery("SELECT id, application_number, .+ FROM applications WHERE department = \\$1 AND status = \\$2 ORDER BY submitted_at DESC LIMIT 20 OFFSET 0").
		WithArgs(models.DepartmentElectricity, models.ApplicationStatusSubmitted).
		WillReturnRows(applicationRows())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM applications WHERE department = \\$1 AND status = \\$2").
		WithArgs(models.DepartmentElectricity, models.ApplicationStatusSubmitted).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	applications, total, err := repo.List(context.Background(), models.ApplicationFilter{
		Department: models.DepartmentElectricity,
		Status:     models.ApplicationStatusSubmitted,
	})
	require.NoError(t, err)
	assert.Len(t, applications, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "EL-2026-00042", applications[0].ApplicationNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepositoryCreateInsertsInitialHistory(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO applications").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO application_stage_history").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	application := &models.Application{
		ApplicationNumber: "WA-2026-00001",
		Department:        models.DepartmentWater,
		ApplicationType:   models.ApplicationTypeNewConnection,
		Status:            models.ApplicationStatusSubmitted,
		ApplicantName:     "Ravi Shinde",
	}
	initial := &models.StageHistoryEntry{Stage: "Application Received", Status: models.ApplicationStatusSubmitted}
	err := repo.Create(context.Background(), application, initial)
	require.NoError(t, err)
	assert.NotEmpty(t, application.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepositoryUpdateStatusAppendsHistory(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE applications SET status = \\$2, current_stage = \\$3, assigned_engineer = \\$4, updated_at = \\$5 WHERE id = \\$1").
		WithArgs("app-1", models.ApplicationStatusSiteInspection, "Site Inspection Scheduled", "R. Patil", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO application_stage_history").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), UpdateStatusParams{
		ID:               "app-1",
		Status:           models.ApplicationStatusSiteInspection,
		CurrentStage:     "Site Inspection Scheduled",
		AssignedEngineer: "R. Patil",
		Remarks:          "Visit planned for Monday",
		RecordedBy:       "admin-1",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepositoryUpdateStatusRollsBackOnHistoryFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE applications SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO application_stage_history").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.UpdateStatus(context.Background(), UpdateStatusParams{
		ID:     "app-1",
		Status: models.ApplicationStatusApproved,
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepositoryListStageHistoryChronological(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	first := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "application_id", "stage", "status", "remarks", "recorded_by", "recorded_at"}).
		AddRow("h1", "app-1", "Application Received", "submitted", "", "", first).
		AddRow("h2", "app-1", "Documents Verified", "document_verification", "All papers in order", "admin-1", second)
	mock.ExpectQuery("SELECT id, application_id, stage, status, remarks, recorded_by, recorded_at\\s+FROM application_stage_history WHERE application_id = \\$1 ORDER BY recorded_at ASC").
		WithArgs("app-1").
		WillReturnRows(rows)

	entries, err := repo.ListStageHistory(context.Background(), "app-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].RecordedAt.Before(entries[1].RecordedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}
