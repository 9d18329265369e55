package models

import "time"

// ApplicationStatus captures the workflow state of a citizen application.
type ApplicationStatus string

const (
	ApplicationStatusSubmitted            ApplicationStatus = "submitted"
	ApplicationStatusDocumentVerification ApplicationStatus = "document_verification"
	ApplicationStatusSiteInspection       ApplicationStatus = "site_inspection"
	ApplicationStatusApprovalPending      ApplicationStatus = "approval_pending"
	ApplicationStatusApproved             ApplicationStatus = "approved"
	ApplicationStatusRejected             ApplicationStatus = "rejected"
	ApplicationStatusWorkInProgress       ApplicationStatus = "work_in_progress"
	ApplicationStatusCompleted            ApplicationStatus = "completed"
)

// ApplicationStatuses lists every status admins may set. Transitions are
// deliberately unrestricted beyond enum membership: back-office staff rely
// on moving records backward or skipping stages as a manual override.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		ApplicationStatusSubmitted,
		ApplicationStatusDocumentVerification,
		ApplicationStatusSiteInspection,
		ApplicationStatusApprovalPending,
		ApplicationStatusApproved,
		ApplicationStatusRejected,
		ApplicationStatusWorkInProgress,
		ApplicationStatusCompleted,
	}
}

// Valid reports whether the status is a member of the workflow enum.
func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Common application types per department. The column is free text so new
// schemes can be introduced without a migration.
const (
	ApplicationTypeNewConnection  = "new_connection"
	ApplicationTypeChangeOfLoad   = "change_of_load"
	ApplicationTypeCategoryChange = "category_change"
	ApplicationTypeSolarRooftop   = "solar_rooftop"
	ApplicationTypeNewCylinder    = "new_cylinder"
	ApplicationTypeDisconnection  = "disconnection"
)

// Application is a citizen-submitted service request tracked through an
// admin-managed status.
type Application struct {
	ID                string            `db:"id" json:"id"`
	ApplicationNumber string            `db:"application_number" json:"application_number"`
	Department        Department        `db:"department" json:"department"`
	ApplicationType   string            `db:"application_type" json:"application_type"`
	Status            ApplicationStatus `db:"status" json:"status"`
	CurrentStage      string            `db:"current_stage" json:"current_stage"`
	AssignedEngineer  string            `db:"assigned_engineer" json:"assigned_engineer"`
	ApplicantName     string            `db:"applicant_name" json:"applicant_name"`
	ApplicantPhone    string            `db:"applicant_phone" json:"applicant_phone"`
	ApplicantEmail    string            `db:"applicant_email" json:"applicant_email"`
	Address           string            `db:"address" json:"address"`
	ConsumerNumber    string            `db:"consumer_number" json:"consumer_number"`
	ApplicationFee    float64           `db:"application_fee" json:"application_fee"`
	SecurityDeposit   float64           `db:"security_deposit" json:"security_deposit"`
	TotalFee          float64           `db:"total_fee" json:"total_fee"`
	SubmittedAt       time.Time         `db:"submitted_at" json:"submitted_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`
}

// StageHistoryEntry records one transition in an application's life.
// Entries are append-only; nothing in the codebase removes them.
type StageHistoryEntry struct {
	ID            string            `db:"id" json:"id"`
	ApplicationID string            `db:"application_id" json:"application_id"`
	Stage         string            `db:"stage" json:"stage"`
	Status        ApplicationStatus `db:"status" json:"status"`
	Remarks       string            `db:"remarks" json:"remarks"`
	RecordedBy    string            `db:"recorded_by" json:"recorded_by"`
	RecordedAt    time.Time         `db:"recorded_at" json:"recorded_at"`
}

// ApplicationDetail bundles an application with its full stage history in
// chronological order.
type ApplicationDetail struct {
	Application
	StageHistory []StageHistoryEntry `json:"stage_history"`
	Documents    []Document          `json:"documents,omitempty"`
}

// ApplicationFilter constrains admin list queries.
type ApplicationFilter struct {
	Department Department
	Status     ApplicationStatus
	Type       string
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
