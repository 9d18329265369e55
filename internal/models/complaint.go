package models

import "time"

// ComplaintStatus captures the workflow state of a service complaint.
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "open"
	ComplaintStatusAssigned   ComplaintStatus = "assigned"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusClosed     ComplaintStatus = "closed"
	ComplaintStatusReopened   ComplaintStatus = "reopened"
)

// ComplaintStatuses lists every settable complaint status. Reopening a
// resolved or closed complaint is allowed.
func ComplaintStatuses() []ComplaintStatus {
	return []ComplaintStatus{
		ComplaintStatusOpen,
		ComplaintStatusAssigned,
		ComplaintStatusInProgress,
		ComplaintStatusResolved,
		ComplaintStatusClosed,
		ComplaintStatusReopened,
	}
}

// Valid reports whether the status is a member of the complaint enum.
func (s ComplaintStatus) Valid() bool {
	for _, known := range ComplaintStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// ComplaintPriority is the ordinal urgency scale shared by all departments.
type ComplaintPriority string

const (
	PriorityLow      ComplaintPriority = "low"
	PriorityMedium   ComplaintPriority = "medium"
	PriorityHigh     ComplaintPriority = "high"
	PriorityCritical ComplaintPriority = "critical"
)

// Valid reports whether the priority is a known ordinal value.
func (p ComplaintPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// PriorityFromUrgency maps the legacy numeric 1-10 urgency scale used by
// the water intake onto the ordinal buckets.
func PriorityFromUrgency(urgency int) ComplaintPriority {
	switch {
	case urgency >= 9:
		return PriorityCritical
	case urgency >= 7:
		return PriorityHigh
	case urgency >= 4:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Complaint is a citizen-reported service issue.
type Complaint struct {
	ID               string            `db:"id" json:"id"`
	ComplaintNumber  string            `db:"complaint_number" json:"complaint_number"`
	Department       Department        `db:"department" json:"department"`
	Category         string            `db:"category" json:"category"`
	Priority         ComplaintPriority `db:"priority" json:"priority"`
	Status           ComplaintStatus   `db:"status" json:"status"`
	ComplainantName  string            `db:"complainant_name" json:"complainant_name"`
	ComplainantPhone string            `db:"complainant_phone" json:"complainant_phone"`
	ComplainantEmail string            `db:"complainant_email" json:"complainant_email"`
	Address          string            `db:"address" json:"address"`
	ConsumerNumber   string            `db:"consumer_number" json:"consumer_number"`
	Description      string            `db:"description" json:"description"`
	AssignedEngineer string            `db:"assigned_engineer" json:"assigned_engineer"`
	ResolutionNotes  string            `db:"resolution_notes" json:"resolution_notes"`
	CreatedAt        time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time         `db:"updated_at" json:"updated_at"`
}

// ComplaintDetail bundles a complaint with its attached documents.
type ComplaintDetail struct {
	Complaint
	Documents []Document `json:"documents,omitempty"`
}

// ComplaintFilter constrains admin list queries.
type ComplaintFilter struct {
	Department Department
	Status     ComplaintStatus
	Category   string
	Priority   ComplaintPriority
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
