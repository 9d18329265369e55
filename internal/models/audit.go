package models

import "time"

// Audit action identifiers.
const (
	AuditActionLogin            = "LOGIN"
	AuditActionLogout           = "LOGOUT"
	AuditActionStatusUpdate     = "STATUS_UPDATE"
	AuditActionComplaintUpdate  = "COMPLAINT_UPDATE"
	AuditActionTariffChange     = "TARIFF_CHANGE"
	AuditActionSettingsChange   = "SETTINGS_CHANGE"
	AuditActionCitizenSubmit    = "CITIZEN_SUBMIT"
	AuditActionPaymentRecorded  = "PAYMENT_RECORDED"
	AuditActionDocumentDownload = "DOCUMENT_DOWNLOAD"
)

// AuditLog is an immutable trail entry for admin and citizen actions.
type AuditLog struct {
	ID         string     `db:"id" json:"id"`
	UserID     *string    `db:"user_id" json:"user_id,omitempty"`
	Department Department `db:"department" json:"department"`
	Action     string     `db:"action" json:"action"`
	Resource   string     `db:"resource" json:"resource"`
	ResourceID *string    `db:"resource_id" json:"resource_id,omitempty"`
	NewValues  []byte     `db:"new_values" json:"new_values,omitempty"`
	IPAddress  string     `db:"ip_address" json:"ip_address"`
	UserAgent  string     `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// AuditFilter constrains audit trail listings.
type AuditFilter struct {
	Department Department
	Action     string
	Resource   string
	Limit      int
}
