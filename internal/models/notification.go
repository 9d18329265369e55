package models

import "time"

// NotificationChannel selects the delivery mechanism.
type NotificationChannel string

const (
	ChannelSMS   NotificationChannel = "sms"
	ChannelEmail NotificationChannel = "email"
)

// NotificationStatus tracks dispatch progress.
type NotificationStatus string

const (
	NotificationStatusQueued NotificationStatus = "queued"
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

// Notification is an outbound citizen message recorded before dispatch.
// Actual SMS/email delivery happens behind the Sender seam; the record is
// the source of truth for what was (or should have been) sent.
type Notification struct {
	ID         string              `db:"id" json:"id"`
	Department Department          `db:"department" json:"department"`
	Channel    NotificationChannel `db:"channel" json:"channel"`
	Recipient  string              `db:"recipient" json:"recipient"`
	Subject    string              `db:"subject" json:"subject"`
	Body       string              `db:"body" json:"body"`
	Resource   string              `db:"resource" json:"resource"`
	ResourceID string              `db:"resource_id" json:"resource_id"`
	Status     NotificationStatus  `db:"status" json:"status"`
	SentAt     *time.Time          `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt  time.Time           `db:"created_at" json:"created_at"`
}
