package models

import "time"

// Document is metadata for a citizen-uploaded attachment. The bytes live
// in the local document store; this row carries the relative path.
type Document struct {
	ID         string     `db:"id" json:"id"`
	Department Department `db:"department" json:"department"`
	Resource   string     `db:"resource" json:"resource"`
	ResourceID string     `db:"resource_id" json:"resource_id"`
	FileName   string     `db:"file_name" json:"file_name"`
	MimeType   string     `db:"mime_type" json:"mime_type"`
	SizeBytes  int64      `db:"size_bytes" json:"size_bytes"`
	Path       string     `db:"path" json:"-"`
	UploadedAt time.Time  `db:"uploaded_at" json:"uploaded_at"`
}

// DocumentUpload is a base64-encoded attachment as submitted by the kiosk.
type DocumentUpload struct {
	FileName string `json:"file_name" validate:"required"`
	MimeType string `json:"mime_type" validate:"required"`
	Content  string `json:"content" validate:"required"`
}
