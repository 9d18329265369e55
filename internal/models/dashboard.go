package models

import "time"

// StatusCount pairs a workflow status with its record count.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// DashboardSummary is the cached payload behind the admin landing page.
type DashboardSummary struct {
	Department        Department    `json:"department"`
	Applications      []StatusCount `json:"applications"`
	Complaints        []StatusCount `json:"complaints"`
	ApplicationsToday int           `json:"applications_today"`
	ComplaintsToday   int           `json:"complaints_today"`
	PaymentsToday     float64       `json:"payments_today"`
	GeneratedAt       time.Time     `json:"generated_at"`
}
