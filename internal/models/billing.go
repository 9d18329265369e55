package models

import "time"

// MeterReading is a consumer-submitted meter value. current_reading must
// exceed previous_reading; the service rejects anything else before any
// write happens.
type MeterReading struct {
	ID              string     `db:"id" json:"id"`
	Department      Department `db:"department" json:"department"`
	ConsumerNumber  string     `db:"consumer_number" json:"consumer_number"`
	PreviousReading float64    `db:"previous_reading" json:"previous_reading"`
	CurrentReading  float64    `db:"current_reading" json:"current_reading"`
	UnitsConsumed   float64    `db:"units_consumed" json:"units_consumed"`
	ReadingDate     time.Time  `db:"reading_date" json:"reading_date"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// PaymentKind distinguishes the payment flows on the citizen kiosk.
type PaymentKind string

const (
	PaymentKindPrepaidRecharge PaymentKind = "prepaid_recharge"
	PaymentKindBillPayment     PaymentKind = "bill_payment"
)

// PaymentStatus tracks settlement of a payment record.
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment records a kiosk payment along with the receipt issued for it.
type Payment struct {
	ID             string        `db:"id" json:"id"`
	ReceiptNumber  string        `db:"receipt_number" json:"receipt_number"`
	Department     Department    `db:"department" json:"department"`
	ConsumerNumber string        `db:"consumer_number" json:"consumer_number"`
	Kind           PaymentKind   `db:"kind" json:"kind"`
	Amount         float64       `db:"amount" json:"amount"`
	Rebate         float64       `db:"rebate" json:"rebate"`
	NetAmount      float64       `db:"net_amount" json:"net_amount"`
	EstimatedUnits float64       `db:"estimated_units" json:"estimated_units"`
	Status         PaymentStatus `db:"status" json:"status"`
	ReceiptPath    string        `db:"receipt_path" json:"-"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}
