package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a recorded tuition payment for one student/class/month.
// At most one payment may exist per (student, class, month).
type Payment struct {
	ID            string          `json:"id"`
	StudentID     string          `json:"student_id"`
	ClassID       string          `json:"class_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	PaymentMonth  Month           `json:"payment_month"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	IsLate        bool            `json:"is_late"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LateCutoffDay is the last day of the month a payment can be made
// without being flagged late.
const LateCutoffDay = 10

// IsLatePayment reports whether a payment made on date for the given
// month is late: past the 10th, and only while paying for the current
// month. Payments for past or future months are never late.
func IsLatePayment(date time.Time, month Month) bool {
	return date.Day() > LateCutoffDay && MonthOf(date) == month
}
