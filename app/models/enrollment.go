package models

import "time"

// Enrollment links a student to a class from a given date. Unenrolling
// deactivates the row instead of deleting it, so enrollment history is
// never destroyed. Re-enrolling after an unenroll creates a new row.
type Enrollment struct {
	ID             string    `json:"id"`
	StudentID      string    `json:"student_id"`
	ClassID        string    `json:"class_id"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	Notes          *string   `json:"notes,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// EnrollmentMonth is the month the enrollment became effective. A student
// cannot owe or pay for months before it.
func (e *Enrollment) EnrollmentMonth() Month {
	return MonthOf(e.EnrollmentDate)
}
