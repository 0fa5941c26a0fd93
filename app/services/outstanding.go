package services

import (
	"github.com/shopspring/decimal"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// OutstandingItem is an unpaid due for one class. It is computed on
// demand and never stored.
type OutstandingItem struct {
	Class          *models.DanceClass `json:"class"`
	ExpectedAmount decimal.Decimal    `json:"expected_amount"`
	IsLate         bool               `json:"is_late"`
}

// StudentOutstanding groups a student's unpaid dues for a month.
type StudentOutstanding struct {
	Student *models.Student   `json:"student"`
	Items   []OutstandingItem `json:"items"`
}

// ComputeOutstanding derives, for the given month, every unpaid due per
// student. Only active enrollments that had started by the month count,
// and classes already paid for the month are skipped. Lateness here is a
// present-day question: once today is past the 10th of the requested
// month, the expected amount carries the 15% late fee. Everything is
// re-derived on every call so deleted payments and enrollment changes
// show up immediately.
func (s *BillingService) ComputeOutstanding(month models.Month) ([]*StudentOutstanding, error) {
	students, err := s.students.FindAll()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	lateNow := models.IsLatePayment(now, month)

	var result []*StudentOutstanding
	for _, student := range students {
		enrollments, err := s.enrollments.FindActiveByStudent(student.ID)
		if err != nil {
			return nil, err
		}

		var items []OutstandingItem
		for _, enrollment := range enrollments {
			if enrollment.EnrollmentMonth().After(month) {
				continue
			}
			existing, err := s.payments.FindByStudentClassMonth(student.ID, enrollment.ClassID, month)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				continue
			}
			class, err := s.classes.FindByID(enrollment.ClassID)
			if err != nil {
				return nil, err
			}
			if class == nil {
				continue
			}

			expected := class.Price
			if lateNow {
				expected = expected.Mul(lateFeeMultiplier).Round(2)
			}
			items = append(items, OutstandingItem{
				Class:          class,
				ExpectedAmount: expected,
				IsLate:         lateNow,
			})
		}

		if len(items) > 0 {
			result = append(result, &StudentOutstanding{Student: student, Items: items})
		}
	}
	return result, nil
}
