package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// lateFeeMultiplier is applied to an unpaid class price once the current
// month's payment window (through the 10th) has passed.
var lateFeeMultiplier = decimal.New(115, -2)

// allocationScale is the fractional precision used while distributing a
// multi-class amount, before amounts are rounded to currency precision.
const allocationScale = 4

// BillingService decides whether a charge is valid, computes late-fee
// adjusted dues and splits multi-class payments across classes.
type BillingService struct {
	students    StudentStore
	classes     ClassStore
	enrollments EnrollmentStore
	payments    PaymentStore
	clock       Clock
}

func NewBillingService(students StudentStore, classes ClassStore, enrollments EnrollmentStore, payments PaymentStore, clock Clock) *BillingService {
	return &BillingService{
		students:    students,
		classes:     classes,
		enrollments: enrollments,
		payments:    payments,
		clock:       clock,
	}
}

type RegisterPaymentInput struct {
	StudentID string
	ClassID   string
	Amount    decimal.Decimal
	Month     models.Month
	Date      time.Time // zero value means "today"
	Method    models.PaymentMethod
	Notes     *string
}

// RegisterPayment records a single-class payment. The caller's amount is
// trusted and stored as-is; lateness is computed from the payment date
// and never tied to the amount.
func (s *BillingService) RegisterPayment(in RegisterPaymentInput) (*models.Payment, error) {
	if err := s.validateAmount(in.Amount); err != nil {
		return nil, err
	}
	if !in.Method.IsValid() {
		return nil, &InvalidArgumentError{Reason: "unknown payment method"}
	}
	if in.Month.IsZero() {
		return nil, &InvalidArgumentError{Reason: "payment month is required"}
	}

	student, err := s.students.FindByID(in.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, &StudentNotFoundError{StudentID: in.StudentID}
	}

	class, err := s.classes.FindByID(in.ClassID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, &ClassNotFoundError{ClassID: in.ClassID}
	}

	date := in.Date
	if date.IsZero() {
		date = s.clock.Now()
	}

	if err := s.checkEligibility(in.StudentID, in.ClassID, in.Month); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		ID:            uuid.NewString(),
		StudentID:     in.StudentID,
		ClassID:       in.ClassID,
		Amount:        in.Amount.Round(2),
		PaymentDate:   date,
		PaymentMonth:  in.Month,
		PaymentMethod: in.Method,
		IsLate:        models.IsLatePayment(date, in.Month),
		Notes:         in.Notes,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.payments.Save(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

type MultiClassPaymentInput struct {
	StudentID   string
	TotalAmount decimal.Decimal
	Month       models.Month
	Date        time.Time // zero value means "today"
	Method      models.PaymentMethod
	Notes       *string
	// ClassIDs selects the classes to pay. Empty means every active
	// enrollment without a payment for the month.
	ClassIDs []string
}

// RegisterMultiClassPayment splits one tendered amount across several
// classes in proportion to each class price. The tendered amount may be
// under or over the total expected; the allocation factor absorbs the
// difference. All payments are stored atomically.
func (s *BillingService) RegisterMultiClassPayment(in MultiClassPaymentInput) ([]*models.Payment, error) {
	if err := s.validateAmount(in.TotalAmount); err != nil {
		return nil, err
	}
	if !in.Method.IsValid() {
		return nil, &InvalidArgumentError{Reason: "unknown payment method"}
	}
	if in.Month.IsZero() {
		return nil, &InvalidArgumentError{Reason: "payment month is required"}
	}

	student, err := s.students.FindByID(in.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, &StudentNotFoundError{StudentID: in.StudentID}
	}

	var targets []*models.DanceClass
	if len(in.ClassIDs) > 0 {
		targets, err = s.resolveRequestedClasses(in.StudentID, in.ClassIDs, in.Month)
	} else {
		targets, err = s.unpaidEnrolledClasses(in.StudentID, in.Month)
	}
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, &NoPayableClassesError{StudentID: in.StudentID, Month: in.Month}
	}

	totalExpected := decimal.Zero
	for _, class := range targets {
		totalExpected = totalExpected.Add(class.Price)
	}
	if totalExpected.LessThanOrEqual(decimal.Zero) {
		return nil, &InvalidArgumentError{Reason: "selected classes have no price to allocate against"}
	}

	factor := in.TotalAmount.DivRound(totalExpected, allocationScale)

	date := in.Date
	if date.IsZero() {
		date = s.clock.Now()
	}
	isLate := models.IsLatePayment(date, in.Month)

	payments := make([]*models.Payment, 0, len(targets))
	for _, class := range targets {
		payments = append(payments, &models.Payment{
			ID:            uuid.NewString(),
			StudentID:     in.StudentID,
			ClassID:       class.ID,
			Amount:        class.Price.Mul(factor).Round(2),
			PaymentDate:   date,
			PaymentMonth:  in.Month,
			PaymentMethod: in.Method,
			IsLate:        isLate,
			Notes:         in.Notes,
			CreatedAt:     s.clock.Now(),
		})
	}

	if err := s.payments.SaveAll(payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// resolveRequestedClasses validates an explicit class selection. Any
// ineligible class aborts the whole payment before anything is written.
func (s *BillingService) resolveRequestedClasses(studentID string, classIDs []string, month models.Month) ([]*models.DanceClass, error) {
	classes := make([]*models.DanceClass, 0, len(classIDs))
	for _, classID := range classIDs {
		class, err := s.classes.FindByID(classID)
		if err != nil {
			return nil, err
		}
		if class == nil {
			return nil, &ClassNotFoundError{ClassID: classID}
		}
		if err := s.checkEligibility(studentID, classID, month); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, nil
}

// unpaidEnrolledClasses collects the student's active enrollments that
// had started by the target month and have no payment for it yet.
func (s *BillingService) unpaidEnrolledClasses(studentID string, month models.Month) ([]*models.DanceClass, error) {
	enrollments, err := s.enrollments.FindActiveByStudent(studentID)
	if err != nil {
		return nil, err
	}

	var classes []*models.DanceClass
	for _, enrollment := range enrollments {
		if enrollment.EnrollmentMonth().After(month) {
			continue
		}
		existing, err := s.payments.FindByStudentClassMonth(studentID, enrollment.ClassID, month)
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
		classes = append(classes, class)
	}
	return classes, nil
}

// checkEligibility enforces the per-class payment rules: an active
// enrollment must exist, the month must not precede it, and the month
// must not already be paid.
func (s *BillingService) checkEligibility(studentID, classID string, month models.Month) error {
	enrollment, err := s.enrollments.FindActive(studentID, classID)
	if err != nil {
		return err
	}
	if enrollment == nil {
		return &NotEnrolledError{StudentID: studentID, ClassID: classID}
	}
	if month.Before(enrollment.EnrollmentMonth()) {
		return &InvalidPaymentPeriodError{
			StudentID:       studentID,
			ClassID:         classID,
			Month:           month,
			EnrollmentMonth: enrollment.EnrollmentMonth(),
		}
	}

	existing, err := s.payments.FindByStudentClassMonth(studentID, classID, month)
	if err != nil {
		return err
	}
	if existing != nil {
		return &DuplicatePaymentError{
			StudentID:         studentID,
			ClassID:           classID,
			Month:             month,
			ExistingPaymentID: existing.ID,
		}
	}
	return nil
}

type UpdatePaymentInput struct {
	Amount *decimal.Decimal
	Date   *time.Time
	Method *models.PaymentMethod
	Notes  *string
}

// UpdatePayment changes a payment's amount, date, method or notes. The
// payment month is immutable; a new date recomputes lateness against the
// stored month.
func (s *BillingService) UpdatePayment(paymentID string, in UpdatePaymentInput) (*models.Payment, error) {
	payment, err := s.payments.FindByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, &PaymentNotFoundError{PaymentID: paymentID}
	}

	if in.Amount != nil {
		if err := s.validateAmount(*in.Amount); err != nil {
			return nil, err
		}
		payment.Amount = in.Amount.Round(2)
	}
	if in.Method != nil {
		if !in.Method.IsValid() {
			return nil, &InvalidArgumentError{Reason: "unknown payment method"}
		}
		payment.PaymentMethod = *in.Method
	}
	if in.Notes != nil {
		payment.Notes = in.Notes
	}
	if in.Date != nil {
		payment.PaymentDate = *in.Date
		payment.IsLate = models.IsLatePayment(*in.Date, payment.PaymentMonth)
	}

	if err := s.payments.Save(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// DeletePayment hard-deletes a payment. The (student, class, month) it
// covered becomes outstanding again on the next balance calculation.
func (s *BillingService) DeletePayment(paymentID string) error {
	payment, err := s.payments.FindByID(paymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return &PaymentNotFoundError{PaymentID: paymentID}
	}
	return s.payments.Delete(paymentID)
}

func (s *BillingService) FindPayment(paymentID string) (*models.Payment, error) {
	payment, err := s.payments.FindByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, &PaymentNotFoundError{PaymentID: paymentID}
	}
	return payment, nil
}

func (s *BillingService) AllPayments() ([]*models.Payment, error) {
	return s.payments.FindAll()
}

func (s *BillingService) PaymentsByStudent(studentID string) ([]*models.Payment, error) {
	return s.payments.FindByStudent(studentID)
}

func (s *BillingService) PaymentsByClass(classID string) ([]*models.Payment, error) {
	return s.payments.FindByClass(classID)
}

func (s *BillingService) PaymentsByMonth(month models.Month) ([]*models.Payment, error) {
	return s.payments.FindByMonth(month)
}

func (s *BillingService) LatePaymentsForMonth(month models.Month) ([]*models.Payment, error) {
	return s.payments.FindLateByMonth(month)
}

// TotalRevenueForMonth sums every payment recorded for the month.
func (s *BillingService) TotalRevenueForMonth(month models.Month) (decimal.Decimal, error) {
	payments, err := s.payments.FindByMonth(month)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, payment := range payments {
		total = total.Add(payment.Amount)
	}
	return total, nil
}

func (s *BillingService) validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return &InvalidArgumentError{Reason: "amount must be positive"}
	}
	return nil
}
