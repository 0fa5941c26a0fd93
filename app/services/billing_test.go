package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func billingFixture(now time.Time) *fixture {
	f := newFixture(now)
	f.addStudent("s1", "Ana", "Lopez")
	f.addClass("c1", "Salsa", "5000")
	f.addClass("c2", "Tango", "3000")
	f.addEnrollment("s1", "c1", date(2024, time.January, 10))
	f.addEnrollment("s1", "c2", date(2024, time.January, 10))
	return f
}

func TestRegisterPaymentOnTime(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	payment, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1",
		ClassID:   "c1",
		Amount:    money("5000"),
		Month:     models.Month{Year: 2024, Month: time.February},
		Method:    models.PaymentCash,
	})
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}
	if payment.IsLate {
		t.Error("payment on the 5th for the current month should not be late")
	}
	if !payment.Amount.Equal(money("5000")) {
		t.Errorf("amount = %s, want 5000", payment.Amount)
	}
	if !payment.PaymentDate.Equal(f.clock.now) {
		t.Errorf("payment date = %v, want clock time", payment.PaymentDate)
	}
}

func TestRegisterPaymentLate(t *testing.T) {
	f := billingFixture(date(2024, time.February, 15))
	payment, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1",
		ClassID:   "c1",
		Amount:    money("5750"),
		Month:     models.Month{Year: 2024, Month: time.February},
		Method:    models.PaymentTransfer,
	})
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}
	if !payment.IsLate {
		t.Error("payment on the 15th for the current month should be late")
	}
	// The caller's amount is stored as-is; no surcharge is applied here.
	if !payment.Amount.Equal(money("5750")) {
		t.Errorf("amount = %s, want 5750", payment.Amount)
	}
}

func TestRegisterPaymentForPastMonthNeverLate(t *testing.T) {
	f := billingFixture(date(2024, time.March, 20))
	payment, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1",
		ClassID:   "c1",
		Amount:    money("5000"),
		Month:     models.Month{Year: 2024, Month: time.February},
		Method:    models.PaymentCash,
	})
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}
	if payment.IsLate {
		t.Error("paying a past month is never flagged late")
	}
}

func TestRegisterPaymentRoundsAmount(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	payment, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1",
		ClassID:   "c1",
		Amount:    money("5000.005"),
		Month:     models.Month{Year: 2024, Month: time.February},
		Method:    models.PaymentCash,
	})
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}
	if !payment.Amount.Equal(money("5000.01")) {
		t.Errorf("amount = %s, want 5000.01", payment.Amount)
	}
}

func TestRegisterPaymentDuplicate(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	in := RegisterPaymentInput{
		StudentID: "s1",
		ClassID:   "c1",
		Amount:    money("5000"),
		Month:     models.Month{Year: 2024, Month: time.February},
		Method:    models.PaymentCash,
	}
	first, err := f.billing().RegisterPayment(in)
	if err != nil {
		t.Fatalf("first RegisterPayment: %v", err)
	}

	_, err = f.billing().RegisterPayment(in)
	var dup *DuplicatePaymentError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want DuplicatePaymentError", err)
	}
	if dup.ExistingPaymentID != first.ID {
		t.Errorf("existing payment id = %s, want %s", dup.ExistingPaymentID, first.ID)
	}
}

func TestRegisterPaymentBeforeEnrollmentMonth(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	_, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1",
		ClassID:   "c1",
		Amount:    money("5000"),
		Month:     models.Month{Year: 2023, Month: time.December},
		Method:    models.PaymentCash,
	})
	var invalid *InvalidPaymentPeriodError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidPaymentPeriodError", err)
	}
}

func TestRegisterPaymentNotEnrolled(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	f.addStudent("s2", "Bea", "Diaz")
	_, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s2",
		ClassID:   "c1",
		Amount:    money("5000"),
		Month:     models.Month{Year: 2024, Month: time.February},
		Method:    models.PaymentCash,
	})
	var notEnrolled *NotEnrolledError
	if !errors.As(err, &notEnrolled) {
		t.Fatalf("err = %v, want NotEnrolledError", err)
	}
}

func TestRegisterPaymentValidation(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	month := models.Month{Year: 2024, Month: time.February}

	_, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1", ClassID: "c1", Amount: money("-1"), Month: month, Method: models.PaymentCash,
	})
	var invalid *InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("negative amount: err = %v, want InvalidArgumentError", err)
	}

	_, err = f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1", ClassID: "c1", Amount: money("5000"), Month: month, Method: "cheque",
	})
	if !errors.As(err, &invalid) {
		t.Fatalf("bad method: err = %v, want InvalidArgumentError", err)
	}

	_, err = f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1", ClassID: "c1", Amount: money("5000"), Method: models.PaymentCash,
	})
	if !errors.As(err, &invalid) {
		t.Fatalf("zero month: err = %v, want InvalidArgumentError", err)
	}

	_, err = f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "missing", ClassID: "c1", Amount: money("5000"), Month: month, Method: models.PaymentCash,
	})
	var snf *StudentNotFoundError
	if !errors.As(err, &snf) {
		t.Fatalf("unknown student: err = %v, want StudentNotFoundError", err)
	}

	_, err = f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1", ClassID: "missing", Amount: money("5000"), Month: month, Method: models.PaymentCash,
	})
	var cnf *ClassNotFoundError
	if !errors.As(err, &cnf) {
		t.Fatalf("unknown class: err = %v, want ClassNotFoundError", err)
	}
}

func TestMultiClassPaymentExactAmount(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	payments, err := f.billing().RegisterMultiClassPayment(MultiClassPaymentInput{
		StudentID:   "s1",
		TotalAmount: money("8000"),
		Month:       models.Month{Year: 2024, Month: time.February},
		Method:      models.PaymentCash,
	})
	if err != nil {
		t.Fatalf("RegisterMultiClassPayment: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("payments = %d, want 2", len(payments))
	}
	byClass := map[string]decimal.Decimal{}
	for _, p := range payments {
		byClass[p.ClassID] = p.Amount
	}
	if !byClass["c1"].Equal(money("5000")) {
		t.Errorf("c1 amount = %s, want 5000", byClass["c1"])
	}
	if !byClass["c2"].Equal(money("3000")) {
		t.Errorf("c2 amount = %s, want 3000", byClass["c2"])
	}
}

func TestMultiClassPaymentUnderpayment(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	payments, err := f.billing().RegisterMultiClassPayment(MultiClassPaymentInput{
		StudentID:   "s1",
		TotalAmount: money("4000"),
		Month:       models.Month{Year: 2024, Month: time.February},
		Method:      models.PaymentTransfer,
	})
	if err != nil {
		t.Fatalf("RegisterMultiClassPayment: %v", err)
	}
	byClass := map[string]decimal.Decimal{}
	for _, p := range payments {
		byClass[p.ClassID] = p.Amount
	}
	// Factor 4000/8000 = 0.5, applied per class.
	if !byClass["c1"].Equal(money("2500")) {
		t.Errorf("c1 amount = %s, want 2500", byClass["c1"])
	}
	if !byClass["c2"].Equal(money("1500")) {
		t.Errorf("c2 amount = %s, want 1500", byClass["c2"])
	}
}

func TestMultiClassPaymentOverpayment(t *testing.T) {
	f := billingFixture(date(2024, time.February, 20))
	payments, err := f.billing().RegisterMultiClassPayment(MultiClassPaymentInput{
		StudentID:   "s1",
		TotalAmount: money("9200"),
		Month:       models.Month{Year: 2024, Month: time.February},
		Method:      models.PaymentCard,
	})
	if err != nil {
		t.Fatalf("RegisterMultiClassPayment: %v", err)
	}
	byClass := map[string]decimal.Decimal{}
	for _, p := range payments {
		byClass[p.ClassID] = p.Amount
		if !p.IsLate {
			t.Errorf("payment for %s on the 20th should be late", p.ClassID)
		}
	}
	// Factor 9200/8000 = 1.15.
	if !byClass["c1"].Equal(money("5750")) {
		t.Errorf("c1 amount = %s, want 5750", byClass["c1"])
	}
	if !byClass["c2"].Equal(money("3450")) {
		t.Errorf("c2 amount = %s, want 3450", byClass["c2"])
	}
}

func TestMultiClassPaymentSkipsPaidAndFutureClasses(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	f.addClass("c3", "Jazz", "4000")
	// Enrolled in c3 only from March, so February has nothing to pay there.
	f.addEnrollment("s1", "c3", date(2024, time.March, 1))

	month := models.Month{Year: 2024, Month: time.February}
	if _, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1", ClassID: "c1", Amount: money("5000"), Month: month, Method: models.PaymentCash,
	}); err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}

	payments, err := f.billing().RegisterMultiClassPayment(MultiClassPaymentInput{
		StudentID:   "s1",
		TotalAmount: money("3000"),
		Month:       month,
		Method:      models.PaymentCash,
	})
	if err != nil {
		t.Fatalf("RegisterMultiClassPayment: %v", err)
	}
	if len(payments) != 1 || payments[0].ClassID != "c2" {
		t.Fatalf("payments = %+v, want only c2", payments)
	}
	if !payments[0].Amount.Equal(money("3000")) {
		t.Errorf("amount = %s, want 3000", payments[0].Amount)
	}
}

func TestMultiClassPaymentExplicitSelectionAbortsOnIneligible(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	month := models.Month{Year: 2024, Month: time.February}
	if _, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1", ClassID: "c1", Amount: money("5000"), Month: month, Method: models.PaymentCash,
	}); err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}
	stored := len(f.payments.items)

	_, err := f.billing().RegisterMultiClassPayment(MultiClassPaymentInput{
		StudentID:   "s1",
		TotalAmount: money("8000"),
		Month:       month,
		Method:      models.PaymentCash,
		ClassIDs:    []string{"c1", "c2"},
	})
	var dup *DuplicatePaymentError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want DuplicatePaymentError", err)
	}
	if len(f.payments.items) != stored {
		t.Error("a rejected multi-class payment must not store anything")
	}
}

func TestMultiClassPaymentNoPayableClasses(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	month := models.Month{Year: 2024, Month: time.February}
	for _, classID := range []string{"c1", "c2"} {
		if _, err := f.billing().RegisterPayment(RegisterPaymentInput{
			StudentID: "s1", ClassID: classID, Amount: money("1000"), Month: month, Method: models.PaymentCash,
		}); err != nil {
			t.Fatalf("RegisterPayment %s: %v", classID, err)
		}
	}

	_, err := f.billing().RegisterMultiClassPayment(MultiClassPaymentInput{
		StudentID:   "s1",
		TotalAmount: money("8000"),
		Month:       month,
		Method:      models.PaymentCash,
	})
	var none *NoPayableClassesError
	if !errors.As(err, &none) {
		t.Fatalf("err = %v, want NoPayableClassesError", err)
	}
}

func TestUpdatePaymentRecomputesLateness(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	payment, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1",
		ClassID:   "c1",
		Amount:    money("5000"),
		Month:     models.Month{Year: 2024, Month: time.February},
		Method:    models.PaymentCash,
	})
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}

	lateDate := date(2024, time.February, 18)
	amount := money("5750")
	updated, err := f.billing().UpdatePayment(payment.ID, UpdatePaymentInput{
		Amount: &amount,
		Date:   &lateDate,
	})
	if err != nil {
		t.Fatalf("UpdatePayment: %v", err)
	}
	if !updated.IsLate {
		t.Error("moving the date past the 10th should flag the payment late")
	}
	if !updated.Amount.Equal(money("5750")) {
		t.Errorf("amount = %s, want 5750", updated.Amount)
	}
	if updated.PaymentMonth != payment.PaymentMonth {
		t.Error("payment month must stay unchanged on update")
	}
}

func TestUpdatePaymentWithoutDateKeepsLateness(t *testing.T) {
	f := billingFixture(date(2024, time.February, 15))
	payment, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1",
		ClassID:   "c1",
		Amount:    money("5750"),
		Month:     models.Month{Year: 2024, Month: time.February},
		Method:    models.PaymentCash,
	})
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}

	notes := "corrected amount"
	updated, err := f.billing().UpdatePayment(payment.ID, UpdatePaymentInput{Notes: &notes})
	if err != nil {
		t.Fatalf("UpdatePayment: %v", err)
	}
	if !updated.IsLate {
		t.Error("lateness must not change when the date is untouched")
	}
	if updated.Notes == nil || *updated.Notes != notes {
		t.Errorf("notes = %v, want %q", updated.Notes, notes)
	}
}

func TestUpdatePaymentNotFound(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	_, err := f.billing().UpdatePayment("missing", UpdatePaymentInput{})
	var pnf *PaymentNotFoundError
	if !errors.As(err, &pnf) {
		t.Fatalf("err = %v, want PaymentNotFoundError", err)
	}
}

func TestDeletePayment(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	payment, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1",
		ClassID:   "c1",
		Amount:    money("5000"),
		Month:     models.Month{Year: 2024, Month: time.February},
		Method:    models.PaymentCash,
	})
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}

	if err := f.billing().DeletePayment(payment.ID); err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}
	if _, err := f.billing().FindPayment(payment.ID); err == nil {
		t.Error("deleted payment should no longer be found")
	}
	if err := f.billing().DeletePayment(payment.ID); err == nil {
		t.Error("deleting twice should report PaymentNotFoundError")
	}
}

func TestTotalRevenueForMonth(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	month := models.Month{Year: 2024, Month: time.February}
	for classID, amount := range map[string]string{"c1": "5000", "c2": "3000"} {
		if _, err := f.billing().RegisterPayment(RegisterPaymentInput{
			StudentID: "s1", ClassID: classID, Amount: money(amount), Month: month, Method: models.PaymentCash,
		}); err != nil {
			t.Fatalf("RegisterPayment %s: %v", classID, err)
		}
	}

	total, err := f.billing().TotalRevenueForMonth(month)
	if err != nil {
		t.Fatalf("TotalRevenueForMonth: %v", err)
	}
	if !total.Equal(money("8000")) {
		t.Errorf("total = %s, want 8000", total)
	}

	other, err := f.billing().TotalRevenueForMonth(models.Month{Year: 2024, Month: time.March})
	if err != nil {
		t.Fatalf("TotalRevenueForMonth: %v", err)
	}
	if !other.IsZero() {
		t.Errorf("march total = %s, want 0", other)
	}
}
