package services

import (
	"testing"
	"time"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

func TestComputeOutstandingBeforeCutoff(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	month := models.Month{Year: 2024, Month: time.February}

	result, err := f.billing().ComputeOutstanding(month)
	if err != nil {
		t.Fatalf("ComputeOutstanding: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("students = %d, want 1", len(result))
	}
	if len(result[0].Items) != 2 {
		t.Fatalf("items = %d, want 2", len(result[0].Items))
	}
	for _, item := range result[0].Items {
		if item.IsLate {
			t.Errorf("%s should not be late before the 10th", item.Class.ID)
		}
		if !item.ExpectedAmount.Equal(item.Class.Price) {
			t.Errorf("%s expected = %s, want the plain price %s", item.Class.ID, item.ExpectedAmount, item.Class.Price)
		}
	}
}

func TestComputeOutstandingAppliesLateFee(t *testing.T) {
	f := billingFixture(date(2024, time.February, 15))
	month := models.Month{Year: 2024, Month: time.February}

	result, err := f.billing().ComputeOutstanding(month)
	if err != nil {
		t.Fatalf("ComputeOutstanding: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("students = %d, want 1", len(result))
	}
	for _, item := range result[0].Items {
		if !item.IsLate {
			t.Errorf("%s should be late after the 10th", item.Class.ID)
		}
	}
	amounts := map[string]string{"c1": "5750", "c2": "3450"}
	for _, item := range result[0].Items {
		if !item.ExpectedAmount.Equal(money(amounts[item.Class.ID])) {
			t.Errorf("%s expected = %s, want %s", item.Class.ID, item.ExpectedAmount, amounts[item.Class.ID])
		}
	}
}

func TestComputeOutstandingPastMonthCarriesNoLateFee(t *testing.T) {
	// Lateness is a current-month question; looking back at January from
	// mid-March reports the plain price.
	f := billingFixture(date(2024, time.March, 15))
	month := models.Month{Year: 2024, Month: time.January}

	result, err := f.billing().ComputeOutstanding(month)
	if err != nil {
		t.Fatalf("ComputeOutstanding: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("students = %d, want 1", len(result))
	}
	for _, item := range result[0].Items {
		if item.IsLate {
			t.Errorf("%s: past months are not flagged late", item.Class.ID)
		}
		if !item.ExpectedAmount.Equal(item.Class.Price) {
			t.Errorf("%s expected = %s, want %s", item.Class.ID, item.ExpectedAmount, item.Class.Price)
		}
	}
}

func TestComputeOutstandingSkipsPaidClasses(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	month := models.Month{Year: 2024, Month: time.February}
	if _, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1", ClassID: "c1", Amount: money("5000"), Month: month, Method: models.PaymentCash,
	}); err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}

	result, err := f.billing().ComputeOutstanding(month)
	if err != nil {
		t.Fatalf("ComputeOutstanding: %v", err)
	}
	if len(result) != 1 || len(result[0].Items) != 1 {
		t.Fatalf("result = %+v, want one student owing one class", result)
	}
	if result[0].Items[0].Class.ID != "c2" {
		t.Errorf("outstanding class = %s, want c2", result[0].Items[0].Class.ID)
	}
}

func TestComputeOutstandingSkipsFutureEnrollments(t *testing.T) {
	f := newFixture(date(2024, time.February, 5))
	f.addStudent("s1", "Ana", "Lopez")
	f.addClass("c1", "Salsa", "5000")
	f.addEnrollment("s1", "c1", date(2024, time.March, 1))

	result, err := f.billing().ComputeOutstanding(models.Month{Year: 2024, Month: time.February})
	if err != nil {
		t.Fatalf("ComputeOutstanding: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("students = %d, want none before the enrollment month", len(result))
	}
}

func TestComputeOutstandingOmitsSettledStudents(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	f.addStudent("s2", "Bea", "Diaz")
	month := models.Month{Year: 2024, Month: time.February}
	for _, classID := range []string{"c1", "c2"} {
		if _, err := f.billing().RegisterPayment(RegisterPaymentInput{
			StudentID: "s1", ClassID: classID, Amount: money("1000"), Month: month, Method: models.PaymentCash,
		}); err != nil {
			t.Fatalf("RegisterPayment %s: %v", classID, err)
		}
	}

	result, err := f.billing().ComputeOutstanding(month)
	if err != nil {
		t.Fatalf("ComputeOutstanding: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("students = %d, want none once everything is paid", len(result))
	}
}

func TestDeletedPaymentBecomesOutstandingAgain(t *testing.T) {
	f := billingFixture(date(2024, time.February, 5))
	month := models.Month{Year: 2024, Month: time.February}
	payment, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: "s1", ClassID: "c1", Amount: money("5000"), Month: month, Method: models.PaymentCash,
	})
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}

	before, err := f.billing().ComputeOutstanding(month)
	if err != nil {
		t.Fatalf("ComputeOutstanding: %v", err)
	}
	if len(before[0].Items) != 1 {
		t.Fatalf("items before delete = %d, want 1", len(before[0].Items))
	}

	if err := f.billing().DeletePayment(payment.ID); err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}
	after, err := f.billing().ComputeOutstanding(month)
	if err != nil {
		t.Fatalf("ComputeOutstanding: %v", err)
	}
	if len(after[0].Items) != 2 {
		t.Errorf("items after delete = %d, want the class owed again", len(after[0].Items))
	}
}
