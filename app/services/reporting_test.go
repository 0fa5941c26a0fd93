package services

import (
	"errors"
	"testing"
	"time"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// reportingFixture: the owner teaches Salsa, a hired teacher teaches
// Tango, and two students are enrolled in both from January.
func reportingFixture(now time.Time) *fixture {
	f := newFixture(now)
	owner := f.addTeacher("t1", true)
	hired := f.addTeacher("t2", false)
	f.addStudent("s1", "Ana", "Lopez")
	f.addStudent("s2", "Bea", "Diaz")
	f.addClass("c1", "Salsa", "5000", owner)
	f.addClass("c2", "Tango", "3000", hired)
	for _, studentID := range []string{"s1", "s2"} {
		f.addEnrollment(studentID, "c1", date(2024, time.January, 10))
		f.addEnrollment(studentID, "c2", date(2024, time.January, 10))
	}
	return f
}

func payFor(t *testing.T, f *fixture, studentID, classID, amount string, month models.Month) {
	t.Helper()
	if _, err := f.billing().RegisterPayment(RegisterPaymentInput{
		StudentID: studentID,
		ClassID:   classID,
		Amount:    money(amount),
		Month:     month,
		Method:    models.PaymentCash,
	}); err != nil {
		t.Fatalf("RegisterPayment %s/%s: %v", studentID, classID, err)
	}
}

func TestTeacherCompensationShares(t *testing.T) {
	f := reportingFixture(date(2024, time.February, 5))
	month := models.Month{Year: 2024, Month: time.February}
	payFor(t, f, "s1", "c1", "5000", month)
	payFor(t, f, "s1", "c2", "3000", month)
	payFor(t, f, "s2", "c2", "3000", month)

	reports, err := f.reporting().GenerateTeacherCompensation(month)
	if err != nil {
		t.Fatalf("GenerateTeacherCompensation: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(reports))
	}

	byTeacher := map[string]*TeacherCompensationReport{}
	for _, r := range reports {
		byTeacher[r.Teacher.ID] = r
	}
	// Owner keeps the full class revenue.
	if !byTeacher["t1"].TotalCompensation.Equal(money("5000")) {
		t.Errorf("owner compensation = %s, want 5000", byTeacher["t1"].TotalCompensation)
	}
	// A hired teacher gets half of 6000.
	if !byTeacher["t2"].TotalCompensation.Equal(money("3000")) {
		t.Errorf("hired compensation = %s, want 3000", byTeacher["t2"].TotalCompensation)
	}
	if revenue := byTeacher["t2"].ClassReports[0].TotalRevenue; !revenue.Equal(money("6000")) {
		t.Errorf("tango revenue = %s, want 6000", revenue)
	}
}

func TestTeacherCompensationRoundsHalfUp(t *testing.T) {
	f := reportingFixture(date(2024, time.February, 5))
	month := models.Month{Year: 2024, Month: time.February}
	payFor(t, f, "s1", "c2", "33.33", month)

	reports, err := f.reporting().GenerateTeacherCompensation(month)
	if err != nil {
		t.Fatalf("GenerateTeacherCompensation: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want only the teacher with payments", len(reports))
	}
	// 33.33 * 0.5 = 16.665, rounded half up to 16.67.
	if !reports[0].TotalCompensation.Equal(money("16.67")) {
		t.Errorf("compensation = %s, want 16.67", reports[0].TotalCompensation)
	}
}

func TestTeacherCompensationOmitsQuietClasses(t *testing.T) {
	f := reportingFixture(date(2024, time.February, 5))
	month := models.Month{Year: 2024, Month: time.February}
	payFor(t, f, "s1", "c1", "5000", month)

	reports, err := f.reporting().GenerateTeacherCompensation(month)
	if err != nil {
		t.Fatalf("GenerateTeacherCompensation: %v", err)
	}
	if len(reports) != 1 || reports[0].Teacher.ID != "t1" {
		t.Fatalf("reports = %+v, want only the owner", reports)
	}
	if len(reports[0].ClassReports) != 1 {
		t.Errorf("class reports = %d, want 1", len(reports[0].ClassReports))
	}
}

func TestMonthlyFinancialReport(t *testing.T) {
	f := reportingFixture(date(2024, time.February, 15))
	month := models.Month{Year: 2024, Month: time.February}
	payFor(t, f, "s1", "c1", "5000", month) // late, owner class
	payFor(t, f, "s1", "c2", "3000", month) // late, hired class

	report, err := f.reporting().GenerateMonthlyFinancial(month)
	if err != nil {
		t.Fatalf("GenerateMonthlyFinancial: %v", err)
	}
	if !report.TotalRevenue.Equal(money("8000")) {
		t.Errorf("total revenue = %s, want 8000", report.TotalRevenue)
	}
	// Owner keeps 5000, hired teacher keeps 1500.
	if !report.TotalTeacherCompensation.Equal(money("6500")) {
		t.Errorf("compensation = %s, want 6500", report.TotalTeacherCompensation)
	}
	if !report.StudioRevenue.Equal(money("1500")) {
		t.Errorf("studio revenue = %s, want 1500", report.StudioRevenue)
	}
	if report.TotalPayments != 2 || report.LatePayments != 2 {
		t.Errorf("payments = %d late = %d, want 2 and 2", report.TotalPayments, report.LatePayments)
	}
	if !report.LatePaymentAmount.Equal(money("8000")) {
		t.Errorf("late amount = %s, want 8000", report.LatePaymentAmount)
	}
}

func TestClassReportCountsDistinctStudents(t *testing.T) {
	f := reportingFixture(date(2024, time.March, 5))
	february := models.Month{Year: 2024, Month: time.February}
	march := models.Month{Year: 2024, Month: time.March}
	payFor(t, f, "s1", "c1", "5000", february)
	payFor(t, f, "s1", "c1", "5000", march)
	payFor(t, f, "s2", "c1", "5000", march)

	report, err := f.reporting().GenerateClassReport("c1", march)
	if err != nil {
		t.Fatalf("GenerateClassReport: %v", err)
	}
	if report.StudentsCount != 2 {
		t.Errorf("students = %d, want 2", report.StudentsCount)
	}
	if !report.TotalRevenue.Equal(money("10000")) {
		t.Errorf("revenue = %s, want 10000", report.TotalRevenue)
	}
	if len(report.Payments) != 2 {
		t.Errorf("payments = %d, want only March's", len(report.Payments))
	}
}

func TestClassReportUnknownClass(t *testing.T) {
	f := reportingFixture(date(2024, time.February, 5))
	_, err := f.reporting().GenerateClassReport("missing", models.Month{Year: 2024, Month: time.February})
	var cnf *ClassNotFoundError
	if !errors.As(err, &cnf) {
		t.Fatalf("err = %v, want ClassNotFoundError", err)
	}
}

func TestGenerateOutstandingTotals(t *testing.T) {
	f := reportingFixture(date(2024, time.February, 15))
	month := models.Month{Year: 2024, Month: time.February}
	payFor(t, f, "s2", "c1", "5000", month)
	payFor(t, f, "s2", "c2", "3000", month)

	report, err := f.reporting().GenerateOutstanding(month)
	if err != nil {
		t.Fatalf("GenerateOutstanding: %v", err)
	}
	if report.StudentsWithOutstanding != 1 {
		t.Fatalf("students = %d, want 1", report.StudentsWithOutstanding)
	}
	// s1 owes both classes with the 15% late fee: 5750 + 3450.
	if !report.TotalOutstandingAmount.Equal(money("9200")) {
		t.Errorf("total = %s, want 9200", report.TotalOutstandingAmount)
	}
}
