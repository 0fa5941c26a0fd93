package services

import (
	"github.com/shopspring/decimal"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// ReportingService aggregates paid amounts into teacher compensation and
// studio-wide financial summaries. Reports are read-only and derived
// fresh from current data on every call.
type ReportingService struct {
	teachers TeacherStore
	classes  ClassStore
	payments PaymentStore
	billing  *BillingService
}

func NewReportingService(teachers TeacherStore, classes ClassStore, payments PaymentStore, billing *BillingService) *ReportingService {
	return &ReportingService{
		teachers: teachers,
		classes:  classes,
		payments: payments,
		billing:  billing,
	}
}

// TeacherClassReport is one class's revenue and the teacher's cut of it.
type TeacherClassReport struct {
	Class               *models.DanceClass `json:"class"`
	Payments            []*models.Payment  `json:"payments"`
	TotalRevenue        decimal.Decimal    `json:"total_revenue"`
	TeacherCompensation decimal.Decimal    `json:"teacher_compensation"`
}

// TeacherCompensationReport is a teacher's month across their classes.
type TeacherCompensationReport struct {
	Teacher           *models.Teacher       `json:"teacher"`
	Month             models.Month          `json:"month"`
	ClassReports      []*TeacherClassReport `json:"class_reports"`
	TotalCompensation decimal.Decimal       `json:"total_compensation"`
}

// GenerateTeacherCompensation reports, for each teacher with at least one
// payment in any of their classes that month, the revenue per class and
// the teacher's cut (owner 100%, others 50%, rounded to 2 decimals).
// Classes with no payments that month are left off the report.
func (s *ReportingService) GenerateTeacherCompensation(month models.Month) ([]*TeacherCompensationReport, error) {
	teachers, err := s.teachers.FindAll()
	if err != nil {
		return nil, err
	}

	var reports []*TeacherCompensationReport
	for _, teacher := range teachers {
		classes, err := s.classes.FindByTeacher(teacher.ID)
		if err != nil {
			return nil, err
		}

		var classReports []*TeacherClassReport
		total := decimal.Zero
		for _, class := range classes {
			payments, err := s.payments.FindByClassAndMonth(class.ID, month)
			if err != nil {
				return nil, err
			}
			if len(payments) == 0 {
				continue
			}

			revenue := decimal.Zero
			for _, payment := range payments {
				revenue = revenue.Add(payment.Amount)
			}
			cut := revenue.Mul(teacher.SharePercentage()).Round(2)
			total = total.Add(cut)
			classReports = append(classReports, &TeacherClassReport{
				Class:               class,
				Payments:            payments,
				TotalRevenue:        revenue,
				TeacherCompensation: cut,
			})
		}

		if len(classReports) > 0 {
			reports = append(reports, &TeacherCompensationReport{
				Teacher:           teacher,
				Month:             month,
				ClassReports:      classReports,
				TotalCompensation: total,
			})
		}
	}
	return reports, nil
}

// MonthlyFinancialReport is the studio-wide picture for one month. Late
// figures reflect the is_late flag stored at registration time, not
// present-day lateness.
type MonthlyFinancialReport struct {
	Month                    models.Month    `json:"month"`
	TotalRevenue             decimal.Decimal `json:"total_revenue"`
	StudioRevenue            decimal.Decimal `json:"studio_revenue"`
	TotalTeacherCompensation decimal.Decimal `json:"total_teacher_compensation"`
	TotalPayments            int             `json:"total_payments"`
	LatePayments             int             `json:"late_payments"`
	LatePaymentAmount        decimal.Decimal `json:"late_payment_amount"`
}

func (s *ReportingService) GenerateMonthlyFinancial(month models.Month) (*MonthlyFinancialReport, error) {
	payments, err := s.payments.FindByMonth(month)
	if err != nil {
		return nil, err
	}
	totalRevenue := decimal.Zero
	for _, payment := range payments {
		totalRevenue = totalRevenue.Add(payment.Amount)
	}

	latePayments, err := s.payments.FindLateByMonth(month)
	if err != nil {
		return nil, err
	}
	lateAmount := decimal.Zero
	for _, payment := range latePayments {
		lateAmount = lateAmount.Add(payment.Amount)
	}

	compensations, err := s.GenerateTeacherCompensation(month)
	if err != nil {
		return nil, err
	}
	totalCompensation := decimal.Zero
	for _, report := range compensations {
		totalCompensation = totalCompensation.Add(report.TotalCompensation)
	}

	return &MonthlyFinancialReport{
		Month:                    month,
		TotalRevenue:             totalRevenue,
		StudioRevenue:            totalRevenue.Sub(totalCompensation),
		TotalTeacherCompensation: totalCompensation,
		TotalPayments:            len(payments),
		LatePayments:             len(latePayments),
		LatePaymentAmount:        lateAmount,
	}, nil
}

// ClassReport is one class's month: revenue, payments and how many
// distinct students paid.
type ClassReport struct {
	ClassID       string            `json:"class_id"`
	Month         models.Month      `json:"month"`
	Payments      []*models.Payment `json:"payments"`
	TotalRevenue  decimal.Decimal   `json:"total_revenue"`
	StudentsCount int               `json:"students_count"`
}

func (s *ReportingService) GenerateClassReport(classID string, month models.Month) (*ClassReport, error) {
	class, err := s.classes.FindByID(classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, &ClassNotFoundError{ClassID: classID}
	}

	payments, err := s.payments.FindByClassAndMonth(classID, month)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	paidStudents := make(map[string]struct{})
	for _, payment := range payments {
		revenue = revenue.Add(payment.Amount)
		paidStudents[payment.StudentID] = struct{}{}
	}

	return &ClassReport{
		ClassID:       classID,
		Month:         month,
		Payments:      payments,
		TotalRevenue:  revenue,
		StudentsCount: len(paidStudents),
	}, nil
}

// OutstandingReport wraps the per-student outstanding breakdown with the
// totals the back office shows at the top of the page.
type OutstandingReport struct {
	Month                   models.Month          `json:"month"`
	Students                []*StudentOutstanding `json:"students"`
	TotalOutstandingAmount  decimal.Decimal       `json:"total_outstanding_amount"`
	StudentsWithOutstanding int                   `json:"students_with_outstanding"`
}

func (s *ReportingService) GenerateOutstanding(month models.Month) (*OutstandingReport, error) {
	students, err := s.billing.ComputeOutstanding(month)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, student := range students {
		for _, item := range student.Items {
			total = total.Add(item.ExpectedAmount)
		}
	}

	return &OutstandingReport{
		Month:                   month,
		Students:                students,
		TotalOutstandingAmount:  total,
		StudentsWithOutstanding: len(students),
	}, nil
}
