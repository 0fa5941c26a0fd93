package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// In-memory store implementations backing the service tests. They keep
// insertion order so report output is deterministic.

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type memStudents struct {
	items []*models.Student
}

func (m *memStudents) FindByID(id string) (*models.Student, error) {
	for _, s := range m.items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memStudents) FindAll() ([]*models.Student, error) {
	return m.items, nil
}

type memClasses struct {
	items []*models.DanceClass
}

func (m *memClasses) FindByID(id string) (*models.DanceClass, error) {
	for _, c := range m.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memClasses) FindAll() ([]*models.DanceClass, error) {
	return m.items, nil
}

func (m *memClasses) FindByTeacher(teacherID string) ([]*models.DanceClass, error) {
	var out []*models.DanceClass
	for _, c := range m.items {
		for _, t := range c.Teachers {
			if t.ID == teacherID {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

type memTeachers struct {
	items []*models.Teacher
}

func (m *memTeachers) FindByID(id string) (*models.Teacher, error) {
	for _, t := range m.items {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (m *memTeachers) FindAll() ([]*models.Teacher, error) {
	return m.items, nil
}

type memEnrollments struct {
	items []*models.Enrollment
}

func (m *memEnrollments) FindActive(studentID, classID string) (*models.Enrollment, error) {
	for _, e := range m.items {
		if e.IsActive && e.StudentID == studentID && e.ClassID == classID {
			return e, nil
		}
	}
	return nil, nil
}

func (m *memEnrollments) FindActiveByStudent(studentID string) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range m.items {
		if e.IsActive && e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEnrollments) FindActiveByClass(classID string) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range m.items {
		if e.IsActive && e.ClassID == classID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEnrollments) Save(enrollment *models.Enrollment) error {
	for i, e := range m.items {
		if e.ID == enrollment.ID {
			m.items[i] = enrollment
			return nil
		}
	}
	m.items = append(m.items, enrollment)
	return nil
}

type memPayments struct {
	items []*models.Payment
}

func (m *memPayments) FindByID(id string) (*models.Payment, error) {
	for _, p := range m.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memPayments) FindByStudentClassMonth(studentID, classID string, month models.Month) (*models.Payment, error) {
	for _, p := range m.items {
		if p.StudentID == studentID && p.ClassID == classID && p.PaymentMonth == month {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memPayments) FindByStudent(studentID string) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range m.items {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPayments) FindByClass(classID string) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range m.items {
		if p.ClassID == classID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPayments) FindByMonth(month models.Month) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range m.items {
		if p.PaymentMonth == month {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPayments) FindByClassAndMonth(classID string, month models.Month) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range m.items {
		if p.ClassID == classID && p.PaymentMonth == month {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPayments) FindLateByMonth(month models.Month) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range m.items {
		if p.PaymentMonth == month && p.IsLate {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPayments) FindAll() ([]*models.Payment, error) {
	return m.items, nil
}

func (m *memPayments) Save(payment *models.Payment) error {
	for i, p := range m.items {
		if p.ID == payment.ID {
			m.items[i] = payment
			return nil
		}
	}
	m.items = append(m.items, payment)
	return nil
}

func (m *memPayments) SaveAll(payments []*models.Payment) error {
	m.items = append(m.items, payments...)
	return nil
}

func (m *memPayments) Delete(id string) error {
	for i, p := range m.items {
		if p.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// fixture wires the in-memory stores into the services under test.
type fixture struct {
	students    *memStudents
	classes     *memClasses
	teachers    *memTeachers
	enrollments *memEnrollments
	payments    *memPayments
	clock       *fixedClock
}

func newFixture(now time.Time) *fixture {
	return &fixture{
		students:    &memStudents{},
		classes:     &memClasses{},
		teachers:    &memTeachers{},
		enrollments: &memEnrollments{},
		payments:    &memPayments{},
		clock:       &fixedClock{now: now},
	}
}

func (f *fixture) billing() *BillingService {
	return NewBillingService(f.students, f.classes, f.enrollments, f.payments, f.clock)
}

func (f *fixture) ledger() *EnrollmentService {
	return NewEnrollmentService(f.students, f.classes, f.enrollments, f.clock)
}

func (f *fixture) reporting() *ReportingService {
	return NewReportingService(f.teachers, f.classes, f.payments, f.billing())
}

func (f *fixture) addStudent(id, firstName, lastName string) *models.Student {
	s := &models.Student{ID: id, FirstName: firstName, LastName: lastName, Phone: "555-0100"}
	f.students.items = append(f.students.items, s)
	return s
}

func (f *fixture) addTeacher(id string, owner bool) *models.Teacher {
	t := &models.Teacher{ID: id, FirstName: "Teacher", LastName: id, Phone: "555-0200", IsStudioOwner: owner}
	f.teachers.items = append(f.teachers.items, t)
	return t
}

func (f *fixture) addClass(id, name, price string, teachers ...*models.Teacher) *models.DanceClass {
	c := &models.DanceClass{
		ID:            id,
		Name:          name,
		Price:         decimal.RequireFromString(price),
		DurationHours: 1,
		Teachers:      teachers,
	}
	f.classes.items = append(f.classes.items, c)
	return c
}

func (f *fixture) addEnrollment(studentID, classID string, date time.Time) *models.Enrollment {
	e := &models.Enrollment{
		ID:             uuid.NewString(),
		StudentID:      studentID,
		ClassID:        classID,
		EnrollmentDate: date,
		IsActive:       true,
		CreatedAt:      date,
	}
	f.enrollments.items = append(f.enrollments.items, e)
	return e
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}
