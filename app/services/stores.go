package services

import "github.com/TV3ntu/nova-crm-backend/app/models"

// Store interfaces are the persistence gateways the services run on.
// Lookups return nil (not an error) when nothing matches; errors are
// reserved for storage failures.

type StudentStore interface {
	FindByID(id string) (*models.Student, error)
	FindAll() ([]*models.Student, error)
}

type ClassStore interface {
	FindByID(id string) (*models.DanceClass, error)
	FindAll() ([]*models.DanceClass, error)
	FindByTeacher(teacherID string) ([]*models.DanceClass, error)
}

type TeacherStore interface {
	FindByID(id string) (*models.Teacher, error)
	FindAll() ([]*models.Teacher, error)
}

type EnrollmentStore interface {
	FindActive(studentID, classID string) (*models.Enrollment, error)
	FindActiveByStudent(studentID string) ([]*models.Enrollment, error)
	FindActiveByClass(classID string) ([]*models.Enrollment, error)
	// Save inserts a new enrollment or updates an existing one by id.
	Save(enrollment *models.Enrollment) error
}

type PaymentStore interface {
	FindByID(id string) (*models.Payment, error)
	FindByStudentClassMonth(studentID, classID string, month models.Month) (*models.Payment, error)
	FindByStudent(studentID string) ([]*models.Payment, error)
	FindByClass(classID string) ([]*models.Payment, error)
	FindByMonth(month models.Month) ([]*models.Payment, error)
	FindByClassAndMonth(classID string, month models.Month) ([]*models.Payment, error)
	FindLateByMonth(month models.Month) ([]*models.Payment, error)
	FindAll() ([]*models.Payment, error)
	// Save inserts a new payment or updates an existing one by id.
	Save(payment *models.Payment) error
	// SaveAll inserts all payments atomically: every one is stored or
	// none are.
	SaveAll(payments []*models.Payment) error
	Delete(id string) error
}
