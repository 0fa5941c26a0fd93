package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// EnrollmentService is the ledger of student/class links. Rows are only
// ever created or deactivated; deactivated rows stay as the audit trail.
type EnrollmentService struct {
	students    StudentStore
	classes     ClassStore
	enrollments EnrollmentStore
	clock       Clock
}

func NewEnrollmentService(students StudentStore, classes ClassStore, enrollments EnrollmentStore, clock Clock) *EnrollmentService {
	return &EnrollmentService{
		students:    students,
		classes:     classes,
		enrollments: enrollments,
		clock:       clock,
	}
}

// Enroll links a student to a class. The enrollment date defaults to
// today when the caller does not supply one.
func (s *EnrollmentService) Enroll(studentID, classID string, date *time.Time, notes *string) (*models.Enrollment, error) {
	student, err := s.students.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, &StudentNotFoundError{StudentID: studentID}
	}

	class, err := s.classes.FindByID(classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, &ClassNotFoundError{ClassID: classID}
	}

	existing, err := s.enrollments.FindActive(studentID, classID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &AlreadyEnrolledError{StudentID: studentID, ClassID: classID}
	}

	effectiveDate := s.clock.Now()
	if date != nil {
		effectiveDate = *date
	}

	enrollment := &models.Enrollment{
		ID:             uuid.NewString(),
		StudentID:      studentID,
		ClassID:        classID,
		EnrollmentDate: effectiveDate,
		Notes:          notes,
		IsActive:       true,
		CreatedAt:      s.clock.Now(),
	}
	if err := s.enrollments.Save(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// Unenroll deactivates the active enrollment for the pair. The row is
// kept; a later re-enroll creates a fresh one.
func (s *EnrollmentService) Unenroll(studentID, classID string) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.FindActive(studentID, classID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, &NotEnrolledError{StudentID: studentID, ClassID: classID}
	}

	enrollment.IsActive = false
	if err := s.enrollments.Save(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// UnenrollAll deactivates every active enrollment of a student. Used
// when a student leaves the studio.
func (s *EnrollmentService) UnenrollAll(studentID string) error {
	active, err := s.enrollments.FindActiveByStudent(studentID)
	if err != nil {
		return err
	}
	for _, enrollment := range active {
		enrollment.IsActive = false
		if err := s.enrollments.Save(enrollment); err != nil {
			return err
		}
	}
	return nil
}

func (s *EnrollmentService) IsEnrolled(studentID, classID string) (bool, error) {
	enrollment, err := s.enrollments.FindActive(studentID, classID)
	if err != nil {
		return false, err
	}
	return enrollment != nil, nil
}

func (s *EnrollmentService) ActiveEnrollmentsForStudent(studentID string) ([]*models.Enrollment, error) {
	return s.enrollments.FindActiveByStudent(studentID)
}

func (s *EnrollmentService) ActiveEnrollmentsForClass(classID string) ([]*models.Enrollment, error) {
	return s.enrollments.FindActiveByClass(classID)
}
