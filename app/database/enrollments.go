package database

import (
	"database/sql"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// Enrollments is the Postgres store for the enrollment ledger. Rows are
// never deleted here; unenrolling flips is_active off through Save.
type Enrollments struct {
	DB *sql.DB
}

const enrollmentColumns = `id, student_id, class_id, enrollment_date, notes, is_active, created_at`

func (e *Enrollments) FindActive(studentID, classID string) (*models.Enrollment, error) {
	row := e.DB.QueryRow(`
		SELECT `+enrollmentColumns+` FROM enrollments
		WHERE student_id = $1 AND class_id = $2 AND is_active`, studentID, classID)
	enrollment := &models.Enrollment{}
	err := row.Scan(
		&enrollment.ID, &enrollment.StudentID, &enrollment.ClassID,
		&enrollment.EnrollmentDate, &enrollment.Notes, &enrollment.IsActive,
		&enrollment.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (e *Enrollments) FindActiveByStudent(studentID string) ([]*models.Enrollment, error) {
	rows, err := e.DB.Query(`
		SELECT `+enrollmentColumns+` FROM enrollments
		WHERE student_id = $1 AND is_active
		ORDER BY enrollment_date`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrollments(rows)
}

func (e *Enrollments) FindActiveByClass(classID string) ([]*models.Enrollment, error) {
	rows, err := e.DB.Query(`
		SELECT `+enrollmentColumns+` FROM enrollments
		WHERE class_id = $1 AND is_active
		ORDER BY enrollment_date`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrollments(rows)
}

func (e *Enrollments) Save(enrollment *models.Enrollment) error {
	// The partial unique index on active (student_id, class_id) is the
	// backstop against two concurrent enrolls of the same pair.
	query := `
		INSERT INTO enrollments (id, student_id, class_id, enrollment_date, notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			notes = EXCLUDED.notes,
			is_active = EXCLUDED.is_active
		RETURNING created_at`
	return e.DB.QueryRow(query,
		enrollment.ID, enrollment.StudentID, enrollment.ClassID,
		enrollment.EnrollmentDate, enrollment.Notes, enrollment.IsActive,
	).Scan(&enrollment.CreatedAt)
}

func scanEnrollments(rows *sql.Rows) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	for rows.Next() {
		enrollment := &models.Enrollment{}
		err := rows.Scan(
			&enrollment.ID, &enrollment.StudentID, &enrollment.ClassID,
			&enrollment.EnrollmentDate, &enrollment.Notes, &enrollment.IsActive,
			&enrollment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, rows.Err()
}
