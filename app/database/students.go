package database

import (
	"database/sql"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// Students is the Postgres store for students.
type Students struct {
	DB *sql.DB
}

const studentColumns = `id, first_name, last_name, phone, email, address, birth_date, created_at, updated_at`

func (s *Students) FindByID(id string) (*models.Student, error) {
	row := s.DB.QueryRow(`SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	return scanStudent(row)
}

func (s *Students) FindAll() ([]*models.Student, error) {
	rows, err := s.DB.Query(`SELECT ` + studentColumns + ` FROM students ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStudents(rows)
}

// Search matches students by name or phone, case-insensitively.
func (s *Students) Search(query string) ([]*models.Student, error) {
	pattern := "%" + query + "%"
	rows, err := s.DB.Query(`
		SELECT `+studentColumns+` FROM students
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR (first_name || ' ' || last_name) ILIKE $1 OR phone LIKE $1
		ORDER BY last_name, first_name`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStudents(rows)
}

func (s *Students) Save(student *models.Student) error {
	query := `
		INSERT INTO students (id, first_name, last_name, phone, email, address, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			birth_date = EXCLUDED.birth_date,
			updated_at = NOW()
		RETURNING created_at, updated_at`
	return s.DB.QueryRow(query,
		student.ID, student.FirstName, student.LastName, student.Phone,
		student.Email, student.Address, student.BirthDate,
	).Scan(&student.CreatedAt, &student.UpdatedAt)
}

func (s *Students) Delete(id string) error {
	_, err := s.DB.Exec(`DELETE FROM students WHERE id = $1`, id)
	return err
}

func scanStudent(row *sql.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID, &student.FirstName, &student.LastName, &student.Phone,
		&student.Email, &student.Address, &student.BirthDate,
		&student.CreatedAt, &student.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return student, nil
}

func scanStudents(rows *sql.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		err := rows.Scan(
			&student.ID, &student.FirstName, &student.LastName, &student.Phone,
			&student.Email, &student.Address, &student.BirthDate,
			&student.CreatedAt, &student.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}
