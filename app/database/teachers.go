package database

import (
	"database/sql"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// Teachers is the Postgres store for teachers.
type Teachers struct {
	DB *sql.DB
}

const teacherColumns = `id, first_name, last_name, phone, email, address, is_studio_owner, created_at, updated_at`

func (t *Teachers) FindByID(id string) (*models.Teacher, error) {
	row := t.DB.QueryRow(`SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id)
	teacher := &models.Teacher{}
	err := row.Scan(
		&teacher.ID, &teacher.FirstName, &teacher.LastName, &teacher.Phone,
		&teacher.Email, &teacher.Address, &teacher.IsStudioOwner,
		&teacher.CreatedAt, &teacher.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return teacher, nil
}

func (t *Teachers) FindAll() ([]*models.Teacher, error) {
	rows, err := t.DB.Query(`SELECT ` + teacherColumns + ` FROM teachers ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTeachers(rows)
}

// FindByClass returns the teachers assigned to a class.
func (t *Teachers) FindByClass(classID string) ([]*models.Teacher, error) {
	rows, err := t.DB.Query(`
		SELECT t.id, t.first_name, t.last_name, t.phone, t.email, t.address, t.is_studio_owner, t.created_at, t.updated_at
		FROM teachers t
		JOIN class_teachers ct ON ct.teacher_id = t.id
		WHERE ct.class_id = $1
		ORDER BY t.last_name, t.first_name`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTeachers(rows)
}

func (t *Teachers) Save(teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (id, first_name, last_name, phone, email, address, is_studio_owner)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			is_studio_owner = EXCLUDED.is_studio_owner,
			updated_at = NOW()
		RETURNING created_at, updated_at`
	return t.DB.QueryRow(query,
		teacher.ID, teacher.FirstName, teacher.LastName, teacher.Phone,
		teacher.Email, teacher.Address, teacher.IsStudioOwner,
	).Scan(&teacher.CreatedAt, &teacher.UpdatedAt)
}

func (t *Teachers) Delete(id string) error {
	_, err := t.DB.Exec(`DELETE FROM teachers WHERE id = $1`, id)
	return err
}

func scanTeachers(rows *sql.Rows) ([]*models.Teacher, error) {
	var teachers []*models.Teacher
	for rows.Next() {
		teacher := &models.Teacher{}
		err := rows.Scan(
			&teacher.ID, &teacher.FirstName, &teacher.LastName, &teacher.Phone,
			&teacher.Email, &teacher.Address, &teacher.IsStudioOwner,
			&teacher.CreatedAt, &teacher.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}
	return teachers, rows.Err()
}
