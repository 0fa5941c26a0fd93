package database

import (
	"database/sql"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// Classes is the Postgres store for dance classes. Reads hydrate the
// schedule slots and assigned teachers alongside the class row.
type Classes struct {
	DB *sql.DB
}

const classColumns = `id, name, description, price, duration_hours, created_at, updated_at`

func (c *Classes) FindByID(id string) (*models.DanceClass, error) {
	row := c.DB.QueryRow(`SELECT `+classColumns+` FROM dance_classes WHERE id = $1`, id)
	class := &models.DanceClass{}
	err := row.Scan(
		&class.ID, &class.Name, &class.Description, &class.Price,
		&class.DurationHours, &class.CreatedAt, &class.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := c.hydrate(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (c *Classes) FindAll() ([]*models.DanceClass, error) {
	rows, err := c.DB.Query(`SELECT ` + classColumns + ` FROM dance_classes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return c.scanAndHydrate(rows)
}

// Search matches classes by name or by an assigned teacher's name.
func (c *Classes) Search(query string) ([]*models.DanceClass, error) {
	pattern := "%" + query + "%"
	rows, err := c.DB.Query(`
		SELECT DISTINCT cl.id, cl.name, cl.description, cl.price, cl.duration_hours, cl.created_at, cl.updated_at
		FROM dance_classes cl
		LEFT JOIN class_teachers ct ON ct.class_id = cl.id
		LEFT JOIN teachers t ON t.id = ct.teacher_id
		WHERE cl.name ILIKE $1
			OR t.first_name ILIKE $1
			OR t.last_name ILIKE $1
			OR (t.first_name || ' ' || t.last_name) ILIKE $1
		ORDER BY cl.name`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return c.scanAndHydrate(rows)
}

func (c *Classes) FindByTeacher(teacherID string) ([]*models.DanceClass, error) {
	rows, err := c.DB.Query(`
		SELECT cl.id, cl.name, cl.description, cl.price, cl.duration_hours, cl.created_at, cl.updated_at
		FROM dance_classes cl
		JOIN class_teachers ct ON ct.class_id = cl.id
		WHERE ct.teacher_id = $1
		ORDER BY cl.name`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return c.scanAndHydrate(rows)
}

// Save upserts the class row and replaces its schedule slots.
func (c *Classes) Save(class *models.DanceClass) error {
	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO dance_classes (id, name, description, price, duration_hours)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			duration_hours = EXCLUDED.duration_hours,
			updated_at = NOW()
		RETURNING created_at, updated_at`
	err = tx.QueryRow(query,
		class.ID, class.Name, class.Description, class.Price, class.DurationHours,
	).Scan(&class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM class_schedules WHERE class_id = $1`, class.ID); err != nil {
		return err
	}
	for _, slot := range class.Schedules {
		_, err := tx.Exec(`
			INSERT INTO class_schedules (class_id, day_of_week, start_hour, start_minute)
			VALUES ($1, $2, $3, $4)`,
			class.ID, string(slot.DayOfWeek), slot.StartHour, slot.StartMinute)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (c *Classes) Delete(id string) error {
	_, err := c.DB.Exec(`DELETE FROM dance_classes WHERE id = $1`, id)
	return err
}

// AssignTeacher links a teacher to a class. Assigning twice is a no-op.
func (c *Classes) AssignTeacher(classID, teacherID string) error {
	_, err := c.DB.Exec(`
		INSERT INTO class_teachers (class_id, teacher_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, classID, teacherID)
	return err
}

func (c *Classes) UnassignTeacher(classID, teacherID string) error {
	_, err := c.DB.Exec(`DELETE FROM class_teachers WHERE class_id = $1 AND teacher_id = $2`, classID, teacherID)
	return err
}

func (c *Classes) scanAndHydrate(rows *sql.Rows) ([]*models.DanceClass, error) {
	var classes []*models.DanceClass
	for rows.Next() {
		class := &models.DanceClass{}
		err := rows.Scan(
			&class.ID, &class.Name, &class.Description, &class.Price,
			&class.DurationHours, &class.CreatedAt, &class.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, class := range classes {
		if err := c.hydrate(class); err != nil {
			return nil, err
		}
	}
	return classes, nil
}

func (c *Classes) hydrate(class *models.DanceClass) error {
	rows, err := c.DB.Query(`
		SELECT day_of_week, start_hour, start_minute
		FROM class_schedules WHERE class_id = $1
		ORDER BY day_of_week, start_hour, start_minute`, class.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		slot := &models.ClassSchedule{}
		var day string
		if err := rows.Scan(&day, &slot.StartHour, &slot.StartMinute); err != nil {
			return err
		}
		slot.DayOfWeek = models.DayOfWeek(day)
		class.Schedules = append(class.Schedules, slot)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	teachers := &Teachers{DB: c.DB}
	class.Teachers, err = teachers.FindByClass(class.ID)
	return err
}
