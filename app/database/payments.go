package database

import (
	"database/sql"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// Payments is the Postgres store for payments. The unique index on
// (student_id, class_id, payment_month) backs up the duplicate check in
// the billing service against concurrent submissions.
type Payments struct {
	DB *sql.DB
}

const paymentColumns = `id, student_id, class_id, amount, payment_date, payment_month, payment_method, is_late, notes, created_at, updated_at`

func (p *Payments) FindByID(id string) (*models.Payment, error) {
	row := p.DB.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	return scanPayment(row)
}

func (p *Payments) FindByStudentClassMonth(studentID, classID string, month models.Month) (*models.Payment, error) {
	row := p.DB.QueryRow(`
		SELECT `+paymentColumns+` FROM payments
		WHERE student_id = $1 AND class_id = $2 AND payment_month = $3`,
		studentID, classID, month)
	return scanPayment(row)
}

func (p *Payments) FindByStudent(studentID string) ([]*models.Payment, error) {
	return p.list(`SELECT `+paymentColumns+` FROM payments WHERE student_id = $1 ORDER BY payment_month DESC, payment_date DESC`, studentID)
}

func (p *Payments) FindByClass(classID string) ([]*models.Payment, error) {
	return p.list(`SELECT `+paymentColumns+` FROM payments WHERE class_id = $1 ORDER BY payment_month DESC, payment_date DESC`, classID)
}

func (p *Payments) FindByMonth(month models.Month) ([]*models.Payment, error) {
	return p.list(`SELECT `+paymentColumns+` FROM payments WHERE payment_month = $1 ORDER BY payment_date`, month)
}

func (p *Payments) FindByClassAndMonth(classID string, month models.Month) ([]*models.Payment, error) {
	return p.list(`SELECT `+paymentColumns+` FROM payments WHERE class_id = $1 AND payment_month = $2 ORDER BY payment_date`, classID, month)
}

func (p *Payments) FindLateByMonth(month models.Month) ([]*models.Payment, error) {
	return p.list(`SELECT `+paymentColumns+` FROM payments WHERE payment_month = $1 AND is_late ORDER BY payment_date`, month)
}

func (p *Payments) FindAll() ([]*models.Payment, error) {
	return p.list(`SELECT ` + paymentColumns + ` FROM payments ORDER BY payment_month DESC, payment_date DESC`)
}

func (p *Payments) Save(payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, student_id, class_id, amount, payment_date, payment_month, payment_method, is_late, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			amount = EXCLUDED.amount,
			payment_date = EXCLUDED.payment_date,
			payment_method = EXCLUDED.payment_method,
			is_late = EXCLUDED.is_late,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING created_at, updated_at`
	return p.DB.QueryRow(query,
		payment.ID, payment.StudentID, payment.ClassID, payment.Amount,
		payment.PaymentDate, payment.PaymentMonth, string(payment.PaymentMethod),
		payment.IsLate, payment.Notes,
	).Scan(&payment.CreatedAt, &payment.UpdatedAt)
}

// SaveAll inserts the payments in one transaction so a multi-class
// allocation is stored completely or not at all.
func (p *Payments) SaveAll(payments []*models.Payment) error {
	tx, err := p.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO payments (id, student_id, class_id, amount, payment_date, payment_month, payment_method, is_late, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`
	for _, payment := range payments {
		err := tx.QueryRow(query,
			payment.ID, payment.StudentID, payment.ClassID, payment.Amount,
			payment.PaymentDate, payment.PaymentMonth, string(payment.PaymentMethod),
			payment.IsLate, payment.Notes,
		).Scan(&payment.CreatedAt, &payment.UpdatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (p *Payments) Delete(id string) error {
	_, err := p.DB.Exec(`DELETE FROM payments WHERE id = $1`, id)
	return err
}

func (p *Payments) list(query string, args ...interface{}) ([]*models.Payment, error) {
	rows, err := p.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		var method string
		err := rows.Scan(
			&payment.ID, &payment.StudentID, &payment.ClassID, &payment.Amount,
			&payment.PaymentDate, &payment.PaymentMonth, &method,
			&payment.IsLate, &payment.Notes, &payment.CreatedAt, &payment.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		payment.PaymentMethod = models.PaymentMethod(method)
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func scanPayment(row *sql.Row) (*models.Payment, error) {
	payment := &models.Payment{}
	var method string
	err := row.Scan(
		&payment.ID, &payment.StudentID, &payment.ClassID, &payment.Amount,
		&payment.PaymentDate, &payment.PaymentMonth, &method,
		&payment.IsLate, &payment.Notes, &payment.CreatedAt, &payment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	payment.PaymentMethod = models.PaymentMethod(method)
	return payment, nil
}
