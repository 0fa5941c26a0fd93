package database

import (
	"database/sql"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// GetUserByEmail looks up an active back-office user for login.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	err := db.QueryRow(`
		SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
		FROM users WHERE email = $1 AND is_active`, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, id string) (*models.User, error) {
	user := &models.User{}
	err := db.QueryRow(`
		SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
		FROM users WHERE id = $1`, id).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func CreateUser(db *sql.DB, user *models.User) error {
	return db.QueryRow(`
		INSERT INTO users (id, email, password, first_name, last_name, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING created_at, updated_at`,
		user.ID, user.Email, user.Password, user.FirstName, user.LastName,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func UpdateUserPassword(db *sql.DB, userID, hashedPassword string) error {
	_, err := db.Exec(`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, hashedPassword, userID)
	return err
}
