package models

import "time"

type Student struct {
	ID        string     `json:"id"`
	FirstName string     `json:"first_name" validate:"required"`
	LastName  string     `json:"last_name" validate:"required"`
	Phone     string     `json:"phone" validate:"required"`
	Email     *string    `json:"email,omitempty" validate:"omitempty,email"`
	Address   *string    `json:"address,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
