package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Teacher struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name" validate:"required"`
	LastName      string    `json:"last_name" validate:"required"`
	Phone         string    `json:"phone" validate:"required"`
	Email         *string   `json:"email,omitempty" validate:"omitempty,email"`
	Address       *string   `json:"address,omitempty"`
	IsStudioOwner bool      `json:"is_studio_owner"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

// SharePercentage is the teacher's cut of class revenue. The studio owner
// keeps 100%, every other teacher splits revenue 50/50 with the studio.
// The share is derived, never stored.
func (t *Teacher) SharePercentage() decimal.Decimal {
	if t.IsStudioOwner {
		return decimal.NewFromInt(1)
	}
	return decimal.New(5, -1)
}
