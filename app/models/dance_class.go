package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DanceClass is a class offered by the studio. Price is the fixed monthly
// tuition and the baseline due amount per month.
type DanceClass struct {
	ID            string           `json:"id"`
	Name          string           `json:"name" validate:"required"`
	Description   *string          `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price" validate:"required"`
	DurationHours float64          `json:"duration_hours" validate:"gt=0"`
	Schedules     []*ClassSchedule `json:"schedules,omitempty"`
	Teachers      []*Teacher       `json:"teachers,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ClassSchedule is a weekly slot a class runs in.
type ClassSchedule struct {
	DayOfWeek   DayOfWeek `json:"day_of_week" validate:"required"`
	StartHour   int       `json:"start_hour" validate:"min=0,max=23"`
	StartMinute int       `json:"start_minute" validate:"min=0,max=59"`
}

// TimeString formats the slot start as HH:MM.
func (s *ClassSchedule) TimeString() string {
	return fmt.Sprintf("%02d:%02d", s.StartHour, s.StartMinute)
}
