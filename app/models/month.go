package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Month is a calendar month, the unit tuition is charged in. It travels
// as "YYYY-MM" over the API and is stored as the first day of the month
// in the database.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month a date falls in.
func MonthOf(date time.Time) Month {
	return Month{Year: date.Year(), Month: date.Month()}
}

// ParseMonth parses the "YYYY-MM" wire format.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return MonthOf(t), nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// FirstDay is the first day of the month at midnight UTC, the canonical
// database representation.
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m Month) After(other Month) bool {
	return other.Before(m)
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer; months are stored as DATE columns.
func (m Month) Value() (driver.Value, error) {
	return m.FirstDay(), nil
}

// Scan implements sql.Scanner.
func (m *Month) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*m = MonthOf(v)
		return nil
	case []byte:
		t, err := time.Parse("2006-01-02", string(v))
		if err != nil {
			return err
		}
		*m = MonthOf(t)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Month", src)
	}
}
