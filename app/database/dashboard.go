package database

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/TV3ntu/nova-crm-backend/app/models"
)

// DashboardCounts are the headline numbers on the back-office landing
// page.
type DashboardCounts struct {
	Students          int `json:"students"`
	Teachers          int `json:"teachers"`
	Classes           int `json:"classes"`
	ActiveEnrollments int `json:"active_enrollments"`
}

func GetDashboardCounts(db *sql.DB) (*DashboardCounts, error) {
	counts := &DashboardCounts{}
	err := db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM teachers),
			(SELECT COUNT(*) FROM dance_classes),
			(SELECT COUNT(*) FROM enrollments WHERE is_active)
	`).Scan(&counts.Students, &counts.Teachers, &counts.Classes, &counts.ActiveEnrollments)
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// MonthRevenue is one bar of the revenue chart.
type MonthRevenue struct {
	Month   models.Month    `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// GetRevenueByMonth returns per-month revenue for the last `months`
// months that have payments, oldest first.
func GetRevenueByMonth(db *sql.DB, months int) ([]*MonthRevenue, error) {
	rows, err := db.Query(`
		SELECT payment_month, SUM(amount)
		FROM payments
		GROUP BY payment_month
		ORDER BY payment_month DESC
		LIMIT $1`, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revenues []*MonthRevenue
	for rows.Next() {
		entry := &MonthRevenue{}
		if err := rows.Scan(&entry.Month, &entry.Revenue); err != nil {
			return nil, err
		}
		revenues = append(revenues, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse to chronological order for the chart.
	for i, j := 0, len(revenues)-1; i < j; i, j = i+1, j-1 {
		revenues[i], revenues[j] = revenues[j], revenues[i]
	}
	return revenues, nil
}

// ClassDistributionEntry is a class and its active student count.
type ClassDistributionEntry struct {
	ClassID   string `json:"class_id"`
	ClassName string `json:"class_name"`
	Students  int    `json:"students"`
}

func GetClassDistribution(db *sql.DB) ([]*ClassDistributionEntry, error) {
	rows, err := db.Query(`
		SELECT c.id, c.name, COUNT(e.id) FILTER (WHERE e.is_active)
		FROM dance_classes c
		LEFT JOIN enrollments e ON e.class_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*ClassDistributionEntry
	for rows.Next() {
		entry := &ClassDistributionEntry{}
		if err := rows.Scan(&entry.ClassID, &entry.ClassName, &entry.Students); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
