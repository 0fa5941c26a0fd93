package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema if it does not exist yet. The two
// unique indexes double as race backstops for the check-then-insert
// sequences in the services: concurrent duplicate submissions hit the
// constraint even if both pass the service-level check.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT,
			address TEXT,
			birth_date DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS teachers (
			id UUID PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT,
			address TEXT,
			is_studio_owner BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS dance_classes (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC(10,2) NOT NULL CHECK (price > 0),
			duration_hours DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS class_schedules (
			class_id UUID NOT NULL REFERENCES dance_classes(id) ON DELETE CASCADE,
			day_of_week TEXT NOT NULL,
			start_hour INT NOT NULL CHECK (start_hour BETWEEN 0 AND 23),
			start_minute INT NOT NULL CHECK (start_minute BETWEEN 0 AND 59),
			PRIMARY KEY (class_id, day_of_week, start_hour, start_minute)
		)`,
		`CREATE TABLE IF NOT EXISTS class_teachers (
			class_id UUID NOT NULL REFERENCES dance_classes(id) ON DELETE CASCADE,
			teacher_id UUID NOT NULL REFERENCES teachers(id) ON DELETE CASCADE,
			PRIMARY KEY (class_id, teacher_id)
		)`,
		`CREATE TABLE IF NOT EXISTS enrollments (
			id UUID PRIMARY KEY,
			student_id UUID NOT NULL REFERENCES students(id),
			class_id UUID NOT NULL REFERENCES dance_classes(id),
			enrollment_date DATE NOT NULL,
			notes TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		// One active enrollment per (student, class); historical rows
		// are unconstrained.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_enrollments_active_pair
			ON enrollments (student_id, class_id) WHERE is_active`,
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY,
			student_id UUID NOT NULL REFERENCES students(id),
			class_id UUID NOT NULL REFERENCES dance_classes(id),
			amount NUMERIC(10,2) NOT NULL CHECK (amount > 0),
			payment_date DATE NOT NULL,
			payment_month DATE NOT NULL,
			payment_method TEXT NOT NULL,
			is_late BOOLEAN NOT NULL DEFAULT false,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		// One payment per (student, class, month); duplicates are
		// rejected, never merged.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_student_class_month
			ON payments (student_id, class_id, payment_month)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_month ON payments (payment_month)`,
		`CREATE INDEX IF NOT EXISTS idx_enrollments_student ON enrollments (student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_enrollments_class ON enrollments (class_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
