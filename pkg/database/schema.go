package database

import (
	"context"
	"fmt"
)

// schemaStatements bootstraps the tables on startup. The partial unique
// index on (facility_id, date, start_time) is the serialization point for
// concurrent bookings: the application-level conflict check is a fast path,
// the index is the correctness backstop.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS facilities (
		id UUID PRIMARY KEY,
		owner_id UUID NOT NULL,
		name TEXT NOT NULL,
		sport_type TEXT NOT NULL DEFAULT '',
		price_per_hour NUMERIC(10,2) NOT NULL CHECK (price_per_hour >= 0),
		opening_time TEXT NOT NULL,
		closing_time TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id UUID PRIMARY KEY,
		reference TEXT NOT NULL,
		facility_id UUID NOT NULL REFERENCES facilities(id),
		renter_id UUID NOT NULL,
		date DATE NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		duration_hours NUMERIC(4,2) NOT NULL CHECK (duration_hours >= 1),
		total_amount NUMERIC(10,2) NOT NULL CHECK (total_amount >= 0),
		status TEXT NOT NULL DEFAULT 'confirmed',
		contact_number TEXT NOT NULL DEFAULT '0000000000',
		notes TEXT NOT NULL DEFAULT '',
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_reservations_slot
		ON reservations (facility_id, date, start_time)
		WHERE status <> 'cancelled'`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_facility_date
		ON reservations (facility_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_expires_at
		ON reservations (expires_at)`,
}

// InitSchema creates the tables and indexes if they do not exist yet.
func InitSchema(ctx context.Context, db PgxIface) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
