package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// history no tiene FK a medications: borrar un medicamento deja su historial.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS caregivers (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS elders (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		login_code    TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		caregiver_id  TEXT NOT NULL UNIQUE REFERENCES caregivers(id),
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS medications (
		id          TEXT PRIMARY KEY,
		elder_id    TEXT NOT NULL REFERENCES elders(id),
		name        TEXT NOT NULL,
		dosage      TEXT NOT NULL,
		time_of_day TEXT NOT NULL,
		photo_url   TEXT NOT NULL DEFAULT '',
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS medications_elder_time_idx ON medications (elder_id, time_of_day)`,
	`CREATE TABLE IF NOT EXISTS history (
		id            TEXT PRIMARY KEY,
		medication_id TEXT NOT NULL,
		status        TEXT NOT NULL CHECK (status IN ('on-time', 'late', 'missed')),
		recorded_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS history_medication_recorded_idx ON history (medication_id, recorded_at DESC)`,
}

// Migrate aplica el esquema sentencia por sentencia. Es idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i+1, err)
		}
	}
	return nil
}
