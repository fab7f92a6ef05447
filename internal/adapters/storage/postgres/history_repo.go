package postgres

import (
	"context"
	"database/sql"
	"time"

	"medication-reminder/internal/domain/history"
	"medication-reminder/internal/domain/medications"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Create(ctx context.Context, e history.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO history (id, medication_id, status, recorded_at)
		VALUES ($1,$2,$3,$4)
	`, e.ID, e.MedicationID, string(e.Status), e.RecordedAt)
	return err
}

// ListByElderBetween usa INNER JOIN: las entradas de medicamentos borrados quedan fuera.
func (r *HistoryRepo) ListByElderBetween(ctx context.Context, elderID string, from, to time.Time) ([]history.DayEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			h.id, h.medication_id, h.status, h.recorded_at,
			m.name, m.dosage, m.time_of_day
		FROM history h
		JOIN medications m ON m.id = h.medication_id
		WHERE m.elder_id = $1
		  AND h.recorded_at >= $2
		  AND h.recorded_at < $3
		ORDER BY h.recorded_at DESC
	`, elderID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.DayEntry, 0)
	for rows.Next() {
		var d history.DayEntry
		var status, tod string
		if err := rows.Scan(
			&d.ID,
			&d.MedicationID,
			&status,
			&d.RecordedAt,
			&d.MedicationName,
			&d.Dosage,
			&tod,
		); err != nil {
			return nil, err
		}
		d.Status = history.Status(status)
		d.Time = medications.TimeOfDay(tod)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *HistoryRepo) ListByMedication(ctx context.Context, medicationID string) ([]history.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, medication_id, status, recorded_at
		FROM history
		WHERE medication_id = $1
		ORDER BY recorded_at DESC
	`, medicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.Entry, 0)
	for rows.Next() {
		var e history.Entry
		var status string
		if err := rows.Scan(&e.ID, &e.MedicationID, &status, &e.RecordedAt); err != nil {
			return nil, err
		}
		e.Status = history.Status(status)
		out = append(out, e)
	}
	return out, rows.Err()
}
