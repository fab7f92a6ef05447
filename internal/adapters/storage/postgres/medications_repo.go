package postgres

import (
	"context"
	"database/sql"
	"errors"

	"medication-reminder/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

const medicationColumns = `
	id, elder_id,
	name, dosage, time_of_day,
	photo_url, notes,
	created_at, updated_at`

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (`+medicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		m.ID,
		m.ElderID,
		m.Name,
		m.Dosage,
		string(m.Time),
		m.PhotoURL,
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET
			name = $2,
			dosage = $3,
			time_of_day = $4,
			photo_url = $5,
			notes = $6,
			updated_at = $7
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Dosage,
		string(m.Time),
		m.PhotoURL,
		m.Notes,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+medicationColumns+` FROM medications WHERE id = $1`, id)

	m, err := scanMedication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, err
}

func (r *MedicationsRepo) ListByElder(ctx context.Context, elderID string) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicationColumns+`
		FROM medications
		WHERE elder_id = $1
		ORDER BY time_of_day ASC, created_at ASC
	`, elderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMedication(s scanner) (medications.Medication, error) {
	var m medications.Medication
	var tod string
	if err := s.Scan(
		&m.ID,
		&m.ElderID,
		&m.Name,
		&m.Dosage,
		&tod,
		&m.PhotoURL,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medications.Medication{}, err
	}
	m.Time = medications.TimeOfDay(tod)
	return m, nil
}
