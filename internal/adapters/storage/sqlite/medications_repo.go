package sqlite

import (
	"context"
	"errors"

	"medication-reminder/internal/domain/medications"

	"gorm.io/gorm"
)

type MedicationsRepo struct {
	db *gorm.DB
}

func NewMedicationsRepo(db *gorm.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	row := toMedicationRow(m)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	res := r.db.WithContext(ctx).
		Model(&medicationRow{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"name":        m.Name,
			"dosage":      m.Dosage,
			"time_of_day": string(m.Time),
			"photo_url":   m.PhotoURL,
			"notes":       m.Notes,
			"updated_at":  m.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return medications.ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	var row medicationRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return medications.Medication{}, medications.ErrNotFound
		}
		return medications.Medication{}, err
	}
	return row.toDomain(), nil
}

func (r *MedicationsRepo) ListByElder(ctx context.Context, elderID string) ([]medications.Medication, error) {
	var rows []medicationRow
	if err := r.db.WithContext(ctx).
		Where("elder_id = ?", elderID).
		Order("time_of_day ASC").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]medications.Medication, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&medicationRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return medications.ErrNotFound
	}
	return nil
}

func toMedicationRow(m medications.Medication) medicationRow {
	return medicationRow{
		ID:        m.ID,
		ElderID:   m.ElderID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		TimeOfDay: string(m.Time),
		PhotoURL:  m.PhotoURL,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (row medicationRow) toDomain() medications.Medication {
	return medications.Medication{
		ID:        row.ID,
		ElderID:   row.ElderID,
		Name:      row.Name,
		Dosage:    row.Dosage,
		Time:      medications.TimeOfDay(row.TimeOfDay),
		PhotoURL:  row.PhotoURL,
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
