package sqlite

import (
	"context"
	"time"

	"medication-reminder/internal/domain/history"
	"medication-reminder/internal/domain/medications"

	"gorm.io/gorm"
)

type HistoryRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Create(ctx context.Context, e history.Entry) error {
	return r.db.WithContext(ctx).Create(&historyRow{
		ID:           e.ID,
		MedicationID: e.MedicationID,
		Status:       string(e.Status),
		RecordedAtNs: e.RecordedAt.UnixNano(),
	}).Error
}

type dayRow struct {
	ID           string `gorm:"column:id"`
	MedicationID string `gorm:"column:medication_id"`
	Status       string `gorm:"column:status"`
	RecordedAtNs int64  `gorm:"column:recorded_at_ns"`
	Name         string `gorm:"column:name"`
	Dosage       string `gorm:"column:dosage"`
	TimeOfDay    string `gorm:"column:time_of_day"`
}

func (r *HistoryRepo) ListByElderBetween(ctx context.Context, elderID string, from, to time.Time) ([]history.DayEntry, error) {
	var rows []dayRow
	if err := r.db.WithContext(ctx).
		Table("history AS h").
		Select("h.id, h.medication_id, h.status, h.recorded_at_ns, m.name, m.dosage, m.time_of_day").
		Joins("JOIN medications m ON m.id = h.medication_id").
		Where("m.elder_id = ? AND h.recorded_at_ns >= ? AND h.recorded_at_ns < ?", elderID, from.UnixNano(), to.UnixNano()).
		Order("h.recorded_at_ns DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]history.DayEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, history.DayEntry{
			Entry: history.Entry{
				ID:           row.ID,
				MedicationID: row.MedicationID,
				Status:       history.Status(row.Status),
				RecordedAt:   time.Unix(0, row.RecordedAtNs).UTC(),
			},
			MedicationName: row.Name,
			Dosage:         row.Dosage,
			Time:           medications.TimeOfDay(row.TimeOfDay),
		})
	}
	return out, nil
}

func (r *HistoryRepo) ListByMedication(ctx context.Context, medicationID string) ([]history.Entry, error) {
	var rows []historyRow
	if err := r.db.WithContext(ctx).
		Where("medication_id = ?", medicationID).
		Order("recorded_at_ns DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]history.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, history.Entry{
			ID:           row.ID,
			MedicationID: row.MedicationID,
			Status:       history.Status(row.Status),
			RecordedAt:   time.Unix(0, row.RecordedAtNs).UTC(),
		})
	}
	return out, nil
}

var _ history.Repository = (*HistoryRepo)(nil)
