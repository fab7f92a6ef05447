package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"medication-reminder/internal/domain/history"
)

// historyRepo es append-only. No hay FK: las entradas sobreviven al medicamento.
type historyRepo struct {
	mu      sync.RWMutex
	entries []history.Entry
	meds    *MedicationsRepo
}

func NewHistoryRepo(meds *MedicationsRepo) history.Repository {
	return &historyRepo{meds: meds}
}

func (r *historyRepo) Create(ctx context.Context, e history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("history entry id required")
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *historyRepo) ListByElderBetween(ctx context.Context, elderID string, from, to time.Time) ([]history.DayEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]history.DayEntry, 0)
	for _, e := range r.entries {
		if e.RecordedAt.Before(from) || !e.RecordedAt.Before(to) {
			continue
		}
		if r.meds == nil {
			continue
		}
		m, ok := r.meds.lookup(e.MedicationID)
		if !ok || m.ElderID != elderID {
			continue
		}
		out = append(out, history.DayEntry{
			Entry:          e,
			MedicationName: m.Name,
			Dosage:         m.Dosage,
			Time:           m.Time,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	return out, nil
}

func (r *historyRepo) ListByMedication(ctx context.Context, medicationID string) ([]history.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]history.Entry, 0)
	for _, e := range r.entries {
		if e.MedicationID == medicationID {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	return out, nil
}
