package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"medication-reminder/internal/domain/medications"
)

type MedicationsRepo struct {
	mu   sync.RWMutex
	byID map[string]medications.Medication
}

func NewMedicationsRepo() *MedicationsRepo {
	return &MedicationsRepo{
		byID: make(map[string]medications.Medication),
	}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medication already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[m.ID]; !exists {
		return medications.ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, nil
}

func (r *MedicationsRepo) ListByElder(ctx context.Context, elderID string) ([]medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Medication, 0)
	for _, m := range r.byID {
		if m.ElderID == elderID {
			out = append(out, m)
		}
	}

	// Time asc; a igual hora, created_at asc para que el orden sea estable
	sort.Slice(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return medications.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// lookup lo usa el repo de historial para el JOIN.
func (r *MedicationsRepo) lookup(id string) (medications.Medication, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	return m, ok
}
