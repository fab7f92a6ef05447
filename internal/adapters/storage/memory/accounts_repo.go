package memory

import (
	"context"
	"errors"
	"sync"

	"medication-reminder/internal/domain/accounts"
)

type accountsRepo struct {
	mu         sync.RWMutex
	caregivers map[string]accounts.Caregiver
	elders     map[string]accounts.Elder

	byEmail     map[string]string // email -> caregiver id
	byLoginCode map[string]string // login code -> elder id
	byCaregiver map[string]string // caregiver id -> elder id
}

func NewAccountsRepo() accounts.Repository {
	return &accountsRepo{
		caregivers:  make(map[string]accounts.Caregiver),
		elders:      make(map[string]accounts.Elder),
		byEmail:     make(map[string]string),
		byLoginCode: make(map[string]string),
		byCaregiver: make(map[string]string),
	}
}

// CreateAccount valida ambas unicidades antes de escribir: o entran los dos o ninguno.
func (r *accountsRepo) CreateAccount(ctx context.Context, c accounts.Caregiver, e accounts.Elder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" || e.ID == "" {
		return errors.New("caregiver and elder ids required")
	}
	if _, exists := r.byEmail[c.Email]; exists {
		return accounts.ErrConflict
	}
	if _, exists := r.byLoginCode[e.LoginCode]; exists {
		return accounts.ErrConflict
	}
	if _, exists := r.byCaregiver[e.CaregiverID]; exists {
		return accounts.ErrConflict
	}

	r.caregivers[c.ID] = c
	r.elders[e.ID] = e
	r.byEmail[c.Email] = c.ID
	r.byLoginCode[e.LoginCode] = e.ID
	r.byCaregiver[e.CaregiverID] = e.ID
	return nil
}

func (r *accountsRepo) GetCaregiverByEmail(ctx context.Context, email string) (accounts.Caregiver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return accounts.Caregiver{}, accounts.ErrNotFound
	}
	return r.caregivers[id], nil
}

func (r *accountsRepo) GetElderByCaregiver(ctx context.Context, caregiverID string) (accounts.Elder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCaregiver[caregiverID]
	if !ok {
		return accounts.Elder{}, accounts.ErrNotFound
	}
	return r.elders[id], nil
}

func (r *accountsRepo) GetElderByLoginCode(ctx context.Context, code string) (accounts.Elder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLoginCode[code]
	if !ok {
		return accounts.Elder{}, accounts.ErrNotFound
	}
	return r.elders[id], nil
}

func (r *accountsRepo) GetElderByID(ctx context.Context, id string) (accounts.Elder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.elders[id]
	if !ok {
		return accounts.Elder{}, accounts.ErrNotFound
	}
	return e, nil
}
