package session

import (
	"context"
	"sync"
	"time"

	"medication-reminder/internal/ports/auth"
)

// MemoryRevocations guarda los jti revocados en memoria del proceso.
type MemoryRevocations struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

var _ auth.Revoker = (*MemoryRevocations)(nil)

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{
		until: make(map[string]time.Time),
		now:   time.Now,
	}
}

func (r *MemoryRevocations) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.purgeLocked()
	r.until[tokenID] = until
	return nil
}

func (r *MemoryRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.until[tokenID]
	if !ok {
		return false, nil
	}
	if !exp.IsZero() && !r.now().Before(exp) {
		delete(r.until, tokenID)
		return false, nil
	}
	return true, nil
}

// purgeLocked elimina entradas vencidas para que el mapa no crezca sin límite.
func (r *MemoryRevocations) purgeLocked() {
	now := r.now()
	for id, exp := range r.until {
		if !exp.IsZero() && !now.Before(exp) {
			delete(r.until, id)
		}
	}
}
