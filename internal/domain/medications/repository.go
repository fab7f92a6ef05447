package medications

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)
	// ListByElder devuelve ordenado por Time ascendente.
	ListByElder(ctx context.Context, elderID string) ([]Medication, error)
	Update(ctx context.Context, m Medication) error
	// Delete no toca el historial de adherencia: las entradas quedan huérfanas.
	Delete(ctx context.Context, id string) error
}
