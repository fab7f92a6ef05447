package history

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e Entry) error
	// ListByElderBetween une con medicamentos: entradas huérfanas no aparecen.
	// Intervalo semiabierto [from, to), más recientes primero.
	ListByElderBetween(ctx context.Context, elderID string, from, to time.Time) ([]DayEntry, error)
	// ListByMedication no exige que el medicamento exista todavía.
	ListByMedication(ctx context.Context, medicationID string) ([]Entry, error)
}
