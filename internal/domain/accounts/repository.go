package accounts

import "context"

// Repository persiste cuidadores e idosos.
// Los adapters traducen sus errores a ErrNotFound / ErrConflict.
type Repository interface {
	// CreateAccount inserta ambos registros de forma atómica: o los dos o ninguno.
	CreateAccount(ctx context.Context, c Caregiver, e Elder) error

	GetCaregiverByEmail(ctx context.Context, email string) (Caregiver, error)
	GetElderByCaregiver(ctx context.Context, caregiverID string) (Elder, error)
	GetElderByLoginCode(ctx context.Context, code string) (Elder, error)
	GetElderByID(ctx context.Context, id string) (Elder, error)
}
