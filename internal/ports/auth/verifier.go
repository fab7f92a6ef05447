package auth

import (
	"context"
	"time"
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma un token de sesión para una identidad ya autenticada.
type TokenIssuer interface {
	Issue(ctx context.Context, id Identity) (string, error)
}

// Revoker guarda los tokens invalidados por logout hasta que expiran.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
