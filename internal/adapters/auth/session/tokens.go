package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-reminder/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "medication-reminder"

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenRevoked = errors.New("token has been revoked")
)

type tokenClaims struct {
	Role    string `json:"role"`
	ElderID string `json:"elder_id"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}

// Manager firma y verifica tokens de sesión HS256.
// Implementa auth.TokenIssuer y auth.AuthVerifier.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	revoker auth.Revoker
	now     func() time.Time
}

var (
	_ auth.TokenIssuer  = (*Manager)(nil)
	_ auth.AuthVerifier = (*Manager)(nil)
)

// NewManager crea un Manager. Si secret viene vacío se genera uno aleatorio:
// las sesiones no sobreviven a un reinicio, suficiente para dev.
func NewManager(secret string, ttl time.Duration, revoker auth.Revoker) (*Manager, error) {
	key := []byte(strings.TrimSpace(secret))
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("session: generate secret: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if revoker == nil {
		revoker = NewMemoryRevocations()
	}
	return &Manager{
		secret:  key,
		ttl:     ttl,
		revoker: revoker,
		now:     time.Now,
	}, nil
}

func (m *Manager) Issue(ctx context.Context, id auth.Identity) (string, error) {
	if strings.TrimSpace(id.Subject) == "" || id.Role == "" {
		return "", ErrTokenInvalid
	}

	now := m.now()
	claims := tokenClaims{
		Role:    string(id.Role),
		ElderID: id.ElderID,
		Name:    id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	revoked, err := m.revoker.IsRevoked(ctx, tc.ID)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("session: revocation lookup: %w", err)
	}
	if revoked {
		return auth.Claims{}, ErrTokenRevoked
	}

	return auth.Claims{
		TokenID:   tc.ID,
		Subject:   tc.Subject,
		Role:      auth.Role(tc.Role),
		ElderID:   tc.ElderID,
		Name:      tc.Name,
		ExpiresAt: tc.ExpiresAt.Time,
	}, nil
}

// Revoke invalida el token hasta su expiración natural (logout).
func (m *Manager) Revoke(ctx context.Context, claims auth.Claims) error {
	if strings.TrimSpace(claims.TokenID) == "" {
		return ErrTokenInvalid
	}
	return m.revoker.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

// Ping reporta el estado del almacén de revocaciones para /health/ready.
func (m *Manager) Ping(ctx context.Context) error {
	if p, ok := m.revoker.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
