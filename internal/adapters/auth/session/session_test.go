package session

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"medication-reminder/internal/platform/logger"
	"medication-reminder/internal/ports/auth"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueVerifyRoundTrip(t *testing.T) {
	m, err := NewManager("s3cret", time.Hour, nil)
	require.NoError(t, err)

	tok, err := m.Issue(context.Background(), auth.Identity{
		Subject: "cg-1",
		Role:    auth.RoleCaregiver,
		ElderID: "el-1",
		Name:    "Ana",
	})
	require.NoError(t, err)

	claims, err := m.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "cg-1", claims.Subject)
	assert.Equal(t, auth.RoleCaregiver, claims.Role)
	assert.Equal(t, "el-1", claims.ElderID)
	assert.Equal(t, "Ana", claims.Name)
	assert.NotEmpty(t, claims.TokenID)
}

func TestManager_RejectsForeignSignatureAndExpired(t *testing.T) {
	a, _ := NewManager("key-a", time.Hour, nil)
	b, _ := NewManager("key-b", time.Hour, nil)

	tok, err := a.Issue(context.Background(), auth.Identity{Subject: "el-1", Role: auth.RoleElder, ElderID: "el-1"})
	require.NoError(t, err)

	_, err = b.Verify(context.Background(), tok)
	require.ErrorIs(t, err, ErrTokenInvalid)

	a.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = a.Verify(context.Background(), tok)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = a.Verify(context.Background(), "  ")
	require.ErrorIs(t, err, ErrTokenEmpty)
}

func TestManager_RevokeInvalidatesToken(t *testing.T) {
	m, _ := NewManager("k", time.Hour, nil)
	tok, _ := m.Issue(context.Background(), auth.Identity{Subject: "el-1", Role: auth.RoleElder, ElderID: "el-1"})

	claims, err := m.Verify(context.Background(), tok)
	require.NoError(t, err)
	require.NoError(t, m.Revoke(context.Background(), claims))

	_, err = m.Verify(context.Background(), tok)
	require.ErrorIs(t, err, ErrTokenRevoked)
}

func TestMemoryRevocations_ExpireNaturally(t *testing.T) {
	r := NewMemoryRevocations()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	require.NoError(t, r.Revoke(context.Background(), "jti-1", now.Add(time.Minute)))
	revoked, _ := r.IsRevoked(context.Background(), "jti-1")
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = r.IsRevoked(context.Background(), "jti-1")
	assert.False(t, revoked)
}

// -------------------------
// Redis mock (solo los comandos que usa RedisRevocations)
// -------------------------

type mockRedis struct {
	mu   sync.Mutex
	keys map[string]time.Duration
	err  error
}

func newMockRedis() *mockRedis { return &mockRedis{keys: map[string]time.Duration{}} }

func (m *mockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewStatusCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	m.keys[key] = expiration
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedis) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewIntCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	var n int64
	for _, k := range keys {
		if _, ok := m.keys[k]; ok {
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func (m *mockRedis) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal("PONG")
	return cmd
}

func TestRedisRevocations_SetWithTTLAndExists(t *testing.T) {
	rc := newMockRedis()
	r := NewRedisRevocations(rc, nil)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	require.NoError(t, r.Revoke(context.Background(), "jti-9", now.Add(30*time.Minute)))
	assert.Equal(t, 30*time.Minute, rc.keys[revokedKeyPrefix+"jti-9"])

	revoked, err := r.IsRevoked(context.Background(), "jti-9")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsRevoked(context.Background(), "other")
	require.NoError(t, err)
	assert.False(t, revoked)

	// ya expirado: no se escribe nada
	require.NoError(t, r.Revoke(context.Background(), "old", now.Add(-time.Second)))
	_, ok := rc.keys[revokedKeyPrefix+"old"]
	assert.False(t, ok)
}

func TestRedisRevocations_BreakerOpensAfterFailures(t *testing.T) {
	rc := newMockRedis()
	rc.err = errors.New("connection refused")
	var out bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Out: &out})
	r := NewRedisRevocations(rc, NewCircuitBreaker("test", log))

	for i := 0; i < 3; i++ {
		_, err := r.IsRevoked(context.Background(), "x")
		require.Error(t, err)
	}

	// circuito abierto: falla rápido aunque Redis se recupere
	rc.err = nil
	err := r.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")

	// el cambio de estado queda en el logger estructurado
	assert.Contains(t, out.String(), "circuit breaker state change")
	assert.Contains(t, out.String(), `"breaker":"test"`)
	assert.Contains(t, out.String(), `"to":"open"`)
}
