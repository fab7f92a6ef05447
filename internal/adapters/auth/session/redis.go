package session

import (
	"context"
	"fmt"
	"time"

	"medication-reminder/internal/platform/logger"
	"medication-reminder/internal/ports/auth"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

const revokedKeyPrefix = "medremind:revoked:"

// RedisClient es el subconjunto de *redis.Client que usamos (permite mocks en tests).
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisRevocations comparte la lista de revocados entre réplicas.
// Todas las llamadas pasan por un circuit breaker para no colgar requests si Redis cae.
type RedisRevocations struct {
	client RedisClient
	cb     *gobreaker.CircuitBreaker
	now    func() time.Time
}

var _ auth.Revoker = (*RedisRevocations)(nil)

func NewRedisRevocations(client RedisClient, cb *gobreaker.CircuitBreaker) *RedisRevocations {
	if cb == nil {
		cb = NewCircuitBreaker("Redis-Sessions", nil)
	}
	return &RedisRevocations{client: client, cb: cb, now: time.Now}
}

// NewCircuitBreaker abre el circuito tras 3 fallos consecutivos.
func NewCircuitBreaker(name string, log logger.Logger) *gobreaker.CircuitBreaker {
	if log == nil {
		log = logger.Nop()
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
}

func (r *RedisRevocations) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if until.IsZero() {
		ttl = 0 // sin expiración conocida: persiste
	} else if ttl <= 0 {
		return nil // ya expiró, nada que revocar
	}

	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("redis revoke: %w", err)
	}
	return nil
}

func (r *RedisRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	res, err := r.cb.Execute(func() (interface{}, error) {
		return r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	})
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	n, _ := res.(int64)
	return n > 0, nil
}

func (r *RedisRevocations) Ping(ctx context.Context) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.client.Ping(ctx).Err()
	})
	return err
}
