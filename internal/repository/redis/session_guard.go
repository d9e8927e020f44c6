package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"survey-sensei-be/internal/repository/contract"
)

// SessionGuard is the distributed guard backend for multi-instance
// deployments. SET NX gives the same test-and-set semantics as the in-memory
// guard, shared across processes.
type SessionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

var _ contract.SessionGuard = &SessionGuard{}

func NewSessionGuard(client *redis.Client, ttl time.Duration) *SessionGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SessionGuard{
		client: client,
		ttl:    ttl,
	}
}

func guardKey(sessionId uuid.UUID) string {
	return fmt.Sprintf("survey:guard:%s", sessionId)
}

func (g *SessionGuard) Acquire(ctx context.Context, sessionId uuid.UUID) (bool, error) {
	ok, err := g.client.SetNX(ctx, guardKey(sessionId), 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire session guard: %w", err)
	}
	return ok, nil
}

func (g *SessionGuard) Release(ctx context.Context, sessionId uuid.UUID) error {
	if err := g.client.Del(ctx, guardKey(sessionId)).Err(); err != nil {
		return fmt.Errorf("release session guard: %w", err)
	}
	return nil
}
