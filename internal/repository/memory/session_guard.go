package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"survey-sensei-be/internal/repository/contract"
)

// SessionGuard is the single-process guard backend. A cache entry per session
// id marks it busy; entries expire so a crashed request cannot wedge a
// session forever.
type SessionGuard struct {
	cache *cache.Cache
	ttl   time.Duration
}

var _ contract.SessionGuard = &SessionGuard{}

func NewSessionGuard(ttl time.Duration) *SessionGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	c := cache.New(ttl, 2*ttl)
	return &SessionGuard{
		cache: c,
		ttl:   ttl,
	}
}

func (g *SessionGuard) Acquire(ctx context.Context, sessionId uuid.UUID) (bool, error) {
	// Add fails when the key already exists, which makes it an atomic
	// test-and-set for this process.
	err := g.cache.Add(sessionId.String(), struct{}{}, g.ttl)
	return err == nil, nil
}

func (g *SessionGuard) Release(ctx context.Context, sessionId uuid.UUID) error {
	g.cache.Delete(sessionId.String())
	return nil
}
