package contract

import (
	"context"

	"github.com/google/uuid"
)

// SessionGuard serializes commands against one survey session. Acquire
// returns false when another command already holds the session; callers then
// answer 409 rather than queueing.
type SessionGuard interface {
	Acquire(ctx context.Context, sessionId uuid.UUID) (bool, error)
	Release(ctx context.Context, sessionId uuid.UUID) error
}
