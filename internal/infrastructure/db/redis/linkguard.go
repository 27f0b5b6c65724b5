package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const linkGuardTTL = 24 * time.Hour

// LinkGuard provides the fast-path idempotency check against double-linking
// the same external account. The durable authority is the bank-link
// collection; the guard only short-circuits racing or repeated submissions.
// Key format: banklink:<user_id>:<account_id>
type LinkGuard struct {
	client *redis.Client
}

// NewLinkGuard creates a LinkGuard wrapping the given Redis client.
func NewLinkGuard(client *redis.Client) *LinkGuard {
	return &LinkGuard{client: client}
}

// IsLinked reports whether this user already linked this external account.
func (g *LinkGuard) IsLinked(ctx context.Context, userID, accountID string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(userID, accountID)).Result()
	if err != nil {
		return false, fmt.Errorf("link guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records a completed link (expires after linkGuardTTL).
func (g *LinkGuard) Mark(ctx context.Context, userID, accountID string) error {
	return g.client.Set(ctx, g.key(userID, accountID), "1", linkGuardTTL).Err()
}

func (g *LinkGuard) key(userID, accountID string) string {
	return fmt.Sprintf("banklink:%s:%s", userID, accountID)
}
