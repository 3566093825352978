package shared

import (
	"context"
	"time"
)

// StoredResponse is the recorded outcome of a completed mutation, replayed
// verbatim when the same idempotency key is presented again.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore deduplicates mutating requests by client-supplied key.
// Claim must be atomic (insert-or-fetch) so concurrent duplicate
// submissions cannot both execute the mutation.
type IdempotencyStore interface {
	// Claim atomically reserves a key with a TTL.
	// Returns true if the key was newly claimed, false if it already exists.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Get returns the stored response for a key, or nil when the key is
	// absent or claimed but not yet completed.
	Get(ctx context.Context, key string) (*StoredResponse, error)

	// Save records the response for a claimed key.
	Save(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error

	// Release drops a claim so the key may be retried (failed mutations).
	Release(ctx context.Context, key string) error

	// Close releases store resources.
	Close() error
}

// IdempotencyConfig holds configuration for the idempotency guard
type IdempotencyConfig struct {
	// TTL is how long a completed result is replayable. Default: 24 hours.
	TTL time.Duration
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{TTL: 24 * time.Hour}
}
