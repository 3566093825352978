package cache

import (
	"context"
	"time"

	"github.com/costledger/backend/internal/domain/shared"
	gocache "github.com/patrickmn/go-cache"
)

// pending marks a claimed key whose mutation has not completed yet
type pending struct{}

// InMemoryIdempotencyStore implements IdempotencyStore on a TTL cache.
// Suitable for single-instance deployments and testing; state is not
// shared across processes.
type InMemoryIdempotencyStore struct {
	entries *gocache.Cache
}

// NewInMemoryIdempotencyStore creates a new in-memory idempotency store
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{
		entries: gocache.New(shared.DefaultIdempotencyConfig().TTL, 10*time.Minute),
	}
}

// Claim atomically claims the key for the duration of the request.
// Returns false when the key is already claimed or resolved.
func (s *InMemoryIdempotencyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	// Add fails when the key exists, which makes the claim atomic
	if err := s.entries.Add(key, pending{}, ttl); err != nil {
		return false, nil
	}
	return true, nil
}

// Get returns the stored response for the key, or nil while the key is
// absent or still in flight
func (s *InMemoryIdempotencyStore) Get(ctx context.Context, key string) (*shared.StoredResponse, error) {
	value, found := s.entries.Get(key)
	if !found {
		return nil, nil
	}
	resp, ok := value.(shared.StoredResponse)
	if !ok {
		return nil, nil
	}
	return &resp, nil
}

// Save stores the response to replay for later requests with the same key
func (s *InMemoryIdempotencyStore) Save(ctx context.Context, key string, resp shared.StoredResponse, ttl time.Duration) error {
	s.entries.Set(key, resp, ttl)
	return nil
}

// Release drops the claim so the key can be retried
func (s *InMemoryIdempotencyStore) Release(ctx context.Context, key string) error {
	s.entries.Delete(key)
	return nil
}

// Close releases resources. The TTL cache stops its janitor on GC, so
// there is nothing to do here.
func (s *InMemoryIdempotencyStore) Close() error {
	return nil
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *InMemoryIdempotencyStore) Size() int {
	return s.entries.ItemCount()
}

// Ensure InMemoryIdempotencyStore implements IdempotencyStore
var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
