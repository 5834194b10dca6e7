package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/divyde/divyde/internal/usecase"
)

const idempotencyPrefix = "idempotency:"

// IdempotencyStore implements usecase.IdempotencyStore on Redis. It stores
// whatever envelope the HTTP layer hands it; while the first request with a
// key is still running, the key holds usecase.IdempotencyInFlight as a claim
// so concurrent duplicates do not re-run the handler.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: idempotencyPrefix,
	}
}

func (s *IdempotencyStore) key(key string) string {
	return s.prefix + key
}

// CheckAndSet reports whether the key is already present, returning the
// stored value if so. An absent key is claimed: with the in-flight marker
// when response is nil, otherwise with the response itself.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	existing, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == nil {
		return true, existing, nil
	}
	if !errors.Is(err, redis.Nil) {
		return false, nil, err
	}

	if response != nil {
		return false, nil, s.client.Set(ctx, s.key(key), response, ttl).Err()
	}

	claimed, err := s.client.SetNX(ctx, s.key(key), usecase.IdempotencyInFlight, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if !claimed {
		// Lost the race; surface whatever the winner stored.
		existing, err := s.client.Get(ctx, s.key(key)).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return false, nil, err
		}
		return true, existing, nil
	}

	return false, nil, nil
}

// Update replaces the claim under key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(key), response, ttl).Err()
}
