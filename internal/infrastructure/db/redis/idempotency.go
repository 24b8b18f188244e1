package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore maps client-supplied Idempotency-Key values to the job
// they created. It implements ports.IdempotencyStore.
// Key format: idempotency:job:<key>
type IdempotencyStore struct {
	client *redis.Client
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the job id stored for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	jobID, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return jobID, true, nil
}

// Remember stores jobID under key for ttl. An existing entry is kept, so the
// first request to complete wins.
func (s *IdempotencyStore) Remember(ctx context.Context, key, jobID string, ttl time.Duration) error {
	if err := s.client.SetNX(ctx, s.key(key), jobID, ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(key string) string {
	return "idempotency:job:" + key
}
