package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultIdempotencyTTL = time.Hour
	// pendingTTL bounds how long a crashed create can hold a key.
	pendingTTL    = 30 * time.Second
	pendingMarker = "pending"
)

// IdempotencyStore maps Idempotency-Key headers to the greeting they created.
// Keys are scoped to the acting username.
// Key format: idem:greeting:<actor>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl selects one hour.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key for actor. When reserved is true the caller owns the
// key and must Complete or Release it. Otherwise existingID is the greeting
// an earlier call created, or empty while that call is still in flight.
func (s *IdempotencyStore) Reserve(ctx context.Context, actor, key string) (string, bool, error) {
	k := s.key(actor, key)
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, k, pendingMarker, pendingTTL).Result()
		if err != nil {
			return "", false, fmt.Errorf("idempotency reserve: %w", err)
		}
		if ok {
			return "", true, nil
		}

		id, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			// Released or expired between the two calls.
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("idempotency reserve: %w", err)
		}
		if id == pendingMarker {
			return "", false, nil
		}
		return id, false, nil
	}
	return "", false, nil
}

// Complete records greetingID for a reserved key until the TTL lapses.
func (s *IdempotencyStore) Complete(ctx context.Context, actor, key, greetingID string) error {
	if err := s.client.Set(ctx, s.key(actor, key), greetingID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release drops a reservation whose create failed so the key can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, actor, key string) error {
	if err := s.client.Del(ctx, s.key(actor, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(actor, key string) string {
	return "idem:greeting:" + actor + ":" + key
}
