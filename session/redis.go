package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "session:"
	redisTimeout   = 2 * time.Second
)

// RedisStore keeps sessions in Redis so several API processes can share them.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore. A ttl of zero stores keys without expiry.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, id Identity) (string, error) {
	if id.UserID == 0 {
		return "", ErrEmptyIdentity
	}
	payload, err := json.Marshal(id)
	if err != nil {
		return "", err
	}
	token := newToken()

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	if err := s.client.Set(ctx, redisKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session: store token: %w", err)
	}
	return token, nil
}

// Resolve fails closed: a Redis error reports the token as absent.
func (s *RedisStore) Resolve(ctx context.Context, token string) (Identity, bool) {
	if token == "" {
		return Identity{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if err != nil {
		return Identity{}, false
	}
	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil || id.UserID == 0 {
		return Identity{}, false
	}
	return id, true
}

func (s *RedisStore) Invalidate(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	if err := s.client.Del(ctx, redisKeyPrefix+token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("session: revoke token: %w", err)
	}
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
