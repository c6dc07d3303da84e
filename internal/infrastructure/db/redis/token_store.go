package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "appshell:"

// TokenStore keeps the bearer token under a single Redis key.
// Key format: appshell:<key>
type TokenStore struct {
	client *redis.Client
	key    string
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client, key string) *TokenStore {
	return &TokenStore{client: client, key: keyPrefix + key}
}

// Load returns the stored token, or "" when none is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis token load: %w", err)
	}
	return token, nil
}

// Save stores the token without expiry; the backend decides when it expires.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis token save: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis token clear: %w", err)
	}
	return nil
}

func (s *TokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *TokenStore) Close() error {
	return s.client.Close()
}
