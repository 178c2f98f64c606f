package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout  = 5 * time.Second
	defaultReadTimeout  = 3 * time.Second
	defaultWriteTimeout = 3 * time.Second
)

// RedisStore persists the token pair in Redis under the fixed keys.
type RedisStore struct {
	client *redis.Client
}

// NewRedisClient returns a configured go-redis client and validates the
// connection with PING.
func NewRedisClient(addr, password string) (*redis.Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("session: redis addr is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  defaultDialTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), defaultDialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ TokenStore = (*RedisStore)(nil)

// Save writes both keys; tokens have no TTL here, expiry is enforced by
// the token service on use.
func (s *RedisStore) Save(ctx context.Context, token, refreshToken string) error {
	if err := s.client.Set(ctx, TokenKey, token, 0).Err(); err != nil {
		return err
	}
	return s.client.Set(ctx, RefreshTokenKey, refreshToken, 0).Err()
}

// Load returns the stored pair or ErrNoSession when the token key is absent.
func (s *RedisStore) Load(ctx context.Context) (string, string, error) {
	token, err := s.client.Get(ctx, TokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", "", ErrNoSession
	}
	if err != nil {
		return "", "", err
	}
	refresh, err := s.client.Get(ctx, RefreshTokenKey).Result()
	if errors.Is(err, redis.Nil) {
		refresh = ""
	} else if err != nil {
		return "", "", err
	}
	return token, refresh, nil
}

// Clear removes both keys.
func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, TokenKey, RefreshTokenKey).Err()
}
