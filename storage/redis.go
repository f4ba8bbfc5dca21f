package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps profile keys in redis so several storefront instances can
// share sessions. A zero TTL keeps keys forever.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, TTL: ttl}
}

func (s *RedisStore) EntryKey(profile, key string) string {
	return "storefront:" + profile + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, profile, key string) ([]byte, error) {
	v, err := s.Client.Get(ctx, s.EntryKey(profile, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *RedisStore) Set(ctx context.Context, profile, key string, value []byte) error {
	return s.Client.Set(ctx, s.EntryKey(profile, key), value, s.TTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, profile, key string) error {
	return s.Client.Del(ctx, s.EntryKey(profile, key)).Err()
}
