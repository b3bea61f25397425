package dedupe

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "wa:msg:"

// RedisStore remembers inbound message ids for ttl so provider retries are
// recognised.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

// FirstSeen atomically records id and reports whether it was new.
func (s *RedisStore) FirstSeen(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+id, 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedupe setnx: %w", err)
	}
	return ok, nil
}

// NoopStore treats every id as new. Used when Redis is not configured.
type NoopStore struct{}

func (NoopStore) FirstSeen(context.Context, string) (bool, error) {
	return true, nil
}

// Connect dials Redis and pings it.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
