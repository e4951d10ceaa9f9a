package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/drivevault/drivevault/pkg/configs"
)

// RedisKV is the redis-backed KV store.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV creates the redis backend and pings it.
func NewRedisKV(ctx context.Context, config any) (KVStore, error) {
	var rc configs.RedisKVConfig

	switch c := config.(type) {
	case configs.KVConfig:
		rc = c.Redis
	case *configs.RedisKVConfig:
		rc = *c
	case configs.RedisKVConfig:
		rc = c
	default:
		return nil, fmt.Errorf("invalid redis kv config type %T", config)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisKV{client: client}, nil
}

// Get fetches a key's value.
func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return data, nil
}

// Set stores a value with an optional TTL.
func (r *RedisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key.
func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Exists reports whether a key is present.
func (r *RedisKV) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// Close closes the redis connection.
func (r *RedisKV) Close() error {
	return r.client.Close()
}

func init() {
	RegisterKVFactory(KVTypeRedis, NewRedisKV)
}
