// Package kv provides the key-value cache interface and its backends. The
// share resolver uses it to cache resolved share records by token.
package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drivevault/drivevault/pkg/configs"
)

// ErrNotFound is returned when a key is absent.
var ErrNotFound = errors.New("kv: key not found")

type Client struct {
	KVStore
}

// KVStore is the key-value store interface.
type KVStore interface {
	// Get fetches a key's value; ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value with an optional TTL (0 means no expiry).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes a key.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a key is present.
	Exists(ctx context.Context, key string) (bool, error)
	// Close releases the store connection.
	Close() error
}

// KVType names a backend.
type KVType string

const (
	KVTypeMemory KVType = "memory"
	KVTypeRedis  KVType = "redis"
)

// KVFactory builds a KVStore from backend config.
type KVFactory func(ctx context.Context, config any) (KVStore, error)

// kvFactories maps KV types to factories.
var kvFactories = make(map[KVType]KVFactory)

// RegisterKVFactory registers a backend factory.
func RegisterKVFactory(kvType KVType, factory KVFactory) {
	kvFactories[kvType] = factory
}

// GetRegisteredKVTypes lists registered backend types.
func GetRegisteredKVTypes() []KVType {
	types := make([]KVType, 0, len(kvFactories))
	for kvType := range kvFactories {
		types = append(types, kvType)
	}

	return types
}

// NewKVStore builds a KVStore of the given type.
func NewKVStore(ctx context.Context, kvType KVType, config any) (KVStore, error) {
	factory, exists := kvFactories[kvType]
	if !exists {
		return nil, fmt.Errorf("unsupported KV type: %s", kvType)
	}

	return factory(ctx, config)
}

// NewKVClient builds the configured KV client.
func NewKVClient(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().KV

	store, err := NewKVStore(ctx, KVType(cfg.Type), cfg)
	if err != nil {
		return nil, err
	}

	return &Client{KVStore: store}, nil
}
