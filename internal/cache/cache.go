package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Store is a byte-oriented TTL cache shared by the stats and job search services.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// RedisStore provides Redis-backed caching.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis at the given URL and returns a RedisStore.
// URL format: redis://localhost:6379
func NewRedis(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache: redis ping failed: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// MemoryStore is the in-process fallback used when no Redis is configured.
type MemoryStore struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *MemoryStore {
	return &MemoryStore{c: gocache.New(ttl, 2*ttl)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.c.Set(key, value, gocache.DefaultExpiration)
	return nil
}

func (m *MemoryStore) Close() error {
	m.c.Flush()
	return nil
}

// GetJSON decodes a cached value into dst. A miss or an undecodable entry
// both report false.
func GetJSON(ctx context.Context, s Store, key string, dst any) bool {
	if s == nil {
		return false
	}
	data, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	if s == nil {
		return errors.New("cache: no store configured")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: marshal error: %w", err)
	}
	return s.Set(ctx, key, data)
}

// Key builds a namespaced, fixed-length key from free-form parts.
func Key(namespace string, parts ...string) string {
	raw := strings.ToLower(strings.Join(parts, ":"))
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("talentmatrix:%s:%x", strings.ToLower(namespace), hash[:8])
}
