package cache

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rcspp-go/rcspp/pkg/config"
	"github.com/rcspp-go/rcspp/preprocess"
)

// ErrKeyNotFound is returned by Lookup's internal get when a key is absent;
// Lookup itself surfaces this as (Tables{}, false) per preprocess.TableSource.
var ErrKeyNotFound = errors.New("cache: key not found")

// keyPrefix namespaces rcsppd's entries within a shared Redis instance.
const keyPrefix = "rcsppd:tables:"

// RedisTableCache implements preprocess.TableSource against Redis, so a
// lower-bound table computed for a given graph shape is reused across runs
// instead of recomputed from scratch.
type RedisTableCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

var _ preprocess.TableSource = (*RedisTableCache)(nil)

// NewRedisTableCache connects to the configured Redis instance and pings it
// to fail fast on misconfiguration.
func NewRedisTableCache(cfg config.CacheConfig) (*RedisTableCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}

	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &RedisTableCache{client: client, defaultTTL: ttl}, nil
}

// Lookup implements preprocess.TableSource. A miss, decode failure, or
// Redis error is all reported as (Tables{}, false) — the caller falls back
// to recomputing, which is always correct (see preprocess.Run's doc
// comment), so Lookup never needs to distinguish its failure modes.
func (c *RedisTableCache) Lookup(ctx context.Context, key string) (preprocess.Tables, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return preprocess.Tables{}, false
	}
	var t preprocess.Tables
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&t); err != nil {
		return preprocess.Tables{}, false
	}
	return t, true
}

// Store implements preprocess.TableSource. Encoding or Redis errors are
// swallowed: a failed cache write never aborts a run, it just means the
// next lookup for this key will also recompute.
func (c *RedisTableCache) Store(ctx context.Context, key string, t preprocess.Tables) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(t); err != nil {
		return
	}
	c.client.Set(ctx, keyPrefix+key, buf.Bytes(), c.defaultTTL)
}

// Close releases the underlying Redis connection pool.
func (c *RedisTableCache) Close() error {
	return c.client.Close()
}
