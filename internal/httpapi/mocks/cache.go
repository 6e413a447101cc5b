package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MissCache always misses and discards writes.
type MissCache struct{}

func (c *MissCache) Get(ctx context.Context, key string, dest any) error {
	return redis.Nil
}

func (c *MissCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	return nil
}

func (c *MissCache) Close() error {
	return nil
}

// MemoryCache stores JSON-encoded values in memory and tracks call counts.
// Safe for concurrent use; the handler cache helper writes from a goroutine.
type MemoryCache struct {
	mu       sync.Mutex
	GetCalls int
	SetCalls int
	data     map[string][]byte
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string][]byte)}
}

func (c *MemoryCache) Get(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.GetCalls++
	raw, ok := c.data[key]
	if !ok {
		return redis.Nil
	}
	return json.Unmarshal(raw, dest)
}

func (c *MemoryCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SetCalls++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}

// Sets returns the number of Set calls observed so far.
func (c *MemoryCache) Sets() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.SetCalls
}

// Seed stores a value under key without counting the call.
func (c *MemoryCache) Seed(key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}
