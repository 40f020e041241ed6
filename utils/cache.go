package utils

import (
	"context"
	"log"
	"sync"
	"time"

	"bossmaids/config"

	"github.com/go-redis/redis/v8"
)

// SessionCache stores short-lived auth session state keyed by token hash.
// Redis backs it when configured; otherwise an in-process map does, which is
// enough for single-instance demo deployments.
type SessionCache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

const AuthSessionPrefix = "authSession:"

var (
	sessionCache SessionCache
	cacheOnce    sync.Once
)

// GetSessionCache returns the process-wide session cache, choosing Redis or
// the in-memory fallback based on configuration presence.
func GetSessionCache() SessionCache {
	cacheOnce.Do(func() {
		if config.AppConfig.HasRedis() {
			sessionCache = newRedisSessionCache()
		} else {
			sessionCache = NewMemorySessionCache()
		}
	})
	return sessionCache
}

type redisSessionCache struct {
	client *redis.Client
}

func newRedisSessionCache() *redisSessionCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
	return &redisSessionCache{client: client}
}

func (c *redisSessionCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, AuthSessionPrefix+key, value, ttl).Err()
}

func (c *redisSessionCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, AuthSessionPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *redisSessionCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, AuthSessionPrefix+key).Err()
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

type memorySessionCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemorySessionCache returns the in-process fallback cache.
func NewMemorySessionCache() SessionCache {
	return &memorySessionCache{entries: make(map[string]memoryEntry)}
}

func (c *memorySessionCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *memorySessionCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false, nil
	}
	return entry.value, true, nil
}

func (c *memorySessionCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
