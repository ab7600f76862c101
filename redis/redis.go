package redis

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects the cache client. The cache is optional: when REDIS_ADDR
// is unset or unreachable, lookups simply go uncached.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, cache disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := Client.Ping(Ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis, cache disabled: %v", err)
		Client = nil
		return
	}
	log.Println("✅ Connected to Redis")
}

// Get returns the cached value for key, or "" on miss or when the cache is
// disabled.
func Get(key string) string {
	if Client == nil {
		return ""
	}
	val, err := Client.Get(Ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

// Set stores a value with a TTL; failures are logged and ignored.
func Set(key, value string, ttl time.Duration) {
	if Client == nil {
		return
	}
	if err := Client.Set(Ctx, key, value, ttl).Err(); err != nil {
		log.Printf("redis set %s failed: %v", key, err)
	}
}
