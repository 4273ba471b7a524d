package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns nil when url is empty. Every consumer treats a nil client
// as "feature disabled".
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Locker hands out short-lived mutual exclusion keys.
type Locker struct {
	rdb *redis.Client
}

func NewLocker(rdb *redis.Client) *Locker {
	return &Locker{rdb: rdb}
}

// AcquireLock is a no-op success when no client is configured.
func (l *Locker) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if l == nil || l.rdb == nil {
		return true, nil
	}
	ok, err := l.rdb.SetNX(ctx, "lock:"+key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock in redis: %w", err)
	}
	return ok, nil
}

// ReleaseLock deletes the key only if it still holds value.
func (l *Locker) ReleaseLock(ctx context.Context, key, value string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return releaseScript.Run(ctx, l.rdb, []string{"lock:" + key}, value).Err()
}
