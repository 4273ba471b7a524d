package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Limiter struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

func key(userID uuid.UUID, action string) string {
	return fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
}

// CheckAndSet reports whether the action is allowed and opens a window of length limit.
// A limiter without a client always allows.
func (l *Limiter) CheckAndSet(ctx context.Context, userID uuid.UUID, action string, limit time.Duration) (bool, error) {
	if l == nil || l.rdb == nil || limit <= 0 {
		return true, nil
	}

	wasSet, err := l.rdb.SetNX(ctx, key(userID, action), "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func (l *Limiter) TTL(ctx context.Context, userID uuid.UUID, action string) (time.Duration, error) {
	if l == nil || l.rdb == nil {
		return 0, nil
	}
	return l.rdb.TTL(ctx, key(userID, action)).Result()
}

// Clear reopens the window, used when the guarded action failed after the check.
func (l *Limiter) Clear(ctx context.Context, userID uuid.UUID, action string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, key(userID, action)).Err()
}
