package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/example/ecommerce-catalog-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// LoginRateLimiter implements a sliding-window limit on login attempts
// per email address.
type LoginRateLimiter struct {
	client *redis.Client
	cfg    *config.RateConfig
}

func NewLoginRateLimiter(client *redis.Client, cfg *config.RateConfig) *LoginRateLimiter {
	return &LoginRateLimiter{client: client, cfg: cfg}
}

// Check returns whether another attempt is allowed, how many attempts
// remain, and how many seconds to wait when blocked.
func (l *LoginRateLimiter) Check(ctx context.Context, email string) (bool, int, int, error) {

	key := fmt.Sprintf("login_attempts:%s", email)

	now := time.Now()
	windowStart := now.Add(-l.cfg.WindowSize)

	// Drop attempts that fell out of the window.
	if err := l.client.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano())).Err(); err != nil {
		return false, 0, 0, fmt.Errorf("failed to trim rate limit window: %w", err)
	}

	count, err := l.client.ZCard(ctx, key).Result()
	if err != nil {
		return false, 0, 0, fmt.Errorf("failed to count login attempts: %w", err)
	}

	if count >= l.cfg.MaxAttempts {
		oldest, err := l.client.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return false, 0, int(l.cfg.WindowSize.Seconds()), nil
		}

		retryAt := time.Unix(0, int64(oldest[0].Score)).Add(l.cfg.WindowSize)

		return false, 0, int(time.Until(retryAt).Seconds()) + 1, nil
	}

	err = l.client.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	}).Err()
	if err != nil {
		return false, 0, 0, fmt.Errorf("failed to record login attempt: %w", err)
	}

	l.client.Expire(ctx, key, l.cfg.WindowSize)

	return true, int(l.cfg.MaxAttempts-count) - 1, 0, nil
}
