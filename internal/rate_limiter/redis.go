package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/LucasBeserra/magnetic-report-api/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "ratelimit:"

// RedisRateLimiter shares the counters between every api instance.
type RedisRateLimiter struct {
	client redis.UniversalClient
	limit  int
	frame  time.Duration
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewRedisRateLimiter(cfg config.RateLimiterConfig, client redis.UniversalClient, logger *zap.SugaredLogger) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  cfg.RequestsPerTimeFrame,
		frame:  cfg.TimeFrame,
		logger: logger,
		now:    time.Now,
	}
}

func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	idx, left := currentWindow(rl.now(), rl.frame)
	redisKey := fmt.Sprintf("%s%s:%d", redisKeyPrefix, key, idx)

	var incr *redis.IntCmd
	_, err := rl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		// keep the key a little past its window so clock skew between instances does not reset it early
		pipe.Expire(ctx, redisKey, left+time.Second)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("rate limiter: %w", err)
	}

	if incr.Val() > int64(rl.limit) {
		return false, left, nil
	}

	return true, 0, nil
}
