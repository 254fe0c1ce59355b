package ratelimiter

import (
	"context"
	"time"

	"github.com/LucasBeserra/magnetic-report-api/internal/config"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter counts requests per key in fixed windows. Allow reports whether the
// request fits in the current window and, when it does not, how long until
// the window resets.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// Returns a redis backed limiter when a client is given, an in-memory one otherwise.
func NewRateLimiter(cfg config.RateLimiterConfig, client redis.UniversalClient, logger *zap.SugaredLogger) Limiter {
	// For unit test
	if logger == nil {
		logger = util.NewLogger("test")
	}

	if client != nil {
		logger.Infof("Rate limiter backed by redis, %d requests per %s", cfg.RequestsPerTimeFrame, cfg.TimeFrame)
		return NewRedisRateLimiter(cfg, client, logger)
	}

	logger.Infof("Rate limiter in memory, %d requests per %s", cfg.RequestsPerTimeFrame, cfg.TimeFrame)
	return NewFixedWindowLimiter(cfg, logger)
}

func NewRedisClient(cfg config.RedisConfig) redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.ADDR,
		Password: cfg.PASSWORD,
		DB:       cfg.DB,
	})
}

// Index of the window containing now and the time left until it closes.
func currentWindow(now time.Time, frame time.Duration) (int64, time.Duration) {
	if frame <= 0 {
		frame = time.Minute
	}
	idx := now.UnixNano() / int64(frame)
	end := time.Unix(0, (idx+1)*int64(frame))
	return idx, end.Sub(now)
}
