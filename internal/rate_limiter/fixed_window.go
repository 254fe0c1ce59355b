package ratelimiter

import (
	"context"
	"sync"
	"time"

	"github.com/LucasBeserra/magnetic-report-api/internal/config"
	"go.uber.org/zap"
)

// Stale windows are swept once the map grows past this many keys.
const sweepThreshold = 10000

type window struct {
	idx   int64
	count int
}

type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]*window
	limit   int
	frame   time.Duration
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   cfg.RequestsPerTimeFrame,
		frame:   cfg.TimeFrame,
		logger:  logger,
		now:     time.Now,
	}
}

func (rl *FixedWindowRateLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	idx, left := currentWindow(rl.now(), rl.frame)

	rl.Lock()
	defer rl.Unlock()

	if len(rl.clients) > sweepThreshold {
		for k, w := range rl.clients {
			if w.idx != idx {
				delete(rl.clients, k)
			}
		}
	}

	w, ok := rl.clients[key]
	if !ok || w.idx != idx {
		w = &window{idx: idx}
		rl.clients[key] = w
	}

	if w.count >= rl.limit {
		return false, left, nil
	}

	w.count++
	return true, 0, nil
}
