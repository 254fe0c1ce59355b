package middleware

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/gin-gonic/gin"
)

const ErrTooManyRequests = "too many requests, please try again later"

func (m Middleware) RateLimiterMiddleware(ctx *gin.Context) {
	if m.rateLimiter == nil || !m.app.Config.RateLimiter.Enabled {
		ctx.Next()
		return
	}

	allowed, retryAfter, err := m.rateLimiter.Allow(ctx, ctx.ClientIP())
	if err != nil {
		// a limiter outage should not take the api down with it
		m.app.Logger.Errorw("Rate limiter failed, letting request through", "error", err)
		ctx.Next()
		return
	}

	if !allowed {
		ctx.Header("Retry-After", fmt.Sprintf("%d", int(math.Ceil(retryAfter.Seconds()))))
		util.ResponseFailed(ctx, http.StatusTooManyRequests, "Rate limit exceeded", util.GenerateErrorMessages(errors.New(ErrTooManyRequests), "rateLimit"), nil)
		return
	}

	ctx.Next()
}
