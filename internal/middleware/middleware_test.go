package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	appcontext "github.com/LucasBeserra/magnetic-report-api/internal/app_context"
	"github.com/LucasBeserra/magnetic-report-api/internal/auth"
	"github.com/LucasBeserra/magnetic-report-api/internal/config"
	"github.com/LucasBeserra/magnetic-report-api/internal/constant"
	ratelimiter "github.com/LucasBeserra/magnetic-report-api/internal/rate_limiter"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/gin-gonic/gin"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return false, 0, errors.New("redis: connection refused")
}

func newTestApp(cfg config.Config) *appcontext.Application {
	logger := util.NewLogger("test")
	return &appcontext.Application{
		Config:     &cfg,
		Logger:     logger,
		JWTService: auth.NewJwt(cfg.Auth, logger),
	}
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "ok")
	})
	r.GET("/", handlers...)
	return r
}

func get(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterMiddleware(t *testing.T) {
	cfg := config.RateLimiterConfig{RequestsPerTimeFrame: 2, TimeFrame: time.Minute, Enabled: true}
	app := newTestApp(config.Config{RateLimiter: cfg})
	m := NewMiddleware(app, ratelimiter.NewFixedWindowLimiter(cfg, app.Logger))
	r := newTestRouter(m.RateLimiterMiddleware)

	for i := 0; i < 2; i++ {
		if w := get(r, ""); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}

	w := get(r, "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	retry, err := strconv.Atoi(w.Header().Get("Retry-After"))
	if err != nil || retry < 1 || retry > 60 {
		t.Errorf("Retry-After = %q, want 1..60 seconds", w.Header().Get("Retry-After"))
	}
}

func TestRateLimiterMiddlewarePassThrough(t *testing.T) {
	tests := []struct {
		name    string
		limiter ratelimiter.Limiter
		enabled bool
	}{
		{"no limiter", nil, true},
		{"disabled", failingLimiter{}, false},
		{"limiter error", failingLimiter{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(config.Config{RateLimiter: config.RateLimiterConfig{Enabled: tt.enabled}})
			r := newTestRouter(NewMiddleware(app, tt.limiter).RateLimiterMiddleware)

			if w := get(r, ""); w.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", w.Code)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp(config.Config{Auth: config.AuthConfig{Enabled: true, JWT_SECRET: "test-secret"}})
	payload := auth.JWTPayload{ID: "user-1", Email: "ana@example.com", FullName: "Ana"}

	access, err := app.JWTService.GenerateToken(payload, constant.JWT_TYPE_ACCESS)
	if err != nil {
		t.Fatal(err)
	}
	refresh, err := app.JWTService.GenerateToken(payload, constant.JWT_TYPE_REFRESH)
	if err != nil {
		t.Fatal(err)
	}

	var seen auth.JWTPayload
	m := NewMiddleware(app, nil)
	r := newTestRouter(m.AuthMiddleware, func(ctx *gin.Context) {
		if user, ok := ctx.Get("user"); ok {
			seen = user.(auth.JWTPayload)
		}
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + access.Token, http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh.Token, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"access token", "Bearer " + access.Token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := get(r, tt.header); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}

	if seen.ID != "user-1" {
		t.Errorf("user in context = %+v", seen)
	}

	app.Config.Auth.Enabled = false
	if w := get(r, ""); w.Code != http.StatusOK {
		t.Errorf("auth disabled: status = %d, want 200", w.Code)
	}
}
