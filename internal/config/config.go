package config

import (
	"strings"
	"time"

	"github.com/LucasBeserra/magnetic-report-api/internal/env"
)

type Config struct {
	Port        string
	ENV         string
	FrontendURL string
	CORSOrigins []string
	DB          DatabaseConfig
	RateLimiter RateLimiterConfig
	Mail        MailConfig
	Auth        AuthConfig
	Storage     StorageConfig
	Minio       MinioConfig
	Redis       RedisConfig
	Render      RenderConfig
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type AuthConfig struct {
	// When false, resource routes accept requests without an access token.
	Enabled              bool
	JWT_SECRET           string
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	VerifyTokenTTL       time.Duration
	ResetTokenTTL        time.Duration
	RequireVerifiedLogin bool
}

type DatabaseConfig struct {
	// postgres or sqlite
	DRIVER       string
	DB_HOST      string
	DB_PORT      string
	DB_DATABASE  string
	DB_USERNAME  string
	DB_PASSWORD  string
	DB_SSLMODE   string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  string
}

type MailConfig struct {
	SEND_GRID  SendGridConfig
	FROM_EMAIL string
}

type SendGridConfig struct {
	API_KEY string
}

type StorageConfig struct {
	// local or minio
	Driver            string
	UploadDir         string
	PublicPrefix      string
	MaxFileSize       int64
	AllowedExtensions []string
	MaxImageWidth     int
	JPEGQuality       int
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	USE_SSL    bool
	BUCKET     string
}

type RedisConfig struct {
	ADDR     string
	PASSWORD string
	DB       int
}

type RenderConfig struct {
	OutputDir        string
	FontMetadataPath string
	FontName         string
	Workers          int
	EmbedQRCode      bool
	QrURLPattern     string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func (c Config) UsesMinio() bool {
	return strings.EqualFold(c.Storage.Driver, "minio")
}

func GetConfig() Config {
	return Config{
		Port:        env.GetString("PORT", "8080"),
		ENV:         env.GetString("ENV", "development"),
		FrontendURL: env.GetString("FRONTEND_URL", "http://localhost:3000"),
		CORSOrigins: env.GetStrings("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		DB: DatabaseConfig{
			DRIVER:       env.GetString("DB_DRIVER", "postgres"),
			DB_HOST:      env.GetString("DB_HOST", "127.0.0.1"),
			DB_PORT:      env.GetString("DB_PORT", "5432"),
			DB_USERNAME:  env.GetString("DB_USERNAME", "postgres"),
			DB_PASSWORD:  env.GetString("DB_PASSWORD", ""),
			DB_DATABASE:  env.GetString("DB_DATABASE", "magnetic_report"),
			DB_SSLMODE:   env.GetString("DB_SSLMODE", "disable"),
			MaxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 30),
			MaxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            env.GetDuration("RATE_LIMIT_TIME_FRAME", time.Minute),
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		Mail: MailConfig{
			FROM_EMAIL: env.GetString("MAIL_FROM_MAIL", ""),
			SEND_GRID: SendGridConfig{
				API_KEY: env.GetString("MAIL_SEND_GRID_API_KEY", ""),
			},
		},
		Auth: AuthConfig{
			Enabled:              env.GetBool("AUTH_ENABLED", true),
			JWT_SECRET:           env.GetString("AUTH_JWT_SECRET", ""),
			AccessTokenTTL:       env.GetDuration("AUTH_ACCESS_TOKEN_TTL", 30*time.Minute),
			RefreshTokenTTL:      env.GetDuration("AUTH_REFRESH_TOKEN_TTL", 7*24*time.Hour),
			VerifyTokenTTL:       env.GetDuration("AUTH_VERIFY_TOKEN_TTL", 24*time.Hour),
			ResetTokenTTL:        env.GetDuration("AUTH_RESET_TOKEN_TTL", time.Hour),
			RequireVerifiedLogin: env.GetBool("AUTH_REQUIRE_VERIFIED_LOGIN", false),
		},
		Storage: StorageConfig{
			Driver:            env.GetString("STORAGE_DRIVER", "local"),
			UploadDir:         env.GetString("UPLOAD_DIR", "uploads"),
			PublicPrefix:      env.GetString("UPLOAD_PUBLIC_PREFIX", "/uploads"),
			MaxFileSize:       env.GetInt64("UPLOAD_MAX_FILE_SIZE", 5*1024*1024),
			AllowedExtensions: env.GetStrings("UPLOAD_ALLOWED_EXTENSIONS", []string{"jpg", "jpeg", "png", "webp"}),
			MaxImageWidth:     env.GetInt("UPLOAD_MAX_IMAGE_WIDTH", 1920),
			JPEGQuality:       env.GetInt("UPLOAD_JPEG_QUALITY", 85),
		},
		Minio: MinioConfig{
			ENDPOINT:   env.GetString("MINIO_ENDPOINT", "127.0.0.1:9000"),
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", ""),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", false),
			BUCKET:     env.GetString("MINIO_BUCKET", "magnetic-report"),
		},
		Redis: RedisConfig{
			ADDR:     env.GetString("REDIS_ADDR", ""),
			PASSWORD: env.GetString("REDIS_PASSWORD", ""),
			DB:       env.GetInt("REDIS_DB", 0),
		},
		Render: RenderConfig{
			OutputDir:        env.GetString("RENDER_OUTPUT_DIR", "reports"),
			FontMetadataPath: env.GetString("RENDER_FONT_METADATA_PATH", "font_metadata.json"),
			FontName:         env.GetString("RENDER_FONT_NAME", ""),
			Workers:          env.GetInt("RENDER_WORKERS", 0),
			EmbedQRCode:      env.GetBool("RENDER_EMBED_QR_CODE", false),
			QrURLPattern:     env.GetString("RENDER_QR_URL_PATTERN", ""),
		},
	}
}
