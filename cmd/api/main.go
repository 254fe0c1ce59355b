package main

import (
	"context"
	"os"

	appcontext "github.com/LucasBeserra/magnetic-report-api/internal/app_context"
	"github.com/LucasBeserra/magnetic-report-api/internal/auth"
	"github.com/LucasBeserra/magnetic-report-api/internal/config"
	"github.com/LucasBeserra/magnetic-report-api/internal/controller"
	"github.com/LucasBeserra/magnetic-report-api/internal/database"
	"github.com/LucasBeserra/magnetic-report-api/internal/env"
	filestorage "github.com/LucasBeserra/magnetic-report-api/internal/file_storage"
	"github.com/LucasBeserra/magnetic-report-api/internal/mailer"
	"github.com/LucasBeserra/magnetic-report-api/internal/middleware"
	ratelimiter "github.com/LucasBeserra/magnetic-report-api/internal/rate_limiter"
	"github.com/LucasBeserra/magnetic-report-api/internal/repository"
	"github.com/LucasBeserra/magnetic-report-api/internal/route"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/LucasBeserra/magnetic-report-api/pkg/report"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()

	if cfg.Auth.JWT_SECRET == "" {
		logger.Panic("AUTH_JWT_SECRET must be set")
	}

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()
	logger.Info("Database connected \n")

	storage, err := filestorage.NewStorage(context.Background(), &cfg, logger)
	if err != nil {
		logger.Panic(err)
	}

	renderCfg := report.Config{
		FontMetadataPath: cfg.Render.FontMetadataPath,
		FontName:         cfg.Render.FontName,
		OutputDir:        cfg.Render.OutputDir,
		Workers:          cfg.Render.Workers,
	}
	if err := os.MkdirAll(renderCfg.OutputDir, 0755); err != nil {
		logger.Panic(err)
	}
	renderer, err := report.NewRenderer(renderCfg, report.Settings{
		EmbedQRCode:  cfg.Render.EmbedQRCode,
		QrURLPattern: cfg.Render.QrURLPattern,
	}, storage)
	if err != nil {
		logger.Panic(err)
	}

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := util.RegisterCustomValidations(v); err != nil {
			logger.Panic(err)
		}
	}

	var redisClient redis.UniversalClient
	if cfg.Redis.ADDR != "" {
		redisClient = ratelimiter.NewRedisClient(cfg.Redis)
		defer redisClient.Close()
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Panicf("Failed to connect to redis at %s: %v", cfg.Redis.ADDR, err)
		}
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, redisClient, logger)
	mail := mailer.NewSendgrid(cfg.Mail.SEND_GRID.API_KEY, cfg.Mail.FROM_EMAIL, cfg.IsProduction(), logger)
	jwtService := auth.NewJwt(cfg.Auth, logger)
	repo := repository.NewRepository(db, logger, jwtService, storage)
	app := appcontext.Application{
		Config:     &cfg,
		Repository: repo,
		Logger:     logger,
		Mailer:     mail,
		JWTService: jwtService,
		Storage:    storage,
		Renderer:   renderer,
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.MaxMultipartMemory = cfg.Storage.MaxFileSize + 1<<20

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", controller.HeaderReportPages, controller.HeaderReportSkippedPhotos}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RateLimiterMiddleware)

	if local, ok := storage.(*filestorage.LocalStorage); ok {
		r.Static(cfg.Storage.PublicPrefix, local.Root())
	}

	route.Register(r, controller.NewController(&app), _middleware)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panicf("Error running server: %v \n", err)
	}
}
