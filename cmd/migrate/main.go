package main

import (
	"github.com/LucasBeserra/magnetic-report-api/internal/config"
	"github.com/LucasBeserra/magnetic-report-api/internal/database"
	"github.com/LucasBeserra/magnetic-report-api/internal/env"
	"github.com/LucasBeserra/magnetic-report-api/internal/model"
	"go.uber.org/zap"
)

func init() {
	env.LoadEnv()
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()
	cfg := config.GetConfig()

	logger.Infof("Migrating %s database %s", cfg.DB.DRIVER, cfg.DB.DB_DATABASE)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	if database.IsPostgres(db) {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS citext`).Error; err != nil {
			logger.Panic(err)
		}
	}

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		logger.Panic(err)
	}

	logger.Info("Migration finished")
}
