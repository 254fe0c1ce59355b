package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

func (ic IndexController) Index(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"message": "Welcome to the " + util.GetAppName() + " api",
	})
}

func (ic IndexController) Health(ctx *gin.Context) {
	sqlDB, err := ic.app.Repository.DB.DB()
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(pingCtx)
	}

	if err != nil {
		ic.app.Logger.Errorf("Health check failed: %v", err)
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, "Database unavailable", util.GenerateErrorMessages(err, "database"), gin.H{
			"status":   "unhealthy",
			"database": "down",
		})
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"status":   "healthy",
		"database": "up",
	})
}
