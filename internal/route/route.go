package route

import (
	"github.com/LucasBeserra/magnetic-report-api/internal/controller"
	"github.com/LucasBeserra/magnetic-report-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Register mounts every route of the api on r.
func Register(r *gin.Engine, c *controller.Controller, m *middleware.Middleware) {
	Index(r, c.Index)

	rApi := r.Group("/api")

	V1_Auth(rApi, c.Auth, m)
	V1_Clients(rApi, c.Client, m)
	V1_Products(rApi, c.Product, m)
	V1_Reports(rApi, c.Report, c.Photo, m)
}
