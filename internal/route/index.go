package route

import (
	"github.com/LucasBeserra/magnetic-report-api/internal/controller"
	"github.com/gin-gonic/gin"
)

func Index(r *gin.Engine, ic *controller.IndexController) {
	r.GET("/", ic.Index)
	r.GET("/health", ic.Health)
}
