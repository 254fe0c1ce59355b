package route

import (
	"github.com/LucasBeserra/magnetic-report-api/internal/controller"
	"github.com/LucasBeserra/magnetic-report-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Clients(r *gin.RouterGroup, cc *controller.ClientController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/clients")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("", cc.GetClientList)
		v1.POST("", cc.CreateClient)
		v1.GET("/:clientId", cc.GetClientById)
		v1.PATCH("/:clientId", cc.UpdateClient)
		v1.DELETE("/:clientId", cc.DeleteClient)
	}
}
