package route

import (
	"github.com/LucasBeserra/magnetic-report-api/internal/controller"
	"github.com/LucasBeserra/magnetic-report-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Products(r *gin.RouterGroup, pc *controller.ProductController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/products")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("", pc.GetProductList)
		v1.POST("", pc.CreateProduct)
		v1.GET("/:productId", pc.GetProductById)
		v1.PATCH("/:productId", pc.UpdateProduct)
		v1.DELETE("/:productId", pc.DeleteProduct)
	}
}
