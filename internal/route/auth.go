package route

import (
	"github.com/LucasBeserra/magnetic-report-api/internal/controller"
	"github.com/LucasBeserra/magnetic-report-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Auth(r *gin.RouterGroup, authController *controller.AuthController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/auth")
	{
		v1.POST("/register", authController.Register)
		v1.POST("/login", authController.Login)
		v1.POST("/refresh", authController.RefreshAccessToken)
		v1.POST("/logout", authController.Logout)
		v1.POST("/verify-email", authController.VerifyEmail)
		v1.POST("/resend-verification", authController.ResendVerification)
		v1.POST("/forgot-password", authController.ForgotPassword)
		v1.POST("/reset-password", authController.ResetPassword)
		v1.GET("/me", middleware.RequireAccessToken, authController.Me)
	}
}
