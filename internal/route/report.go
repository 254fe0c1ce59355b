package route

import (
	"github.com/LucasBeserra/magnetic-report-api/internal/controller"
	"github.com/LucasBeserra/magnetic-report-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Reports(r *gin.RouterGroup, rc *controller.ReportController, pc *controller.PhotoController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/reports")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("", rc.GetReportList)
		v1.POST("", rc.CreateReport)
		v1.GET("/:reportId", rc.GetReportById)
		v1.PATCH("/:reportId", rc.UpdateReport)
		v1.DELETE("/:reportId", rc.DeleteReport)
		v1.GET("/:reportId/pdf", rc.RenderReportPdf)
		v1.PUT("/:reportId/table/csv", rc.ImportTableCSV)

		v1.GET("/:reportId/photos", pc.GetPhotoList)
		v1.POST("/:reportId/photos", pc.UploadPhoto)
		v1.DELETE("/:reportId/photos/:photoId", pc.DeletePhoto)
	}
}
