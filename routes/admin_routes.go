package routes

import (
	"sova/controllers/admin"
	"sova/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes настраивает админские маршруты
func SetupAdminRoutes(r *gin.Engine, deps Dependencies) {
	adminController := admin.NewAdminController(deps.Store, deps.Notifier, deps.Logger)

	adminGroup := r.Group("/admin", middleware.AdminAuthMiddleware(deps.Config.AdminJWTSecret, deps.Redis))
	{
		adminGroup.GET("/donations", adminController.ListDonations)
		adminGroup.POST("/donations/:donorId/resend-certificate", adminController.ResendCertificate)
	}
}
