package routes

import (
	"sova/controllers"
	"sova/middleware"

	"github.com/gin-gonic/gin"
)

// SetupContentRoutes - контент страницы и форма обратной связи
func SetupContentRoutes(r *gin.Engine, deps Dependencies) {
	contentCtrl := controllers.NewContentController(deps.Content)
	contactCtrl := controllers.NewContactController(deps.Mailer, deps.Config.ContactInbox, deps.Logger)

	api := r.Group("/api")
	{
		api.GET("/hero-content", contentCtrl.Hero)
		api.GET("/reward-content", contentCtrl.Rewards)
		api.GET("/product-features", contentCtrl.ProductFeatures)
		api.GET("/products", contentCtrl.Products)
		api.GET("/getVideos", contentCtrl.Videos)
		api.GET("/target-date", contentCtrl.TargetDate)

		api.POST("/send-email",
			middleware.RateLimitMiddleware(deps.Redis, "send-email", deps.Config.RateLimitPerMinute, deps.Logger),
			contactCtrl.SendEmail,
		)
	}
}
