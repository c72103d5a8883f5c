package routes

import (
	"sova/controllers"
	"sova/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes - поток пожертвования: проверка награды, заказ, callback
func SetupPaymentRoutes(r *gin.Engine, deps Dependencies) {
	rewardCtrl := controllers.NewRewardController()
	orderCtrl := controllers.NewOrderController(deps.Broker)
	paymentCtrl := controllers.NewPaymentController(deps.Recorder, deps.Logger)
	donorCtrl := controllers.NewDonorController(deps.Store, deps.Stats, deps.Logger)

	limit := deps.Config.RateLimitPerMinute

	r.POST("/validate-reward", rewardCtrl.ValidateReward)
	r.POST("/create-order", middleware.RateLimitMiddleware(deps.Redis, "create-order", limit, deps.Logger), orderCtrl.CreateOrder)
	r.POST("/verify-payment", paymentCtrl.VerifyPayment) // callback от Cashfree

	api := r.Group("/api")
	{
		api.GET("/donors", donorCtrl.GetDonors)
		api.GET("/get-stats", donorCtrl.GetStats)
	}
}
