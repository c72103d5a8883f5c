package routes

import (
	"path/filepath"

	"sova/config"
	"sova/controllers"
	"sova/database"
	"sova/middleware"
	"sova/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies - всё, что нужно маршрутам. Redis может быть nil:
// тогда лимиты запросов и черный список токенов отключены.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Redis    *redis.Client
	Store    *database.DonationStore
	Broker   controllers.OrderCreator
	Recorder controllers.PaymentRecorder
	Stats    controllers.StatsProvider
	Content  *services.ContentService
	Mailer   controllers.ContactSender
	Notifier services.NotificationQueue
}

// SetupRouter создаёт gin.Engine, регистрирует все маршруты и возвращает роутер
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.RecoveryMiddleware(deps.Logger))

	// CORS middleware ДО роутов
	r.Use(cors.New(corsConfig(deps.Config.CORSOrigins)))

	SetupPaymentRoutes(r, deps)
	SetupContentRoutes(r, deps)
	SetupAdminRoutes(r, deps)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Статический сайт
	publicDir := deps.Config.PublicDir
	r.Static("/assets", filepath.Join(publicDir, "assets"))
	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(publicDir, "index.html"))
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "x-cf-signature"},
		ExposeHeaders: []string{"Content-Length"},
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
