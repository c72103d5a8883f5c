package middleware

import (
	"net/http"

	"sova/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RateLimitMiddleware allows limit requests per client IP per minute for the
// named scope. Redis errors let the request through.
func RateLimitMiddleware(rdb *redis.Client, scope string, limit int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}
		ok, err := utils.AllowRequest(c.Request.Context(), rdb, scope+":"+c.ClientIP(), limit)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, please try again in a minute."})
			c.Abort()
			return
		}
		c.Next()
	}
}
