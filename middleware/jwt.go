package middleware

import (
	"net/http"
	"strings"

	"sova/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// AdminAuthMiddleware accepts HS256 bearer tokens with role "admin" that are
// not on the redis blacklist. An empty secret rejects every request.
func AdminAuthMiddleware(secret string, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			c.Abort()
			return
		}
		if secret == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin access is disabled"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		// Проверяем черный список токенов
		if rdb != nil {
			if _, err := rdb.Get(c.Request.Context(), "blacklist:"+token).Result(); err == nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
				c.Abort()
				return
			}
		}

		claims, err := utils.ParseJWT(token, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if role, _ := claims["role"].(string); role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			c.Abort()
			return
		}
		c.Set("admin_subject", claims["sub"])
		c.Next()
	}
}
