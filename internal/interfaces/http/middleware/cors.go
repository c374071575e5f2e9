package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware 只允许配置中的前端来源，允许携带凭据
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = allowedOrigins
	cfg.AllowMethods = []string{"GET", "HEAD", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	cfg.ExposeHeaders = []string{RequestIDHeader}
	cfg.AllowCredentials = true
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}
