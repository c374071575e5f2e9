package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/locus-portfolio/locus-backend/internal/application/services"
)

// ContainerKey ServiceContainer在gin.Context中的键
const ContainerKey = "container"

// ContainerMiddleware 将ServiceContainer注入到gin.Context中，供handlers使用
func ContainerMiddleware(container *services.ServiceContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContainerKey, container)
		c.Next()
	}
}
