package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/locus-portfolio/locus-backend/internal/application/services"
	"github.com/locus-portfolio/locus-backend/internal/infrastructure/config"
)

// GetContainer 从gin.Context中获取ServiceContainer
// 这个方法假设Container已经通过中间件注入到Context中
func GetContainer(c *gin.Context) *services.ServiceContainer {
	container, exists := c.Get("container")
	if !exists {
		panic("ServiceContainer not found in context. Did you forget to use ContainerMiddleware?")
	}
	return container.(*services.ServiceContainer)
}

// GetConfig 从gin.Context中获取Config
func GetConfig(c *gin.Context) *config.Config {
	return GetContainer(c).GetConfig()
}
