package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootMessage 根路径返回的文本
const RootMessage = "Locus Backend is running!"

// HealthCheck 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态
// @Tags 健康检查
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Root 根路径
func Root(c *gin.Context) {
	c.String(http.StatusOK, RootMessage)
}
