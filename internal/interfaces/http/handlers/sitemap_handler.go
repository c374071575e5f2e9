package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/locus-portfolio/locus-backend/internal/application/services"
	"github.com/locus-portfolio/locus-backend/pkg/utils"
)

// SitemapHandler sitemap.xml与robots.txt
type SitemapHandler struct {
	container *services.ServiceContainer
}

// NewSitemapHandler 创建站点地图处理器
func NewSitemapHandler(container *services.ServiceContainer) *SitemapHandler {
	return &SitemapHandler{container: container}
}

// Sitemap 站点地图
func (h *SitemapHandler) Sitemap(c *gin.Context) {
	body, err := h.container.GetSitemapService().Sitemap(baseURL(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.CacheFor(c, time.Hour)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// RobotsTxt robots.txt
func (h *SitemapHandler) RobotsTxt(c *gin.Context) {
	utils.CacheFor(c, 24*time.Hour)
	c.String(http.StatusOK, h.container.GetSitemapService().RobotsTxt(baseURL(c)))
}

// baseURL 配置了site_url时使用配置，否则从请求推断
func baseURL(c *gin.Context) string {
	if site := strings.TrimSpace(GetConfig(c).Content.SiteURL); site != "" {
		return site
	}
	return utils.RequestBaseURL(c)
}
