package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locus-portfolio/locus-backend/internal/application/services"
)

// BlogHandler 博客处理器
type BlogHandler struct {
	container *services.ServiceContainer
}

// NewBlogHandler 创建博客处理器
func NewBlogHandler(container *services.ServiceContainer) *BlogHandler {
	return &BlogHandler{container: container}
}

// ListPosts 文章列表
// @Summary 文章列表
// @Description 全部文章摘要，按日期倒序
// @Tags 博客
// @Produce json
// @Success 200 {array} content.BlogPostSummary
// @Router /blog [get]
func (h *BlogHandler) ListPosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.container.GetBlogService().ListPosts())
}

// ListTags 标签列表
// @Summary 标签列表
// @Tags 博客
// @Produce json
// @Success 200 {array} string
// @Router /blog/tags [get]
func (h *BlogHandler) ListTags(c *gin.Context) {
	c.JSON(http.StatusOK, h.container.GetBlogService().Tags())
}

// PostsByTag 按标签筛选
// @Summary 按标签筛选文章
// @Tags 博客
// @Produce json
// @Param tag path string true "标签，不区分大小写"
// @Success 200 {array} content.BlogPostSummary
// @Router /blog/tag/{tag} [get]
func (h *BlogHandler) PostsByTag(c *gin.Context) {
	c.JSON(http.StatusOK, h.container.GetBlogService().PostsByTag(c.Param("tag")))
}

// GetPost 文章详情
// @Summary 文章详情
// @Description 返回渲染为HTML的完整文章
// @Tags 博客
// @Produce json
// @Param slug path string true "文章slug"
// @Success 200 {object} content.BlogPost
// @Failure 404 {object} utils.ErrorResponse "文章不存在"
// @Router /blog/{slug} [get]
func (h *BlogHandler) GetPost(c *gin.Context) {
	post, err := h.container.GetBlogService().GetPost(c.Param("slug"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, post)
}
