package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/locus-portfolio/locus-backend/internal/application/services"
	apperrors "github.com/locus-portfolio/locus-backend/internal/shared/errors"
)

// MediaHandler 媒体目录处理器
type MediaHandler struct {
	container *services.ServiceContainer
}

// NewMediaHandler 创建媒体处理器
func NewMediaHandler(container *services.ServiceContainer) *MediaHandler {
	return &MediaHandler{container: container}
}

// GetFolderImages 获取单个目录下的图片
// @Summary 获取目录图片
// @Description 返回媒体服务中指定目录下的全部图片，目录为空时返回空数组
// @Tags 媒体
// @Produce json
// @Param folder path string true "目录路径，可包含多级"
// @Success 200 {array} entities.MediaResource
// @Failure 400 {object} utils.ErrorResponse "目录路径为空"
// @Failure 500 {object} utils.ErrorResponse "媒体服务错误"
// @Router /cloudinary/images/{folder} [get]
func (h *MediaHandler) GetFolderImages(c *gin.Context) {
	folder := strings.Trim(c.Param("folder"), "/")
	if folder == "" {
		_ = c.Error(apperrors.NewServiceError(apperrors.ErrorCodeInvalidRequest, "folder path is required"))
		return
	}

	resources, err := h.container.GetMediaService().ResolveFolder(c.Request.Context(), folder)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resources)
}

// GetPhotography 获取摄影集合
// @Summary 获取摄影集合
// @Description 聚合集合根目录下所有"<年份>_<主题>"相册，按年份和创建时间倒序
// @Tags 媒体
// @Produce json
// @Success 200 {array} entities.MediaResource
// @Failure 500 {object} utils.ErrorResponse "媒体服务错误"
// @Router /cloudinary/photography [get]
func (h *MediaHandler) GetPhotography(c *gin.Context) {
	mediaService := h.container.GetMediaService()
	resources, err := mediaService.ResolveCollection(c.Request.Context(), mediaService.CollectionRoot())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resources)
}
