package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locus-portfolio/locus-backend/internal/application/services"
	apperrors "github.com/locus-portfolio/locus-backend/internal/shared/errors"
)

// DataHandler 静态数据处理器
type DataHandler struct {
	container *services.ServiceContainer
}

// NewDataHandler 创建数据处理器
func NewDataHandler(container *services.ServiceContainer) *DataHandler {
	return &DataHandler{container: container}
}

// GetDataFile 获取数据文件
// @Summary 获取数据文件
// @Description 读取允许列表中的JSON数据文件；work.json返回不含图片的形式
// @Tags 数据
// @Produce json
// @Param fileName path string true "文件名，如projects.json"
// @Success 200 {object} interface{}
// @Failure 403 {object} utils.ErrorResponse "文件不在允许列表"
// @Failure 404 {object} utils.ErrorResponse "文件不存在"
// @Router /data/{fileName} [get]
func (h *DataHandler) GetDataFile(c *gin.Context) {
	data, err := h.container.GetDataService().GetDataFile(c.Param("fileName"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetWorkData 获取工作经历
// @Summary 获取工作经历
// @Description 返回work.json，images与imageFolders为空数组
// @Tags 数据
// @Produce json
// @Success 200 {array} object
// @Router /data/work [get]
func (h *DataHandler) GetWorkData(c *gin.Context) {
	data, err := h.container.GetDataService().GetWorkData()
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetWorkItemImages 获取工作项图片
// @Summary 获取工作项图片
// @Description 返回工作项的静态图片与媒体目录中的图片URL
// @Tags 数据
// @Produce json
// @Param title path string true "工作项标题"
// @Success 200 {array} string
// @Failure 404 {object} utils.ErrorResponse "工作项不存在"
// @Router /data/work/{title}/images [get]
func (h *DataHandler) GetWorkItemImages(c *gin.Context) {
	title := c.Param("title")
	if title == "" {
		_ = c.Error(apperrors.NewServiceError(apperrors.ErrorCodeInvalidRequest, "work item title is required"))
		return
	}

	images, err := h.container.GetDataService().GetWorkItemImages(c.Request.Context(), title)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, images)
}
