package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 统一错误响应体
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// AbortWithError 写入错误响应并中止后续handler
func AbortWithError(c *gin.Context, httpStatus int, code, message string, details map[string]any) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// CacheFor 设置公共缓存时长
func CacheFor(c *gin.Context, d time.Duration) {
	c.Header("Cache-Control", "public, max-age="+strconv.Itoa(int(d.Seconds())))
}

// RequestBaseURL 根据请求推断站点根地址，优先使用X-Forwarded-Proto
func RequestBaseURL(c *gin.Context) string {
	scheme := c.GetHeader("X-Forwarded-Proto")
	if scheme == "" {
		scheme = "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
	}
	// 代理链可能传入逗号分隔的多个值
	if i := strings.IndexByte(scheme, ','); i >= 0 {
		scheme = strings.TrimSpace(scheme[:i])
	}
	return scheme + "://" + c.Request.Host
}
