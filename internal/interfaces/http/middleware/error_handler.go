package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/locus-portfolio/locus-backend/internal/shared/errors"
	"github.com/locus-portfolio/locus-backend/pkg/logger"
	"github.com/locus-portfolio/locus-backend/pkg/utils"
)

// ErrorHandlerMiddleware 统一错误处理中间件
// handler通过c.Error设置错误，这里转换为合适的HTTP响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var serviceErr *apperrors.ServiceError
		if errors.As(err, &serviceErr) {
			status := mapErrorCodeToHTTPStatus(serviceErr.Code)
			if status >= http.StatusInternalServerError {
				logger.Error("Request failed", "path", c.Request.URL.Path, "code", serviceErr.Code, "error", err)
			}
			utils.AbortWithError(c, status, string(serviceErr.Code), serviceErr.Message, serviceErr.Details)
			return
		}

		// 媒体服务失败统一为500，不向客户端暴露远端细节
		if ext, ok := apperrors.AsExternal(err); ok {
			logger.Error("Media service request failed",
				"path", c.Request.URL.Path,
				"operation", ext.Op,
				"target", ext.Path,
				"status", ext.StatusCode,
				"error", ext.Cause)
			utils.AbortWithError(c, http.StatusInternalServerError, string(apperrors.ErrorCodeExternalService),
				"media service request failed", nil)
			return
		}

		logger.Error("Unhandled request error", "path", c.Request.URL.Path, "error", err)
		utils.AbortWithError(c, http.StatusInternalServerError, string(apperrors.ErrorCodeInternalError),
			"internal server error", nil)
	}
}

// mapErrorCodeToHTTPStatus 将业务错误码映射到HTTP状态码
func mapErrorCodeToHTTPStatus(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrorCodeInvalidRequest:
		return http.StatusBadRequest
	case apperrors.ErrorCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrorCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrorCodeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RecoverMiddleware 恢复中间件 - 捕获panic并转换为500错误
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered", "path", c.Request.URL.Path, "panic", r, "stack", string(debug.Stack()))
				utils.AbortWithError(c, http.StatusInternalServerError, string(apperrors.ErrorCodeInternalError),
					"internal server error", nil)
			}
		}()
		c.Next()
	}
}
