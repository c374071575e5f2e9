package errors

import (
	"errors"
	"fmt"
)

// ErrorCode 业务错误码
type ErrorCode string

const (
	ErrorCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrorCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrorCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout            ErrorCode = "TIMEOUT"
	ErrorCodeRateLimit          ErrorCode = "RATE_LIMIT"
	ErrorCodeExternalService    ErrorCode = "EXTERNAL_SERVICE"
)

// ErrNotFound 远端资源不存在（媒体服务返回404）
var ErrNotFound = errors.New("resource not found")

// ServiceError 业务错误
type ServiceError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *ServiceError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// NewServiceError 创建业务错误
func NewServiceError(code ErrorCode, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithCause 创建带原因的业务错误
func NewServiceErrorWithCause(code ErrorCode, message string, cause error) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewServiceErrorWithDetails 创建带详情的业务错误
func NewServiceErrorWithDetails(code ErrorCode, message string, details map[string]any) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// MalformedResourceError 媒体服务返回的单个条目缺少必需字段
// 只在归一化阶段出现，调用方跳过该条目，不会向上层传播
type MalformedResourceError struct {
	Field string
	Raw   map[string]any
}

func (e *MalformedResourceError) Error() string {
	return fmt.Sprintf("malformed media resource: missing %s", e.Field)
}

// ExternalServiceError 远端媒体服务调用失败
type ExternalServiceError struct {
	Op         string
	Path       string
	StatusCode int
	Cause      error
}

func (e *ExternalServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("media service %s %q failed with status %d: %v", e.Op, e.Path, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("media service %s %q failed: %v", e.Op, e.Path, e.Cause)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Cause
}

// IsNotFound 判断错误链中是否包含ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// AsExternal 从错误链中提取ExternalServiceError
func AsExternal(err error) (*ExternalServiceError, bool) {
	var ext *ExternalServiceError
	if errors.As(err, &ext) {
		return ext, true
	}
	return nil, false
}
