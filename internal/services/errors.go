package services

import "fmt"

// 定义服务错误类型和代码
const (
	// 错误类型
	ErrTypeDatabase     = "database_error"
	ErrTypeStorage      = "storage_error"
	ErrTypeValidation   = "validation_error"
	ErrTypeNotFound     = "not_found_error"
	ErrTypeConflict     = "conflict_error"
	ErrTypeTranscode    = "transcode_error"
	ErrTypeUnauthorized = "unauthorized_error"

	// 错误代码
	ErrCodeDBQuery          = "db_query_failed"
	ErrCodePresignFailed    = "presign_failed"
	ErrCodeInvalidInput     = "invalid_input"
	ErrCodeFileTooLarge     = "file_too_large"
	ErrCodeUnsupportedMime  = "unsupported_media_type"
	ErrCodeResourceExists   = "resource_already_exists"
	ErrCodeResourceNotFound = "resource_not_found"
	ErrCodeInvalidStatus    = "invalid_status_transition"
	ErrCodeEventPublish     = "event_publish_failed"
	ErrCodeUnauthorized     = "unauthorized_access"
	ErrCodeBadCredentials   = "bad_credentials"
)

// ServiceError 服务错误结构
type ServiceError struct {
	Type    string // 错误类型
	Code    string // 错误代码
	Message string // 错误消息
	Err     error  // 原始错误
}

// Error 实现error接口
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %s", e.Type, e.Code, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s - %s", e.Type, e.Code, e.Message)
}

// Unwrap 返回原始错误
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is 用于错误比较
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}
