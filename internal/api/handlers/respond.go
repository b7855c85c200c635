package handlers

import (
	"errors"
	"net/http"

	"video-service/internal/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError 将服务错误转换为HTTP响应
func respondServiceError(c *gin.Context, err error) {
	var serviceError *services.ServiceError
	if errors.As(err, &serviceError) {
		c.JSON(getStatusCodeForError(serviceError), gin.H{
			"error": serviceError.Message,
			"code":  serviceError.Code,
			"type":  serviceError.Type,
		})
		return
	}

	// 未知错误
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": err.Error(),
		"code":  "unknown_error",
	})
}

// getStatusCodeForError 根据错误类型返回适当的HTTP状态码
func getStatusCodeForError(err *services.ServiceError) int {
	switch err.Type {
	case services.ErrTypeValidation:
		return http.StatusBadRequest
	case services.ErrTypeNotFound:
		return http.StatusNotFound
	case services.ErrTypeConflict:
		// 资源重名按参数错误处理，状态冲突才返回409
		if err.Code == services.ErrCodeInvalidStatus {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	case services.ErrTypeUnauthorized:
		if err.Code == services.ErrCodeBadCredentials {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	case services.ErrTypeDatabase, services.ErrTypeStorage, services.ErrTypeTranscode:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
