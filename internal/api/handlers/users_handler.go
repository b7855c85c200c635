package handlers

import (
	"net/http"

	"video-service/internal/api/middleware"
	"video-service/internal/domain/entities"
	"video-service/internal/services"

	"github.com/gin-gonic/gin"
)

// UsersHandler 处理用户资料请求
type UsersHandler struct {
	userService *services.UserService
}

// NewUsersHandler 创建新的用户处理器
func NewUsersHandler(userService *services.UserService) *UsersHandler {
	return &UsersHandler{
		userService: userService,
	}
}

// Me 获取当前登录用户信息
func (h *UsersHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe 更新当前登录用户资料
func (h *UsersHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	var dto entities.UpdateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(userID, dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
