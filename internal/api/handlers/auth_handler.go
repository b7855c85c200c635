package handlers

import (
	"net/http"

	"video-service/internal/domain/entities"
	"video-service/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler 处理注册与登录请求
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler 创建新的认证处理器
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// Register 注册新用户
func (h *AuthHandler) Register(c *gin.Context) {
	var dto entities.CreateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	user, err := h.userService.Register(dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login 用户名密码登录，返回JWT令牌
func (h *AuthHandler) Login(c *gin.Context) {
	var dto entities.LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	token, err := h.userService.Authenticate(dto.Username, dto.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entities.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
