package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"video-service/internal/api/middleware"
	"video-service/internal/domain/entities"
	"video-service/internal/services"

	"github.com/gin-gonic/gin"
)

// VideosHandler 处理视频相关API请求
type VideosHandler struct {
	videoService *services.VideoService
}

// NewVideosHandler 创建新的视频处理器
func NewVideosHandler(videoService *services.VideoService) *VideosHandler {
	return &VideosHandler{
		videoService: videoService,
	}
}

// UploadRequest 申请预签名上传地址
func (h *VideosHandler) UploadRequest(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	var dto entities.CreateVideoDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	resp, err := h.videoService.CreateUploadRequest(userID, dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UploadComplete 确认上传完成，触发转码
func (h *VideosHandler) UploadComplete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	var dto entities.UploadCompleteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	video, err := h.videoService.ConfirmUpload(userID, dto.VideoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// FindAll 获取当前用户的视频列表
func (h *VideosHandler) FindAll(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	// 分页参数
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	videos, err := h.videoService.FindAll(userID, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": videos,
		"page":  page,
		"limit": limit,
	})
}

// FindOne 获取单个视频详情
func (h *VideosHandler) FindOne(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	videoID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	video, err := h.videoService.FindOne(userID, videoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// Remove 删除视频
func (h *VideosHandler) Remove(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	videoID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.videoService.Remove(userID, videoID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AttachTag 为视频添加标签
func (h *VideosHandler) AttachTag(c *gin.Context) {
	h.updateRelation(c, "tagId", h.videoService.AttachTag)
}

// DetachTag 移除视频的标签
func (h *VideosHandler) DetachTag(c *gin.Context) {
	h.updateRelation(c, "tagId", h.videoService.DetachTag)
}

// AttachCategory 为视频添加分类
func (h *VideosHandler) AttachCategory(c *gin.Context) {
	h.updateRelation(c, "categoryId", h.videoService.AttachCategory)
}

// DetachCategory 移除视频的分类
func (h *VideosHandler) DetachCategory(c *gin.Context) {
	h.updateRelation(c, "categoryId", h.videoService.DetachCategory)
}

// updateRelation 处理标签与分类的挂载和移除
func (h *VideosHandler) updateRelation(c *gin.Context, paramName string, op func(ownerID, videoID, relID int64) error) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	videoID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	relID, err := parseIDParam(c, paramName)
	if err != nil {
		return
	}

	if err := op(userID, videoID, relID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseIDParam 解析路径中的整数ID，解析失败时直接写入错误响应
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID参数: " + name})
		return 0, fmt.Errorf("无效的ID参数: %s", name)
	}
	return id, nil
}
