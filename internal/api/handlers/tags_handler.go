package handlers

import (
	"net/http"

	"video-service/internal/domain/entities"
	"video-service/internal/services"

	"github.com/gin-gonic/gin"
)

// TagsHandler 处理标签相关API请求
type TagsHandler struct {
	taxonomyService *services.TaxonomyService
}

// NewTagsHandler 创建新的标签处理器
func NewTagsHandler(taxonomyService *services.TaxonomyService) *TagsHandler {
	return &TagsHandler{
		taxonomyService: taxonomyService,
	}
}

// Create 创建标签
func (h *TagsHandler) Create(c *gin.Context) {
	var dto entities.CreateTagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	tag, err := h.taxonomyService.CreateTag(dto.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tag)
}

// FindAll 获取全部标签
func (h *TagsHandler) FindAll(c *gin.Context) {
	tags, err := h.taxonomyService.ListTags()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}

// FindOne 按ID获取标签
func (h *TagsHandler) FindOne(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	tag, err := h.taxonomyService.GetTag(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tag)
}

// Remove 删除标签
func (h *TagsHandler) Remove(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.taxonomyService.DeleteTag(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
