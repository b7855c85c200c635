package handlers

import (
	"net/http"

	"video-service/internal/domain/entities"
	"video-service/internal/services"

	"github.com/gin-gonic/gin"
)

// CategoriesHandler 处理分类相关API请求
type CategoriesHandler struct {
	taxonomyService *services.TaxonomyService
}

// NewCategoriesHandler 创建新的分类处理器
func NewCategoriesHandler(taxonomyService *services.TaxonomyService) *CategoriesHandler {
	return &CategoriesHandler{
		taxonomyService: taxonomyService,
	}
}

// Create 创建分类
func (h *CategoriesHandler) Create(c *gin.Context) {
	var dto entities.CreateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	category, err := h.taxonomyService.CreateCategory(dto.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// FindAll 获取全部分类
func (h *CategoriesHandler) FindAll(c *gin.Context) {
	categories, err := h.taxonomyService.ListCategories()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// FindOne 按ID获取分类
func (h *CategoriesHandler) FindOne(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	category, err := h.taxonomyService.GetCategory(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// Remove 删除分类
func (h *CategoriesHandler) Remove(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.taxonomyService.DeleteCategory(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
