package services

import (
	"errors"

	"video-service/internal/domain/entities"
	"video-service/internal/storage"
)

// TaxonomyService 标签与分类服务
type TaxonomyService struct {
	tags       *storage.TagRepository
	categories *storage.CategoryRepository
}

// NewTaxonomyService 创建新的标签与分类服务
func NewTaxonomyService(tags *storage.TagRepository, categories *storage.CategoryRepository) *TaxonomyService {
	return &TaxonomyService{
		tags:       tags,
		categories: categories,
	}
}

// CreateTag 创建标签
func (s *TaxonomyService) CreateTag(name string) (entities.Tag, error) {
	tag, err := s.tags.Create(name)
	if err != nil {
		return entities.Tag{}, wrapTaxonomyError("标签", err)
	}
	return tag, nil
}

// ListTags 获取全部标签
func (s *TaxonomyService) ListTags() ([]entities.Tag, error) {
	tags, err := s.tags.FindAll()
	if err != nil {
		return nil, wrapTaxonomyError("标签", err)
	}
	if tags == nil {
		tags = []entities.Tag{}
	}
	return tags, nil
}

// GetTag 按ID获取标签
func (s *TaxonomyService) GetTag(id int64) (entities.Tag, error) {
	tag, err := s.tags.FindByID(id)
	if err != nil {
		return entities.Tag{}, wrapTaxonomyError("标签", err)
	}
	return tag, nil
}

// DeleteTag 删除标签
func (s *TaxonomyService) DeleteTag(id int64) error {
	if err := s.tags.Delete(id); err != nil {
		return wrapTaxonomyError("标签", err)
	}
	return nil
}

// CreateCategory 创建分类
func (s *TaxonomyService) CreateCategory(name string) (entities.Category, error) {
	category, err := s.categories.Create(name)
	if err != nil {
		return entities.Category{}, wrapTaxonomyError("分类", err)
	}
	return category, nil
}

// ListCategories 获取全部分类
func (s *TaxonomyService) ListCategories() ([]entities.Category, error) {
	categories, err := s.categories.FindAll()
	if err != nil {
		return nil, wrapTaxonomyError("分类", err)
	}
	if categories == nil {
		categories = []entities.Category{}
	}
	return categories, nil
}

// GetCategory 按ID获取分类
func (s *TaxonomyService) GetCategory(id int64) (entities.Category, error) {
	category, err := s.categories.FindByID(id)
	if err != nil {
		return entities.Category{}, wrapTaxonomyError("分类", err)
	}
	return category, nil
}

// DeleteCategory 删除分类
func (s *TaxonomyService) DeleteCategory(id int64) error {
	if err := s.categories.Delete(id); err != nil {
		return wrapTaxonomyError("分类", err)
	}
	return nil
}

// wrapTaxonomyError 将仓储错误转换为服务错误
func wrapTaxonomyError(kind string, err error) error {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return &ServiceError{
			Type:    ErrTypeNotFound,
			Code:    ErrCodeResourceNotFound,
			Message: kind + "不存在",
		}
	case errors.Is(err, entities.ErrAlreadyExists):
		return &ServiceError{
			Type:    ErrTypeConflict,
			Code:    ErrCodeResourceExists,
			Message: kind + "已存在",
		}
	default:
		return &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: kind + "操作失败",
			Err:     err,
		}
	}
}
