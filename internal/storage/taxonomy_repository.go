package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"video-service/internal/domain/entities"

	"github.com/jmoiron/sqlx"
)

// TagRepository 标签存储库
type TagRepository struct {
	DB *sqlx.DB
}

// NewTagRepository 创建标签存储库
func NewTagRepository(db *sqlx.DB) *TagRepository {
	return &TagRepository{
		DB: db,
	}
}

// Create 创建标签
func (r *TagRepository) Create(name string) (entities.Tag, error) {
	exists, err := r.NameExists(name)
	if err != nil {
		return entities.Tag{}, err
	}
	if exists {
		return entities.Tag{}, entities.ErrAlreadyExists
	}

	var tag entities.Tag
	query := "INSERT INTO tags (name) VALUES ($1) RETURNING *"
	if err := r.DB.QueryRowx(query, name).StructScan(&tag); err != nil {
		return entities.Tag{}, fmt.Errorf("创建标签失败: %w", err)
	}

	return tag, nil
}

// FindAll 获取所有标签
func (r *TagRepository) FindAll() ([]entities.Tag, error) {
	var tags []entities.Tag
	if err := r.DB.Select(&tags, "SELECT * FROM tags ORDER BY id"); err != nil {
		return nil, fmt.Errorf("获取标签列表失败: %w", err)
	}
	return tags, nil
}

// FindByID 通过ID查找标签
func (r *TagRepository) FindByID(id int64) (entities.Tag, error) {
	var tag entities.Tag
	if err := r.DB.Get(&tag, "SELECT * FROM tags WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.Tag{}, entities.ErrNotFound
		}
		return entities.Tag{}, err
	}
	return tag, nil
}

// Delete 删除标签
func (r *TagRepository) Delete(id int64) error {
	result, err := r.DB.Exec("DELETE FROM tags WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("删除标签失败: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return entities.ErrNotFound
	}

	return nil
}

// NameExists 检查标签名是否已存在
func (r *TagRepository) NameExists(name string) (bool, error) {
	var count int
	if err := r.DB.Get(&count, "SELECT COUNT(*) FROM tags WHERE name = $1", name); err != nil {
		return false, err
	}
	return count > 0, nil
}

// CategoryRepository 分类存储库
type CategoryRepository struct {
	DB *sqlx.DB
}

// NewCategoryRepository 创建分类存储库
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

// Create 创建分类
func (r *CategoryRepository) Create(name string) (entities.Category, error) {
	exists, err := r.NameExists(name)
	if err != nil {
		return entities.Category{}, err
	}
	if exists {
		return entities.Category{}, entities.ErrAlreadyExists
	}

	var category entities.Category
	query := "INSERT INTO categories (name) VALUES ($1) RETURNING *"
	if err := r.DB.QueryRowx(query, name).StructScan(&category); err != nil {
		return entities.Category{}, fmt.Errorf("创建分类失败: %w", err)
	}

	return category, nil
}

// FindAll 获取所有分类
func (r *CategoryRepository) FindAll() ([]entities.Category, error) {
	var categories []entities.Category
	if err := r.DB.Select(&categories, "SELECT * FROM categories ORDER BY id"); err != nil {
		return nil, fmt.Errorf("获取分类列表失败: %w", err)
	}
	return categories, nil
}

// FindByID 通过ID查找分类
func (r *CategoryRepository) FindByID(id int64) (entities.Category, error) {
	var category entities.Category
	if err := r.DB.Get(&category, "SELECT * FROM categories WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.Category{}, entities.ErrNotFound
		}
		return entities.Category{}, err
	}
	return category, nil
}

// Delete 删除分类
func (r *CategoryRepository) Delete(id int64) error {
	result, err := r.DB.Exec("DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("删除分类失败: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return entities.ErrNotFound
	}

	return nil
}

// NameExists 检查分类名是否已存在
func (r *CategoryRepository) NameExists(name string) (bool, error) {
	var count int
	if err := r.DB.Get(&count, "SELECT COUNT(*) FROM categories WHERE name = $1", name); err != nil {
		return false, err
	}
	return count > 0, nil
}
