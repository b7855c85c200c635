package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"video-service/internal/domain/entities"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// VideoRepository 视频存储库
type VideoRepository struct {
	DB *sqlx.DB
}

// NewVideoRepository 创建视频存储库
func NewVideoRepository(db *sqlx.DB) *VideoRepository {
	return &VideoRepository{
		DB: db,
	}
}

// Create 创建视频记录，初始状态为pending
func (r *VideoRepository) Create(video entities.Video) (entities.Video, error) {
	query := `
		INSERT INTO videos (
			owner_id, title, description, file_key, file_size, mime_type,
			status, hls_url, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING *
	`

	now := time.Now()
	var result entities.Video
	err := r.DB.QueryRowx(
		query,
		video.OwnerID,
		video.Title,
		video.Description,
		video.FileKey,
		video.FileSize,
		video.MimeType,
		video.Status,
		video.HLSURL,
		now,
		now,
	).StructScan(&result)

	if err != nil {
		return entities.Video{}, fmt.Errorf("创建视频记录失败: %w", err)
	}

	return result, nil
}

// FindByID 通过ID查找视频
func (r *VideoRepository) FindByID(id int64) (entities.Video, error) {
	var video entities.Video

	query := "SELECT * FROM videos WHERE id = $1"
	if err := r.DB.Get(&video, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.Video{}, entities.ErrNotFound
		}
		return entities.Video{}, err
	}

	return video, nil
}

// FindByOwner 获取用户的视频列表
func (r *VideoRepository) FindByOwner(ownerID int64, page, limit int) ([]entities.Video, error) {
	var videos []entities.Video

	offset := (page - 1) * limit
	query := `
		SELECT * FROM videos
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.DB.Select(&videos, query, ownerID, limit, offset); err != nil {
		return nil, fmt.Errorf("获取视频列表失败: %w", err)
	}

	return videos, nil
}

// Delete 删除视频记录
func (r *VideoRepository) Delete(id int64) error {
	result, err := r.DB.Exec("DELETE FROM videos WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("删除视频记录失败: %w", err)
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

// UpdateStatus 更新视频状态
func (r *VideoRepository) UpdateStatus(id int64, status entities.VideoStatus) error {
	query := `
		UPDATE videos
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := r.DB.Exec(query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("更新视频状态失败: %w", err)
	}

	return nil
}

// UpdateProcessed 转码成功的终态更新：状态与HLS地址一次写入
func (r *VideoRepository) UpdateProcessed(id int64, hlsURL string) error {
	query := `
		UPDATE videos
		SET status = $1, hls_url = $2, updated_at = $3
		WHERE id = $4
	`

	_, err := r.DB.Exec(query, entities.VideoStatusProcessed, hlsURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("更新视频处理结果失败: %w", err)
	}

	return nil
}

// ListStaleProcessing 查找卡在processing超过maxAge的视频ID
func (r *VideoRepository) ListStaleProcessing(maxAge time.Duration) ([]int64, error) {
	var ids []int64

	query := `
		SELECT id FROM videos
		WHERE status = $1 AND updated_at < $2
		ORDER BY id
	`
	cutoff := time.Now().Add(-maxAge)
	if err := r.DB.Select(&ids, query, entities.VideoStatusProcessing, cutoff); err != nil {
		return nil, fmt.Errorf("查询卡死转码任务失败: %w", err)
	}

	return ids, nil
}

// AddTag 给视频添加标签，重复添加不报错
func (r *VideoRepository) AddTag(videoID, tagID int64) error {
	query := `
		INSERT INTO video_tags (video_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := r.DB.Exec(query, videoID, tagID); err != nil {
		// 外键违例说明标签不存在
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return entities.ErrNotFound
		}
		return fmt.Errorf("添加视频标签失败: %w", err)
	}
	return nil
}

// RemoveTag 移除视频标签
func (r *VideoRepository) RemoveTag(videoID, tagID int64) error {
	query := "DELETE FROM video_tags WHERE video_id = $1 AND tag_id = $2"
	if _, err := r.DB.Exec(query, videoID, tagID); err != nil {
		return fmt.Errorf("移除视频标签失败: %w", err)
	}
	return nil
}

// GetTags 获取视频的所有标签
func (r *VideoRepository) GetTags(videoID int64) ([]entities.Tag, error) {
	var tags []entities.Tag

	query := `
		SELECT t.id, t.name FROM tags t
		JOIN video_tags vt ON vt.tag_id = t.id
		WHERE vt.video_id = $1
		ORDER BY t.id
	`
	if err := r.DB.Select(&tags, query, videoID); err != nil {
		return nil, fmt.Errorf("获取视频标签失败: %w", err)
	}

	return tags, nil
}

// AddCategory 给视频添加分类，重复添加不报错
func (r *VideoRepository) AddCategory(videoID, categoryID int64) error {
	query := `
		INSERT INTO video_categories (video_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := r.DB.Exec(query, videoID, categoryID); err != nil {
		// 外键违例说明分类不存在
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return entities.ErrNotFound
		}
		return fmt.Errorf("添加视频分类失败: %w", err)
	}
	return nil
}

// RemoveCategory 移除视频分类
func (r *VideoRepository) RemoveCategory(videoID, categoryID int64) error {
	query := "DELETE FROM video_categories WHERE video_id = $1 AND category_id = $2"
	if _, err := r.DB.Exec(query, videoID, categoryID); err != nil {
		return fmt.Errorf("移除视频分类失败: %w", err)
	}
	return nil
}

// GetCategories 获取视频的所有分类
func (r *VideoRepository) GetCategories(videoID int64) ([]entities.Category, error) {
	var categories []entities.Category

	query := `
		SELECT c.id, c.name FROM categories c
		JOIN video_categories vc ON vc.category_id = c.id
		WHERE vc.video_id = $1
		ORDER BY c.id
	`
	if err := r.DB.Select(&categories, query, videoID); err != nil {
		return nil, fmt.Errorf("获取视频分类失败: %w", err)
	}

	return categories, nil
}
