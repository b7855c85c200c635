package services

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"video-service/internal/config"
	"video-service/internal/domain/entities"
	"video-service/internal/messaging"
)

// 允许上传的视频格式
var allowedMimeTypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
}

// VideoStore 视频仓储接口
type VideoStore interface {
	Create(video entities.Video) (entities.Video, error)
	FindByID(id int64) (entities.Video, error)
	FindByOwner(ownerID int64, page, limit int) ([]entities.Video, error)
	Delete(id int64) error
	UpdateStatus(id int64, status entities.VideoStatus) error
	AddTag(videoID, tagID int64) error
	RemoveTag(videoID, tagID int64) error
	GetTags(videoID int64) ([]entities.Tag, error)
	AddCategory(videoID, categoryID int64) error
	RemoveCategory(videoID, categoryID int64) error
	GetCategories(videoID int64) ([]entities.Category, error)
}

// UploadSigner 对象存储签名接口
type UploadSigner interface {
	PresignedUploadPost(objectKey, mimeType string, fileSize int64) (string, map[string]string, error)
	GetFileURL(objectKey string) (string, error)
	DeleteFile(objectKey string) error
}

// EventPublisher 事件发布接口
type EventPublisher interface {
	SendTranscodeRequested(payload messaging.TranscodeRequestedPayload) error
}

// VideoService 视频服务
type VideoService struct {
	videos    VideoStore
	signer    UploadSigner
	publisher EventPublisher
	cfg       *config.Config
}

// NewVideoService 创建新的视频服务
func NewVideoService(cfg *config.Config, videos VideoStore, signer UploadSigner, publisher EventPublisher) *VideoService {
	return &VideoService{
		videos:    videos,
		signer:    signer,
		publisher: publisher,
		cfg:       cfg,
	}
}

// buildFileKey 生成对象存储文件Key: <ownerID>/<标题下划线>_<纳秒时间戳><扩展名>
func buildFileKey(ownerID int64, title, fileName string) string {
	safeTitle := strings.ReplaceAll(title, " ", "_")
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("%d/%s_%d%s", ownerID, safeTitle, time.Now().UnixNano(), ext)
}

// CreateUploadRequest 创建视频记录并返回预签名上传表单
func (s *VideoService) CreateUploadRequest(ownerID int64, dto entities.CreateVideoDTO) (entities.PresignedPostResponse, error) {
	// 参数验证
	if dto.FileSize <= 0 {
		return entities.PresignedPostResponse{}, &ServiceError{
			Type:    ErrTypeValidation,
			Code:    ErrCodeInvalidInput,
			Message: "文件大小必须大于0",
		}
	}
	if dto.FileSize > s.cfg.Upload.MaxFileSize {
		return entities.PresignedPostResponse{}, &ServiceError{
			Type:    ErrTypeValidation,
			Code:    ErrCodeFileTooLarge,
			Message: fmt.Sprintf("文件大小超过限制: %d字节", s.cfg.Upload.MaxFileSize),
		}
	}
	if !allowedMimeTypes[dto.MimeType] {
		return entities.PresignedPostResponse{}, &ServiceError{
			Type:    ErrTypeValidation,
			Code:    ErrCodeUnsupportedMime,
			Message: fmt.Sprintf("不支持的文件类型: %s", dto.MimeType),
		}
	}

	fileKey := buildFileKey(ownerID, dto.Title, dto.FileName)

	// 创建待上传状态的视频记录
	video := entities.Video{
		OwnerID:     ownerID,
		Title:       dto.Title,
		Description: dto.Description,
		FileKey:     fileKey,
		FileSize:    dto.FileSize,
		MimeType:    dto.MimeType,
		Status:      entities.VideoStatusPending,
	}

	created, err := s.videos.Create(video)
	if err != nil {
		return entities.PresignedPostResponse{}, &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "创建视频记录失败",
			Err:     err,
		}
	}

	// 生成预签名上传表单
	url, fields, err := s.signer.PresignedUploadPost(fileKey, dto.MimeType, dto.FileSize)
	if err != nil {
		// 签名失败则回滚已创建的记录
		if delErr := s.videos.Delete(created.ID); delErr != nil {
			log.Printf("回滚视频记录失败: ID=%d, 错误=%v", created.ID, delErr)
		}
		return entities.PresignedPostResponse{}, &ServiceError{
			Type:    ErrTypeStorage,
			Code:    ErrCodePresignFailed,
			Message: "生成上传地址失败",
			Err:     err,
		}
	}

	return entities.PresignedPostResponse{
		URL:     url,
		Fields:  fields,
		VideoID: created.ID,
	}, nil
}

// ConfirmUpload 确认上传完成并发布转码请求事件
func (s *VideoService) ConfirmUpload(ownerID, videoID int64) (entities.Video, error) {
	video, err := s.findOwned(ownerID, videoID)
	if err != nil {
		return entities.Video{}, err
	}

	// 确认接口只接受pending，uploaded视为重复确认仅重发事件
	// processing回到uploaded的边属于清扫回收，不开放给客户端，否则会与执行中的任务并发转码
	switch video.Status {
	case entities.VideoStatusPending:
		if err := s.videos.UpdateStatus(video.ID, entities.VideoStatusUploaded); err != nil {
			return entities.Video{}, &ServiceError{
				Type:    ErrTypeDatabase,
				Code:    ErrCodeDBQuery,
				Message: "更新视频状态失败",
				Err:     err,
			}
		}
		video.Status = entities.VideoStatusUploaded
	case entities.VideoStatusUploaded:
		// 状态不变
	default:
		return entities.Video{}, &ServiceError{
			Type:    ErrTypeConflict,
			Code:    ErrCodeInvalidStatus,
			Message: "当前状态不允许确认上传",
		}
	}

	// 发布转码请求事件
	payload := messaging.TranscodeRequestedPayload{
		VideoID:     video.ID,
		FileKey:     video.FileKey,
		RequestedAt: time.Now().Format(time.RFC3339),
	}
	if err := s.publisher.SendTranscodeRequested(payload); err != nil {
		return entities.Video{}, &ServiceError{
			Type:    ErrTypeTranscode,
			Code:    ErrCodeEventPublish,
			Message: "发布转码请求失败",
			Err:     err,
		}
	}

	return video, nil
}

// FindOne 获取单个视频详情，包含标签与分类
func (s *VideoService) FindOne(ownerID, videoID int64) (entities.VideoResponse, error) {
	video, err := s.findOwned(ownerID, videoID)
	if err != nil {
		return entities.VideoResponse{}, err
	}

	tags, err := s.videos.GetTags(video.ID)
	if err != nil {
		return entities.VideoResponse{}, &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "查询视频标签失败",
			Err:     err,
		}
	}

	categories, err := s.videos.GetCategories(video.ID)
	if err != nil {
		return entities.VideoResponse{}, &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "查询视频分类失败",
			Err:     err,
		}
	}

	resp := toVideoResponse(video, tags, categories)

	// 原始文件的限时播放地址，签名失败不阻塞详情返回
	if fileURL, err := s.signer.GetFileURL(video.FileKey); err != nil {
		log.Printf("获取文件播放地址失败: key=%s, 错误=%v", video.FileKey, err)
	} else {
		resp.FileURL = fileURL
	}

	return resp, nil
}

// FindAll 获取当前用户的视频列表
func (s *VideoService) FindAll(ownerID int64, page, limit int) ([]entities.Video, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	videos, err := s.videos.FindByOwner(ownerID, page, limit)
	if err != nil {
		return nil, &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "获取视频列表失败",
			Err:     err,
		}
	}
	return videos, nil
}

// Remove 删除视频记录及存储文件
func (s *VideoService) Remove(ownerID, videoID int64) error {
	video, err := s.findOwned(ownerID, videoID)
	if err != nil {
		return err
	}

	if err := s.videos.Delete(video.ID); err != nil {
		return &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "删除视频记录失败",
			Err:     err,
		}
	}

	// 存储文件删除失败不阻塞，记录日志即可
	if err := s.signer.DeleteFile(video.FileKey); err != nil {
		log.Printf("删除视频文件失败: key=%s, 错误=%v", video.FileKey, err)
	}

	return nil
}

// AttachTag 为视频添加标签
func (s *VideoService) AttachTag(ownerID, videoID, tagID int64) error {
	if _, err := s.findOwned(ownerID, videoID); err != nil {
		return err
	}
	if err := s.videos.AddTag(videoID, tagID); err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return &ServiceError{
				Type:    ErrTypeNotFound,
				Code:    ErrCodeResourceNotFound,
				Message: "标签不存在",
			}
		}
		return &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "添加标签失败",
			Err:     err,
		}
	}
	return nil
}

// DetachTag 移除视频的标签
func (s *VideoService) DetachTag(ownerID, videoID, tagID int64) error {
	if _, err := s.findOwned(ownerID, videoID); err != nil {
		return err
	}
	if err := s.videos.RemoveTag(videoID, tagID); err != nil {
		return &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "移除标签失败",
			Err:     err,
		}
	}
	return nil
}

// AttachCategory 为视频添加分类
func (s *VideoService) AttachCategory(ownerID, videoID, categoryID int64) error {
	if _, err := s.findOwned(ownerID, videoID); err != nil {
		return err
	}
	if err := s.videos.AddCategory(videoID, categoryID); err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return &ServiceError{
				Type:    ErrTypeNotFound,
				Code:    ErrCodeResourceNotFound,
				Message: "分类不存在",
			}
		}
		return &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "添加分类失败",
			Err:     err,
		}
	}
	return nil
}

// DetachCategory 移除视频的分类
func (s *VideoService) DetachCategory(ownerID, videoID, categoryID int64) error {
	if _, err := s.findOwned(ownerID, videoID); err != nil {
		return err
	}
	if err := s.videos.RemoveCategory(videoID, categoryID); err != nil {
		return &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "移除分类失败",
			Err:     err,
		}
	}
	return nil
}

// findOwned 查询视频并校验归属
func (s *VideoService) findOwned(ownerID, videoID int64) (entities.Video, error) {
	video, err := s.videos.FindByID(videoID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return entities.Video{}, &ServiceError{
				Type:    ErrTypeNotFound,
				Code:    ErrCodeResourceNotFound,
				Message: "视频不存在",
			}
		}
		return entities.Video{}, &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "查询视频失败",
			Err:     err,
		}
	}

	if video.OwnerID != ownerID {
		return entities.Video{}, &ServiceError{
			Type:    ErrTypeUnauthorized,
			Code:    ErrCodeUnauthorized,
			Message: "无权访问该视频",
		}
	}

	return video, nil
}

func toVideoResponse(video entities.Video, tags []entities.Tag, categories []entities.Category) entities.VideoResponse {
	if tags == nil {
		tags = []entities.Tag{}
	}
	if categories == nil {
		categories = []entities.Category{}
	}
	return entities.VideoResponse{
		ID:          video.ID,
		Title:       video.Title,
		Description: video.Description,
		FileKey:     video.FileKey,
		FileSize:    video.FileSize,
		MimeType:    video.MimeType,
		Status:      video.Status,
		HLSURL:      video.HLSURL,
		Tags:        tags,
		Categories:  categories,
		CreatedAt:   video.CreatedAt,
		UpdatedAt:   video.UpdatedAt,
	}
}
