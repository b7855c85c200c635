package entities

import (
	"fmt"
	"time"
)

// 视频处理状态枚举
type VideoStatus string

const (
	VideoStatusPending    VideoStatus = "pending"
	VideoStatusUploaded   VideoStatus = "uploaded"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusProcessed  VideoStatus = "processed"
	VideoStatusFailed     VideoStatus = "failed"
)

// CanTransition 判断状态迁移是否合法
// 状态机: pending -> uploaded -> processing -> processed | failed
// processing -> uploaded 与 failed -> uploaded 仅用于重试（回收卡死任务或人工触发）
func CanTransition(from, to VideoStatus) bool {
	switch from {
	case VideoStatusPending:
		return to == VideoStatusUploaded
	case VideoStatusUploaded:
		return to == VideoStatusProcessing || to == VideoStatusFailed
	case VideoStatusProcessing:
		return to == VideoStatusProcessed || to == VideoStatusFailed || to == VideoStatusUploaded
	case VideoStatusProcessed:
		return false
	case VideoStatusFailed:
		return to == VideoStatusUploaded
	default:
		return false
	}
}

// ValidateTransition 校验状态迁移，非法迁移返回错误
func ValidateTransition(from, to VideoStatus) error {
	if from == to {
		return nil
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("非法状态迁移: %s -> %s", from, to)
	}
	return nil
}

// Video 视频实体
type Video struct {
	ID          int64       `json:"id" db:"id"`
	OwnerID     int64       `json:"ownerId" db:"owner_id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	FileKey     string      `json:"fileKey" db:"file_key"`
	FileSize    int64       `json:"fileSize" db:"file_size"`
	MimeType    string      `json:"mimeType" db:"mime_type"`
	Status      VideoStatus `json:"status" db:"status"`
	// HLSURL 仅在status为processed时非空
	HLSURL    string    `json:"hlsUrl,omitempty" db:"hls_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateVideoDTO 申请上传URL的数据传输对象
type CreateVideoDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	FileName    string `json:"fileName" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
	MimeType    string `json:"mimeType" binding:"required"`
}

// UploadCompleteDTO 上传完成确认对象
type UploadCompleteDTO struct {
	VideoID int64 `json:"videoId" binding:"required"`
}

// PresignedPostResponse 预签名上传响应
type PresignedPostResponse struct {
	URL     string            `json:"url"`
	Fields  map[string]string `json:"fields"`
	VideoID int64             `json:"videoId"`
}

// VideoResponse 视频详情响应对象
type VideoResponse struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	FileKey     string      `json:"fileKey"`
	FileSize    int64       `json:"fileSize"`
	MimeType    string      `json:"mimeType"`
	Status      VideoStatus `json:"status"`
	HLSURL      string      `json:"hlsUrl,omitempty"`
	// FileURL 原始文件的限时播放地址
	FileURL    string     `json:"fileUrl,omitempty"`
	Tags       []Tag      `json:"tags"`
	Categories []Category `json:"categories"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
