package transcode

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"video-service/internal/config"
	"video-service/internal/domain/entities"
	"video-service/internal/messaging"
)

// VideoStore 任务所需的视频仓储接口
type VideoStore interface {
	FindByID(id int64) (entities.Video, error)
	UpdateStatus(id int64, status entities.VideoStatus) error
	UpdateProcessed(id int64, hlsURL string) error
}

// ObjectStore 任务所需的对象存储接口
type ObjectStore interface {
	DownloadFile(ctx context.Context, objectKey, localPath string) error
	UploadFile(ctx context.Context, objectKey, localPath string) error
}

// Encoder 转码执行接口
type Encoder interface {
	Encode(ctx context.Context, inputPath, outputDir string, plan []Rendition) error
}

// ResultPublisher 终态事件发布接口
type ResultPublisher interface {
	SendVideoProcessed(payload messaging.VideoProcessedPayload) error
}

// Job 转码任务，消费转码请求事件后执行完整的下载、转码、上传流程
type Job struct {
	videos    VideoStore
	objects   ObjectStore
	encoder   Encoder
	publisher ResultPublisher
	plan      []Rendition
	endpoint  string
	bucket    string
}

// NewJob 创建新的转码任务执行器
func NewJob(cfg *config.Config, videos VideoStore, objects ObjectStore, encoder Encoder, publisher ResultPublisher) *Job {
	return &Job{
		videos:    videos,
		objects:   objects,
		encoder:   encoder,
		publisher: publisher,
		plan:      BuildPlan(cfg.Transcode),
		endpoint:  cfg.Storage.Endpoint,
		bucket:    cfg.Storage.BucketName,
	}
}

// Run 执行转码任务
// 业务失败（下载、转码、上传出错）持久化为failed状态后返回nil，
// 只有任务无法开始执行（查询或状态更新出错）时才返回错误
func (j *Job) Run(ctx context.Context, videoID int64) error {
	video, err := j.videos.FindByID(videoID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			// 视频已被删除，事件作废
			log.Printf("转码任务跳过: 视频不存在, ID=%d", videoID)
			return nil
		}
		return fmt.Errorf("查询视频失败: %w", err)
	}

	// 状态检查，重复投递或已终态的任务直接跳过
	if !entities.CanTransition(video.Status, entities.VideoStatusProcessing) {
		log.Printf("转码任务跳过: 视频状态为%s, ID=%d", video.Status, videoID)
		return nil
	}

	// 先持久化处理中状态再开始耗时操作
	if err := j.videos.UpdateStatus(video.ID, entities.VideoStatusProcessing); err != nil {
		return fmt.Errorf("更新视频状态失败: %w", err)
	}

	// 下载原始文件到临时目录
	downloadDir, err := os.MkdirTemp("", "video_original_")
	if err != nil {
		return j.fail(video.ID, "创建临时目录", err)
	}
	defer os.RemoveAll(downloadDir)

	inputPath := filepath.Join(downloadDir, filepath.Base(video.FileKey))
	if err := j.objects.DownloadFile(ctx, video.FileKey, inputPath); err != nil {
		return j.fail(video.ID, "下载原始视频", err)
	}

	// 转码输出目录
	outputDir, err := os.MkdirTemp("", fmt.Sprintf("%d_hls_", video.ID))
	if err != nil {
		return j.fail(video.ID, "创建输出目录", err)
	}
	defer os.RemoveAll(outputDir)

	if err := j.encoder.Encode(ctx, inputPath, outputDir, j.plan); err != nil {
		return j.fail(video.ID, "转码", err)
	}

	// 上传HLS产物
	hlsPrefix := fmt.Sprintf("hls/%d/", video.ID)
	if err := j.uploadOutput(ctx, outputDir, hlsPrefix); err != nil {
		return j.fail(video.ID, "上传HLS文件", err)
	}

	// 原子更新: 状态与播放地址同时落库
	hlsURL := fmt.Sprintf("http://%s/%s/%s%s", j.endpoint, j.bucket, hlsPrefix, MasterPlaylistName)
	if err := j.videos.UpdateProcessed(video.ID, hlsURL); err != nil {
		return j.fail(video.ID, "更新处理结果", err)
	}

	j.publishResult(video.ID, entities.VideoStatusProcessed, hlsURL)
	log.Printf("转码任务完成: ID=%d, 播放地址=%s", video.ID, hlsURL)
	return nil
}

// publishResult 广播终态事件，发布失败只记录日志
func (j *Job) publishResult(videoID int64, status entities.VideoStatus, hlsURL string) {
	payload := messaging.VideoProcessedPayload{
		VideoID:     videoID,
		Status:      string(status),
		HLSURL:      hlsURL,
		ProcessedAt: time.Now().Format(time.RFC3339),
	}
	if err := j.publisher.SendVideoProcessed(payload); err != nil {
		log.Printf("发布处理结果事件失败: ID=%d, 错误=%v", videoID, err)
	}
}

// uploadOutput 遍历输出目录，将全部产物按相对路径上传
func (j *Job) uploadOutput(ctx context.Context, outputDir, hlsPrefix string) error {
	return filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(outputDir, path)
		if err != nil {
			return err
		}

		objectKey := hlsPrefix + filepath.ToSlash(relPath)
		if err := j.objects.UploadFile(ctx, objectKey, path); err != nil {
			return fmt.Errorf("上传%s失败: %w", objectKey, err)
		}
		return nil
	})
}

// fail 持久化失败状态，诊断信息只记录日志不入库
func (j *Job) fail(videoID int64, stage string, cause error) error {
	log.Printf("转码任务失败: ID=%d, 阶段=%s, 错误=%v", videoID, stage, cause)
	if err := j.videos.UpdateStatus(videoID, entities.VideoStatusFailed); err != nil {
		log.Printf("持久化失败状态出错: ID=%d, 错误=%v", videoID, err)
	}
	j.publishResult(videoID, entities.VideoStatusFailed, "")
	return nil
}
