package transcode

import (
	"context"
	"log"
	"time"

	"video-service/internal/config"
	"video-service/internal/domain/entities"
	"video-service/internal/messaging"
)

// SweepStore 清扫任务所需的仓储接口
type SweepStore interface {
	ListStaleProcessing(maxAge time.Duration) ([]int64, error)
	FindByID(id int64) (entities.Video, error)
	UpdateStatus(id int64, status entities.VideoStatus) error
}

// Publisher 清扫任务所需的事件发布接口
type Publisher interface {
	SendTranscodeRequested(payload messaging.TranscodeRequestedPayload) error
}

// Sweeper 定期回收卡死的转码任务
// 处理中状态超过阈值的视频视为worker崩溃遗留，降回uploaded并重新投递
type Sweeper struct {
	store      SweepStore
	publisher  Publisher
	staleAfter time.Duration
	interval   time.Duration
}

// NewSweeper 创建新的清扫任务
func NewSweeper(cfg config.TranscodeConfig, store SweepStore, publisher Publisher) *Sweeper {
	return &Sweeper{
		store:      store,
		publisher:  publisher,
		staleAfter: time.Duration(cfg.StaleAfterMin) * time.Minute,
		interval:   time.Duration(cfg.SweepIntervalMin) * time.Minute,
	}
}

// Start 启动定时清扫，阻塞直到ctx被取消
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("清扫任务已启动: 间隔=%v, 超时阈值=%v", s.interval, s.staleAfter)
	for {
		select {
		case <-ctx.Done():
			log.Println("清扫任务已停止")
			return
		case <-ticker.C:
			s.SweepOnce()
		}
	}
}

// SweepOnce 执行一次清扫
func (s *Sweeper) SweepOnce() {
	ids, err := s.store.ListStaleProcessing(s.staleAfter)
	if err != nil {
		log.Printf("查询卡死任务失败: %v", err)
		return
	}
	if len(ids) == 0 {
		return
	}

	log.Printf("发现%d个卡死的转码任务", len(ids))
	for _, id := range ids {
		video, err := s.store.FindByID(id)
		if err != nil {
			log.Printf("查询视频失败: ID=%d, 错误=%v", id, err)
			continue
		}

		// 先重新投递再降级，投递失败时保持processing，下一轮清扫还能命中
		payload := messaging.TranscodeRequestedPayload{
			VideoID:     video.ID,
			FileKey:     video.FileKey,
			RequestedAt: time.Now().Format(time.RFC3339),
		}
		if err := s.publisher.SendTranscodeRequested(payload); err != nil {
			log.Printf("重新投递转码请求失败: ID=%d, 错误=%v", id, err)
			continue
		}

		if err := s.store.UpdateStatus(id, entities.VideoStatusUploaded); err != nil {
			// 降级失败时消息已发出，消费端看到processing会跳过，等下一轮清扫重试
			log.Printf("回收任务失败: ID=%d, 错误=%v", id, err)
			continue
		}

		log.Printf("已回收并重新投递转码任务: ID=%d", id)
	}
}
