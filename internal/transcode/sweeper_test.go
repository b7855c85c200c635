package transcode

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"video-service/internal/config"
	"video-service/internal/domain/entities"
	"video-service/internal/messaging"
)

func testSweeper(store *SweepStoreMock, publisher *PublisherMock) *Sweeper {
	return NewSweeper(config.TranscodeConfig{
		StaleAfterMin:    60,
		SweepIntervalMin: 10,
	}, store, publisher)
}

func TestSweepOnce_RecyclesStaleJobs(t *testing.T) {
	store := new(SweepStoreMock)
	publisher := new(PublisherMock)
	sweeper := testSweeper(store, publisher)

	stale := entities.Video{
		ID:      42,
		FileKey: "7/测试视频_123.mp4",
		Status:  entities.VideoStatusProcessing,
	}

	store.On("ListStaleProcessing", time.Hour).Return([]int64{42}, nil).Once()
	store.On("FindByID", int64(42)).Return(stale, nil).Once()
	store.On("UpdateStatus", int64(42), entities.VideoStatusUploaded).Return(nil).Once()
	publisher.On("SendTranscodeRequested", mock.MatchedBy(func(p messaging.TranscodeRequestedPayload) bool {
		return p.VideoID == 42 && p.FileKey == "7/测试视频_123.mp4"
	})).Return(nil).Once()

	sweeper.SweepOnce()

	store.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSweepOnce_NothingStale(t *testing.T) {
	store := new(SweepStoreMock)
	publisher := new(PublisherMock)
	sweeper := testSweeper(store, publisher)

	store.On("ListStaleProcessing", time.Hour).Return([]int64{}, nil).Once()

	sweeper.SweepOnce()

	publisher.AssertNotCalled(t, "SendTranscodeRequested", mock.Anything)
}

func TestSweepOnce_PublishFailsKeepsProcessing(t *testing.T) {
	store := new(SweepStoreMock)
	publisher := new(PublisherMock)
	sweeper := testSweeper(store, publisher)

	stale := entities.Video{ID: 42, FileKey: "7/a.mp4", Status: entities.VideoStatusProcessing}

	// 投递失败时不能降级，否则视频变回uploaded却没有任何消息在途
	store.On("ListStaleProcessing", time.Hour).Return([]int64{42}, nil).Once()
	store.On("FindByID", int64(42)).Return(stale, nil).Once()
	publisher.On("SendTranscodeRequested", mock.Anything).
		Return(errors.New("kafka不可用")).Once()

	sweeper.SweepOnce()

	store.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSweepOnce_DemoteFailureAfterPublish(t *testing.T) {
	store := new(SweepStoreMock)
	publisher := new(PublisherMock)
	sweeper := testSweeper(store, publisher)

	stale := entities.Video{ID: 42, FileKey: "7/a.mp4", Status: entities.VideoStatusProcessing}

	// 消息已发出后降级失败只记录日志，消费端看到processing会跳过
	store.On("ListStaleProcessing", time.Hour).Return([]int64{42}, nil).Once()
	store.On("FindByID", int64(42)).Return(stale, nil).Once()
	publisher.On("SendTranscodeRequested", mock.Anything).Return(nil).Once()
	store.On("UpdateStatus", int64(42), entities.VideoStatusUploaded).
		Return(errors.New("数据库连接中断")).Once()

	sweeper.SweepOnce()

	store.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSweepOnce_ContinuesAfterOneFailure(t *testing.T) {
	store := new(SweepStoreMock)
	publisher := new(PublisherMock)
	sweeper := testSweeper(store, publisher)

	second := entities.Video{ID: 43, FileKey: "8/b.mp4", Status: entities.VideoStatusProcessing}

	// 第一个任务查询失败不影响后续任务回收
	store.On("ListStaleProcessing", time.Hour).Return([]int64{42, 43}, nil).Once()
	store.On("FindByID", int64(42)).Return(entities.Video{}, entities.ErrNotFound).Once()
	store.On("FindByID", int64(43)).Return(second, nil).Once()
	store.On("UpdateStatus", int64(43), entities.VideoStatusUploaded).Return(nil).Once()
	publisher.On("SendTranscodeRequested", mock.Anything).Return(nil).Once()

	sweeper.SweepOnce()

	store.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
