package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"video-service/internal/config"
	"video-service/internal/domain/entities"
	"video-service/internal/messaging"
)

func newTestVideoService(videos *VideoStoreMock, signer *UploadSignerMock, publisher *EventPublisherMock) *VideoService {
	cfg := &config.Config{
		Upload: config.UploadConfig{MaxFileSize: 2 * 1024 * 1024 * 1024},
	}
	return NewVideoService(cfg, videos, signer, publisher)
}

func validUploadDTO() entities.CreateVideoDTO {
	return entities.CreateVideoDTO{
		Title:    "我的视频",
		FileName: "movie.mp4",
		FileSize: 1024,
		MimeType: "video/mp4",
	}
}

func TestCreateUploadRequest_Success(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	var persisted entities.Video
	videos.On("Create", mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(0).(entities.Video)
		}).
		Return(entities.Video{ID: 42, Status: entities.VideoStatusPending}, nil).Once()

	fields := map[string]string{"key": "value"}
	signer.On("PresignedUploadPost", mock.Anything, "video/mp4", int64(1024)).
		Return("http://localhost:9000/videos", fields, nil).Once()

	resp, err := svc.CreateUploadRequest(7, validUploadDTO())
	require.NoError(t, err)
	require.Equal(t, int64(42), resp.VideoID)
	require.Equal(t, "http://localhost:9000/videos", resp.URL)
	require.Equal(t, fields, resp.Fields)

	// 记录以pending状态创建，文件Key带归属前缀
	require.Equal(t, entities.VideoStatusPending, persisted.Status)
	require.Equal(t, int64(7), persisted.OwnerID)
	require.Regexp(t, `^7/我的视频_\d+\.mp4$`, persisted.FileKey)

	videos.AssertExpectations(t)
	signer.AssertExpectations(t)
}

func TestCreateUploadRequest_FileTooLarge(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	dto := validUploadDTO()
	dto.FileSize = 3 * 1024 * 1024 * 1024

	_, err := svc.CreateUploadRequest(7, dto)
	requireServiceError(t, err, ErrTypeValidation, ErrCodeFileTooLarge)
	videos.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateUploadRequest_UnsupportedMime(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	dto := validUploadDTO()
	dto.MimeType = "application/pdf"

	_, err := svc.CreateUploadRequest(7, dto)
	requireServiceError(t, err, ErrTypeValidation, ErrCodeUnsupportedMime)
	videos.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateUploadRequest_PresignFailureRollsBack(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	videos.On("Create", mock.Anything).
		Return(entities.Video{ID: 42, Status: entities.VideoStatusPending}, nil).Once()
	signer.On("PresignedUploadPost", mock.Anything, mock.Anything, mock.Anything).
		Return("", nil, errors.New("存储服务不可用")).Once()

	// 签名失败必须删除已创建的记录
	videos.On("Delete", int64(42)).Return(nil).Once()

	_, err := svc.CreateUploadRequest(7, validUploadDTO())
	requireServiceError(t, err, ErrTypeStorage, ErrCodePresignFailed)
	videos.AssertExpectations(t)
}

func TestConfirmUpload_PublishesEvent(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	pending := entities.Video{
		ID:      42,
		OwnerID: 7,
		FileKey: "7/我的视频_123.mp4",
		Status:  entities.VideoStatusPending,
	}

	videos.On("FindByID", int64(42)).Return(pending, nil).Once()
	videos.On("UpdateStatus", int64(42), entities.VideoStatusUploaded).Return(nil).Once()
	publisher.On("SendTranscodeRequested", mock.MatchedBy(func(p messaging.TranscodeRequestedPayload) bool {
		return p.VideoID == 42 && p.FileKey == "7/我的视频_123.mp4"
	})).Return(nil).Once()

	video, err := svc.ConfirmUpload(7, 42)
	require.NoError(t, err)
	require.Equal(t, entities.VideoStatusUploaded, video.Status)

	videos.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestConfirmUpload_RepeatedConfirmRepublishes(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	uploaded := entities.Video{ID: 42, OwnerID: 7, Status: entities.VideoStatusUploaded}

	// 重复确认不改状态，只重新投递事件
	videos.On("FindByID", int64(42)).Return(uploaded, nil).Once()
	publisher.On("SendTranscodeRequested", mock.Anything).Return(nil).Once()

	_, err := svc.ConfirmUpload(7, 42)
	require.NoError(t, err)

	videos.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	publisher.AssertExpectations(t)
}

func TestConfirmUpload_ProcessingConflict(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	// 转码进行中再次确认必须拒绝，不得降回uploaded触发并发转码
	processing := entities.Video{ID: 42, OwnerID: 7, Status: entities.VideoStatusProcessing}
	videos.On("FindByID", int64(42)).Return(processing, nil).Once()

	_, err := svc.ConfirmUpload(7, 42)
	requireServiceError(t, err, ErrTypeConflict, ErrCodeInvalidStatus)

	videos.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "SendTranscodeRequested", mock.Anything)
}

func TestConfirmUpload_FailedConflict(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	// failed的重试入口是清扫与人工干预，不是确认接口
	failed := entities.Video{ID: 42, OwnerID: 7, Status: entities.VideoStatusFailed}
	videos.On("FindByID", int64(42)).Return(failed, nil).Once()

	_, err := svc.ConfirmUpload(7, 42)
	requireServiceError(t, err, ErrTypeConflict, ErrCodeInvalidStatus)
	publisher.AssertNotCalled(t, "SendTranscodeRequested", mock.Anything)
}

func TestConfirmUpload_InvalidStatus(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	processed := entities.Video{ID: 42, OwnerID: 7, Status: entities.VideoStatusProcessed}
	videos.On("FindByID", int64(42)).Return(processed, nil).Once()

	_, err := svc.ConfirmUpload(7, 42)
	requireServiceError(t, err, ErrTypeConflict, ErrCodeInvalidStatus)
	publisher.AssertNotCalled(t, "SendTranscodeRequested", mock.Anything)
}

func TestConfirmUpload_WrongOwner(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	other := entities.Video{ID: 42, OwnerID: 99, Status: entities.VideoStatusPending}
	videos.On("FindByID", int64(42)).Return(other, nil).Once()

	_, err := svc.ConfirmUpload(7, 42)
	requireServiceError(t, err, ErrTypeUnauthorized, ErrCodeUnauthorized)
}

func TestFindOne_NotFound(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	videos.On("FindByID", int64(99)).Return(entities.Video{}, entities.ErrNotFound).Once()

	_, err := svc.FindOne(7, 99)
	requireServiceError(t, err, ErrTypeNotFound, ErrCodeResourceNotFound)
}

func TestFindOne_IncludesTaxonomy(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	video := entities.Video{
		ID:      42,
		OwnerID: 7,
		Status:  entities.VideoStatusProcessed,
		HLSURL:  "http://localhost:9000/videos/hls/42/master.m3u8",
	}
	tags := []entities.Tag{{ID: 1, Name: "教程"}}

	videos.On("FindByID", int64(42)).Return(video, nil).Once()
	videos.On("GetTags", int64(42)).Return(tags, nil).Once()
	videos.On("GetCategories", int64(42)).Return(nil, nil).Once()
	signer.On("GetFileURL", video.FileKey).
		Return("http://localhost:9000/videos/signed", nil).Once()

	resp, err := svc.FindOne(7, 42)
	require.NoError(t, err)
	require.Equal(t, tags, resp.Tags)
	require.NotNil(t, resp.Categories)
	require.Empty(t, resp.Categories)
	require.Equal(t, video.HLSURL, resp.HLSURL)
	require.Equal(t, "http://localhost:9000/videos/signed", resp.FileURL)
}

func TestFindOne_SignerFailureStillReturnsDetail(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	video := entities.Video{ID: 42, OwnerID: 7, FileKey: "7/a.mp4"}

	videos.On("FindByID", int64(42)).Return(video, nil).Once()
	videos.On("GetTags", int64(42)).Return(nil, nil).Once()
	videos.On("GetCategories", int64(42)).Return(nil, nil).Once()
	signer.On("GetFileURL", "7/a.mp4").Return("", errors.New("存储服务不可用")).Once()

	resp, err := svc.FindOne(7, 42)
	require.NoError(t, err)
	require.Empty(t, resp.FileURL)
}

func TestAttachTag_TagMissing(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	video := entities.Video{ID: 42, OwnerID: 7}

	// 标签侧外键缺失按404处理
	videos.On("FindByID", int64(42)).Return(video, nil).Once()
	videos.On("AddTag", int64(42), int64(5)).Return(entities.ErrNotFound).Once()

	err := svc.AttachTag(7, 42, 5)
	requireServiceError(t, err, ErrTypeNotFound, ErrCodeResourceNotFound)
}

func TestRemove_DeletesRecordAndFile(t *testing.T) {
	videos := new(VideoStoreMock)
	signer := new(UploadSignerMock)
	publisher := new(EventPublisherMock)
	svc := newTestVideoService(videos, signer, publisher)

	video := entities.Video{ID: 42, OwnerID: 7, FileKey: "7/我的视频_123.mp4"}

	videos.On("FindByID", int64(42)).Return(video, nil).Once()
	videos.On("Delete", int64(42)).Return(nil).Once()
	signer.On("DeleteFile", "7/我的视频_123.mp4").Return(nil).Once()

	require.NoError(t, svc.Remove(7, 42))
	videos.AssertExpectations(t)
	signer.AssertExpectations(t)
}

// requireServiceError 断言错误类型与代码
func requireServiceError(t *testing.T, err error, wantType, wantCode string) {
	t.Helper()
	require.Error(t, err)

	var serviceError *ServiceError
	require.ErrorAs(t, err, &serviceError)
	require.Equal(t, wantType, serviceError.Type)
	require.Equal(t, wantCode, serviceError.Code)
}
