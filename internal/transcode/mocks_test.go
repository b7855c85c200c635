package transcode

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"video-service/internal/domain/entities"
	"video-service/internal/messaging"
)

type VideoStoreMock struct {
	mock.Mock
}

func (m *VideoStoreMock) FindByID(id int64) (entities.Video, error) {
	args := m.Called(id)
	return args.Get(0).(entities.Video), args.Error(1)
}

func (m *VideoStoreMock) UpdateStatus(id int64, status entities.VideoStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *VideoStoreMock) UpdateProcessed(id int64, hlsURL string) error {
	args := m.Called(id, hlsURL)
	return args.Error(0)
}

type ObjectStoreMock struct {
	mock.Mock
}

func (m *ObjectStoreMock) DownloadFile(ctx context.Context, objectKey, localPath string) error {
	args := m.Called(ctx, objectKey, localPath)
	return args.Error(0)
}

func (m *ObjectStoreMock) UploadFile(ctx context.Context, objectKey, localPath string) error {
	args := m.Called(ctx, objectKey, localPath)
	return args.Error(0)
}

type EncoderMock struct {
	mock.Mock
}

func (m *EncoderMock) Encode(ctx context.Context, inputPath, outputDir string, plan []Rendition) error {
	args := m.Called(ctx, inputPath, outputDir, plan)
	return args.Error(0)
}

type ResultPublisherMock struct {
	mock.Mock
}

func (m *ResultPublisherMock) SendVideoProcessed(payload messaging.VideoProcessedPayload) error {
	args := m.Called(payload)
	return args.Error(0)
}

type SweepStoreMock struct {
	mock.Mock
}

func (m *SweepStoreMock) ListStaleProcessing(maxAge time.Duration) ([]int64, error) {
	args := m.Called(maxAge)
	if v := args.Get(0); v != nil {
		return v.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SweepStoreMock) FindByID(id int64) (entities.Video, error) {
	args := m.Called(id)
	return args.Get(0).(entities.Video), args.Error(1)
}

func (m *SweepStoreMock) UpdateStatus(id int64, status entities.VideoStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) SendTranscodeRequested(payload messaging.TranscodeRequestedPayload) error {
	args := m.Called(payload)
	return args.Error(0)
}
