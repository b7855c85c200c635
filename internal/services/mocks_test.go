package services

import (
	"github.com/stretchr/testify/mock"

	"video-service/internal/domain/entities"
	"video-service/internal/messaging"
)

type VideoStoreMock struct {
	mock.Mock
}

func (m *VideoStoreMock) Create(video entities.Video) (entities.Video, error) {
	args := m.Called(video)
	return args.Get(0).(entities.Video), args.Error(1)
}

func (m *VideoStoreMock) FindByID(id int64) (entities.Video, error) {
	args := m.Called(id)
	return args.Get(0).(entities.Video), args.Error(1)
}

func (m *VideoStoreMock) FindByOwner(ownerID int64, page, limit int) ([]entities.Video, error) {
	args := m.Called(ownerID, page, limit)
	if v := args.Get(0); v != nil {
		return v.([]entities.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoStoreMock) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *VideoStoreMock) UpdateStatus(id int64, status entities.VideoStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *VideoStoreMock) AddTag(videoID, tagID int64) error {
	args := m.Called(videoID, tagID)
	return args.Error(0)
}

func (m *VideoStoreMock) RemoveTag(videoID, tagID int64) error {
	args := m.Called(videoID, tagID)
	return args.Error(0)
}

func (m *VideoStoreMock) GetTags(videoID int64) ([]entities.Tag, error) {
	args := m.Called(videoID)
	if v := args.Get(0); v != nil {
		return v.([]entities.Tag), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoStoreMock) AddCategory(videoID, categoryID int64) error {
	args := m.Called(videoID, categoryID)
	return args.Error(0)
}

func (m *VideoStoreMock) RemoveCategory(videoID, categoryID int64) error {
	args := m.Called(videoID, categoryID)
	return args.Error(0)
}

func (m *VideoStoreMock) GetCategories(videoID int64) ([]entities.Category, error) {
	args := m.Called(videoID)
	if v := args.Get(0); v != nil {
		return v.([]entities.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

type UploadSignerMock struct {
	mock.Mock
}

func (m *UploadSignerMock) PresignedUploadPost(objectKey, mimeType string, fileSize int64) (string, map[string]string, error) {
	args := m.Called(objectKey, mimeType, fileSize)
	var fields map[string]string
	if v := args.Get(1); v != nil {
		fields = v.(map[string]string)
	}
	return args.String(0), fields, args.Error(2)
}

func (m *UploadSignerMock) GetFileURL(objectKey string) (string, error) {
	args := m.Called(objectKey)
	return args.String(0), args.Error(1)
}

func (m *UploadSignerMock) DeleteFile(objectKey string) error {
	args := m.Called(objectKey)
	return args.Error(0)
}

type EventPublisherMock struct {
	mock.Mock
}

func (m *EventPublisherMock) SendTranscodeRequested(payload messaging.TranscodeRequestedPayload) error {
	args := m.Called(payload)
	return args.Error(0)
}
