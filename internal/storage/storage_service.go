package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"video-service/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService 提供对象存储功能
type StorageService struct {
	client     *minio.Client
	bucketName string
	cfg        *config.Config
}

// NewStorageService 创建新的存储服务
func NewStorageService(cfg *config.Config) (*StorageService, error) {
	// 创建MinIO客户端
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	// 检查存储桶是否存在，不存在则创建
	bucketExists, err := client.BucketExists(context.Background(), cfg.Storage.BucketName)
	if err != nil {
		return nil, fmt.Errorf("检查存储桶失败: %w", err)
	}

	if !bucketExists {
		err = client.MakeBucket(context.Background(), cfg.Storage.BucketName, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("创建存储桶失败: %w", err)
		}
	}

	return &StorageService{
		client:     client,
		bucketName: cfg.Storage.BucketName,
		cfg:        cfg,
	}, nil
}

// PresignedUploadPost 生成客户端直传用的预签名POST策略
// 限制Content-Type与文件大小上限，1小时内有效
func (s *StorageService) PresignedUploadPost(objectKey, mimeType string, fileSize int64) (string, map[string]string, error) {
	policy := minio.NewPostPolicy()
	if err := policy.SetBucket(s.bucketName); err != nil {
		return "", nil, err
	}
	if err := policy.SetKey(objectKey); err != nil {
		return "", nil, err
	}
	if err := policy.SetExpires(time.Now().UTC().Add(time.Hour)); err != nil {
		return "", nil, err
	}
	if err := policy.SetContentType(mimeType); err != nil {
		return "", nil, err
	}
	if err := policy.SetContentLengthRange(0, fileSize); err != nil {
		return "", nil, err
	}

	url, formData, err := s.client.PresignedPostPolicy(context.Background(), policy)
	if err != nil {
		return "", nil, fmt.Errorf("生成预签名上传URL失败: %w", err)
	}

	return url.String(), formData, nil
}

// DownloadFile 将对象下载到本地文件
func (s *StorageService) DownloadFile(ctx context.Context, objectKey, localPath string) error {
	err := s.client.FGetObject(ctx, s.bucketName, objectKey, localPath, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("下载文件失败: %w", err)
	}
	return nil
}

// UploadFile 将本地文件上传到对象存储
func (s *StorageService) UploadFile(ctx context.Context, objectKey, localPath string) error {
	_, err := s.client.FPutObject(ctx, s.bucketName, objectKey, localPath, minio.PutObjectOptions{
		ContentType: contentTypeForFile(localPath),
	})
	if err != nil {
		return fmt.Errorf("上传文件失败: %w", err)
	}
	return nil
}

// GetFileURL 获取文件的访问URL
func (s *StorageService) GetFileURL(objectKey string) (string, error) {
	// 获取预签名URL，有效期24小时
	url, err := s.client.PresignedGetObject(
		context.Background(),
		s.bucketName,
		objectKey,
		time.Hour*24,
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("获取文件URL失败: %w", err)
	}

	return url.String(), nil
}

// DeleteFile 从对象存储中删除文件
func (s *StorageService) DeleteFile(objectKey string) error {
	err := s.client.RemoveObject(
		context.Background(),
		s.bucketName,
		objectKey,
		minio.RemoveObjectOptions{},
	)
	if err != nil {
		return fmt.Errorf("删除文件失败: %w", err)
	}

	return nil
}

// contentTypeForFile 根据扩展名推断Content-Type
func contentTypeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".m3u8":
		return "application/vnd.apple.mpegurl"
	case ".ts":
		return "video/mp2t"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
