package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config 应用程序配置
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Kafka     KafkaConfig
	Storage   StorageConfig
	JWT       JWTConfig
	Upload    UploadConfig
	Transcode TranscodeConfig
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// StorageConfig MinIO存储配置
type StorageConfig struct {
	Endpoint   string
	BucketName string
	AccessKey  string
	SecretKey  string
	UseSSL     bool
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// UploadConfig 上传限制配置
type UploadConfig struct {
	MaxFileSize int64
}

// RenditionConfig 单档转码输出配置
type RenditionConfig struct {
	Height       int
	VideoBitrate string
	AudioBitrate string
}

// TranscodeConfig 转码配置
type TranscodeConfig struct {
	SegmentSeconds   int
	TimeoutMinutes   int
	StaleAfterMin    int
	SweepIntervalMin int
	Renditions       []RenditionConfig
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件错误: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件错误: %w", err)
	}

	// 设置JWT默认值
	if config.JWT.Secret == "" {
		config.JWT.Secret = "default-jwt-secret-key"
	}

	if config.JWT.ExpiryHours <= 0 {
		config.JWT.ExpiryHours = 24
	}

	// 上传大小默认限制2GB
	if config.Upload.MaxFileSize <= 0 {
		config.Upload.MaxFileSize = 2 * 1024 * 1024 * 1024
	}

	if config.Kafka.Topic == "" {
		config.Kafka.Topic = "video-events"
	}

	if config.Kafka.GroupID == "" {
		config.Kafka.GroupID = "video-worker"
	}

	applyTranscodeDefaults(&config.Transcode)

	return &config, nil
}

// applyTranscodeDefaults 填充转码默认配置
func applyTranscodeDefaults(cfg *TranscodeConfig) {
	if cfg.SegmentSeconds <= 0 {
		cfg.SegmentSeconds = 10
	}

	if cfg.TimeoutMinutes <= 0 {
		cfg.TimeoutMinutes = 30
	}

	if cfg.StaleAfterMin <= 0 {
		cfg.StaleAfterMin = 60
	}

	if cfg.SweepIntervalMin <= 0 {
		cfg.SweepIntervalMin = 10
	}

	// 默认两档输出: 360p与720p
	if len(cfg.Renditions) == 0 {
		cfg.Renditions = []RenditionConfig{
			{Height: 360, VideoBitrate: "800k", AudioBitrate: "96k"},
			{Height: 720, VideoBitrate: "2500k", AudioBitrate: "128k"},
		}
	}
}
