package messaging

import (
	"encoding/json"
	"log"
	"time"

	"video-service/internal/config"

	"github.com/IBM/sarama"
)

// KafkaProducer Kafka生产者结构
type KafkaProducer struct {
	config   *config.Config
	producer sarama.SyncProducer
}

// NewKafkaProducer 创建新的Kafka生产者
func NewKafkaProducer(cfg *config.Config) (*KafkaProducer, error) {
	// 配置Sarama
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_8_1_0                 // 使用Kafka 2.8.1
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll // 等待所有副本确认
	saramaConfig.Producer.Retry.Max = 5                    // 重试次数
	saramaConfig.Producer.Return.Successes = true

	// 创建生产者
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &KafkaProducer{
		config:   cfg,
		producer: producer,
	}, nil
}

// Close 关闭Kafka生产者
func (k *KafkaProducer) Close() error {
	return k.producer.Close()
}

// 事件类型常量
const (
	EventTypeTranscodeRequested = "video.transcode.requested"
	EventTypeVideoProcessed     = "video.processed"
)

// MessageEvent Kafka消息事件结构
type MessageEvent struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// TranscodeRequestedPayload 转码任务请求事件载荷
type TranscodeRequestedPayload struct {
	VideoID     int64  `json:"videoId"`
	FileKey     string `json:"fileKey"`
	RequestedAt string `json:"requestedAt"`
}

// VideoProcessedPayload 视频处理完成事件载荷
type VideoProcessedPayload struct {
	VideoID     int64  `json:"videoId"`
	Status      string `json:"status"`
	HLSURL      string `json:"hlsUrl,omitempty"`
	ProcessedAt string `json:"processedAt"`
}

// SendTranscodeRequested 发送转码任务请求事件
func (k *KafkaProducer) SendTranscodeRequested(payload TranscodeRequestedPayload) error {
	return k.SendEvent(EventTypeTranscodeRequested, payload)
}

// SendVideoProcessed 发送视频处理完成事件
func (k *KafkaProducer) SendVideoProcessed(payload VideoProcessedPayload) error {
	return k.SendEvent(EventTypeVideoProcessed, payload)
}

// SendEvent 发送事件
func (k *KafkaProducer) SendEvent(eventType string, payload interface{}) error {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := MessageEvent{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   rawPayload,
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: k.config.Kafka.Topic,
		Value: sarama.StringEncoder(jsonData),
	}

	partition, offset, err := k.producer.SendMessage(msg)
	if err != nil {
		return err
	}

	log.Printf("消息发送成功: 主题=%s, 分区=%d, 偏移量=%d, 类型=%s",
		k.config.Kafka.Topic, partition, offset, eventType)
	return nil
}
