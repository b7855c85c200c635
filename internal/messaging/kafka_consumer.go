package messaging

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"video-service/internal/config"
)

// JobRunner 转码任务执行器接口
type JobRunner interface {
	Run(ctx context.Context, videoID int64) error
}

// KafkaConsumer Kafka消费者结构
type KafkaConsumer struct {
	config        *config.Config
	consumerGroup sarama.ConsumerGroup
	runner        JobRunner
	topics        []string
}

// NewKafkaConsumer 创建新的Kafka消费者
func NewKafkaConsumer(cfg *config.Config, runner JobRunner) (*KafkaConsumer, error) {
	// 配置Sarama
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_8_1_0 // 使用Kafka 2.8.1
	saramaConfig.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest

	// 创建消费者组
	topics := strings.Split(cfg.Kafka.Topic, ",")
	consumerGroup, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &KafkaConsumer{
		config:        cfg,
		consumerGroup: consumerGroup,
		runner:        runner,
		topics:        topics,
	}, nil
}

// Start 启动Kafka消费者，阻塞直到ctx被取消
func (k *KafkaConsumer) Start(ctx context.Context) {
	consumer := &Consumer{
		ready:  make(chan bool),
		runner: k.runner,
	}

	go func() {
		for {
			log.Printf("开始消费主题: %v", k.topics)
			if err := k.consumerGroup.Consume(ctx, k.topics, consumer); err != nil {
				log.Printf("消费出错: %v", err)
				time.Sleep(5 * time.Second) // 重试间隔
				continue
			}
			if ctx.Err() != nil {
				return
			}
			consumer.ready = make(chan bool)
		}
	}()

	<-consumer.ready
	log.Println("Kafka消费者已就绪")

	<-ctx.Done()
	log.Println("正在关闭Kafka消费者...")
	if err := k.consumerGroup.Close(); err != nil {
		log.Printf("关闭消费者组时出错: %v", err)
	}
}

// Consumer 实现sarama.ConsumerGroupHandler接口
type Consumer struct {
	ready  chan bool
	runner JobRunner
}

// Setup 是在消费者会话开始时运行的
func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	close(c.ready)
	return nil
}

// Cleanup 是在消费者会话结束时运行的
func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim 处理消息
func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		log.Printf("收到消息 %s: %s", message.Topic, string(message.Value))

		// 解析消息
		var event MessageEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("解析消息失败: %v", err)
			session.MarkMessage(message, "")
			continue
		}

		// 根据事件类型处理消息
		switch event.Type {
		case EventTypeTranscodeRequested:
			c.handleTranscodeRequested(session.Context(), event.Payload)
		case EventTypeVideoProcessed:
			// 由其他服务消费，此处仅记录
			log.Printf("收到视频处理完成事件: %s", string(event.Payload))
		default:
			log.Printf("未知事件类型: %s", event.Type)
		}

		// 无论任务结果如何都标记消息已处理，失败状态已持久化到数据库
		session.MarkMessage(message, "")
	}
	return nil
}

// 处理转码任务请求事件
func (c *Consumer) handleTranscodeRequested(ctx context.Context, payload json.RawMessage) {
	var data TranscodeRequestedPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		log.Printf("解析转码请求事件失败: %v", err)
		return
	}

	log.Printf("处理转码请求事件: 视频ID=%d", data.VideoID)
	if err := c.runner.Run(ctx, data.VideoID); err != nil {
		log.Printf("转码任务执行出错: 视频ID=%d, 错误=%v", data.VideoID, err)
	}
}
