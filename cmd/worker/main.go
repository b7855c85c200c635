package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"video-service/internal/config"
	"video-service/internal/messaging"
	"video-service/internal/storage"
	"video-service/internal/transcode"
)

func main() {
	logger := log.New(os.Stdout, "[WORKER] ", log.LstdFlags)

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatalf("加载配置失败: %v", err)
	}

	// 连接数据库
	db, err := storage.NewDBConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("连接数据库失败: %v", err)
	}
	repos := storage.NewRepositories(db)
	defer repos.Close()

	// 初始化对象存储
	storageService, err := storage.NewStorageService(cfg)
	if err != nil {
		logger.Fatalf("初始化对象存储失败: %v", err)
	}

	// 初始化Kafka生产者，终态广播和清扫重新投递都用它
	producer, err := messaging.NewKafkaProducer(cfg)
	if err != nil {
		logger.Fatalf("初始化Kafka生产者失败: %v", err)
	}
	defer producer.Close()

	// 组装转码任务
	encoder := transcode.NewFFmpegEncoder(cfg.Transcode)
	job := transcode.NewJob(cfg, repos.VideoRepository, storageService, encoder, producer)
	sweeper := transcode.NewSweeper(cfg.Transcode, repos.VideoRepository, producer)

	consumer, err := messaging.NewKafkaConsumer(cfg, job)
	if err != nil {
		logger.Fatalf("初始化Kafka消费者失败: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		sweeper.Start(ctx)
	}()

	logger.Println("转码worker已启动")

	// 等待终止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Println("正在关闭worker...")

	cancel()
	wg.Wait()
	logger.Println("worker已关闭")
}
