package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-service/internal/api"
	"video-service/internal/auth"
	"video-service/internal/config"
	"video-service/internal/messaging"
	"video-service/internal/services"
	"video-service/internal/storage"
)

func main() {
	logger := log.New(os.Stdout, "[VIDEO] ", log.LstdFlags)

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

	// 初始化Kafka生产者
	producer, err := messaging.NewKafkaProducer(cfg)
	if err != nil {
		logger.Fatalf("初始化Kafka生产者失败: %v", err)
	}
	defer producer.Close()

	// 组装服务
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	userService := services.NewUserService(repos.UserRepository, jwtService)
	videoService := services.NewVideoService(cfg, repos.VideoRepository, storageService, producer)
	taxonomyService := services.NewTaxonomyService(repos.TagRepository, repos.CategoryRepository)

	router := api.SetupRouter(jwtService, userService, videoService, taxonomyService)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Printf("视频服务启动，监听端口: %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待终止信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Println("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("服务关闭失败: %v", err)
	}

	logger.Println("服务已关闭")
}
