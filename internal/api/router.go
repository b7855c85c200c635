package api

import (
	"net/http"

	"video-service/internal/api/handlers"
	"video-service/internal/api/middleware"
	"video-service/internal/auth"
	"video-service/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupRouter 配置API路由
func SetupRouter(
	jwtService *auth.JWTService,
	userService *services.UserService,
	videoService *services.VideoService,
	taxonomyService *services.TaxonomyService,
) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := handlers.NewAuthHandler(userService)
	usersHandler := handlers.NewUsersHandler(userService)
	videosHandler := handlers.NewVideosHandler(videoService)
	tagsHandler := handlers.NewTagsHandler(taxonomyService)
	categoriesHandler := handlers.NewCategoriesHandler(taxonomyService)

	v1 := router.Group("/api/v1")

	// 公开路由
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	// 认证路由
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/users/me", usersHandler.Me)
		protected.PATCH("/users/me", usersHandler.UpdateMe)

		protected.POST("/videos/upload-request", videosHandler.UploadRequest)
		protected.POST("/videos/upload-complete", videosHandler.UploadComplete)
		protected.GET("/videos", videosHandler.FindAll)
		protected.GET("/videos/:id", videosHandler.FindOne)
		protected.DELETE("/videos/:id", videosHandler.Remove)

		protected.POST("/videos/:id/tags/:tagId", videosHandler.AttachTag)
		protected.DELETE("/videos/:id/tags/:tagId", videosHandler.DetachTag)
		protected.POST("/videos/:id/categories/:categoryId", videosHandler.AttachCategory)
		protected.DELETE("/videos/:id/categories/:categoryId", videosHandler.DetachCategory)

		protected.GET("/tags", tagsHandler.FindAll)
		protected.POST("/tags", tagsHandler.Create)
		protected.GET("/tags/:id", tagsHandler.FindOne)
		protected.DELETE("/tags/:id", tagsHandler.Remove)

		protected.GET("/categories", categoriesHandler.FindAll)
		protected.POST("/categories", categoriesHandler.Create)
		protected.GET("/categories/:id", categoriesHandler.FindOne)
		protected.DELETE("/categories/:id", categoriesHandler.Remove)
	}

	return router
}
