package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/locus-portfolio/locus-backend/internal/application/services"
	"github.com/locus-portfolio/locus-backend/internal/interfaces/http/handlers"
	"github.com/locus-portfolio/locus-backend/internal/interfaces/http/middleware"
)

// RoutesConfig 路由配置
type RoutesConfig struct {
	container *services.ServiceContainer
}

// NewRoutesConfig 创建路由配置
func NewRoutesConfig(container *services.ServiceContainer) *RoutesConfig {
	return &RoutesConfig{
		container: container,
	}
}

// SetupRoutes 注册全部路由
func (rc *RoutesConfig) SetupRoutes(router *gin.Engine) {
	mediaHandler := handlers.NewMediaHandler(rc.container)
	dataHandler := handlers.NewDataHandler(rc.container)
	blogHandler := handlers.NewBlogHandler(rc.container)
	sitemapHandler := handlers.NewSitemapHandler(rc.container)

	router.GET("/", handlers.Root)
	router.HEAD("/", handlers.Root)
	router.GET("/sitemap.xml", sitemapHandler.Sitemap)
	router.GET("/robots.txt", sitemapHandler.RobotsTxt)

	// 指标与文档
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(rc.container.GetRegistry(), promhttp.HandlerOpts{})))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		cloudinary := api.Group("/cloudinary")
		{
			cloudinary.GET("/photography", mediaHandler.GetPhotography)
			cloudinary.GET("/images/*folder", mediaHandler.GetFolderImages)
		}

		data := api.Group("/data")
		{
			data.GET("/work", dataHandler.GetWorkData)
			data.GET("/work/:title/images", dataHandler.GetWorkItemImages)
			data.GET("/:fileName", dataHandler.GetDataFile)
		}

		blog := api.Group("/blog")
		{
			blog.GET("", blogHandler.ListPosts)
			blog.GET("/tags", blogHandler.ListTags)
			blog.GET("/tag/:tag", blogHandler.PostsByTag)
			blog.GET("/:slug", blogHandler.GetPost)
		}
	}
}

// SetupRoutesWithContainer 创建gin引擎，注册中间件和路由
func SetupRoutesWithContainer(container *services.ServiceContainer) *gin.Engine {
	cfg := container.GetConfig()
	router := gin.New()

	// 全局中间件，ErrorHandler最后注册，Logger才能记录到最终状态码
	router.Use(middleware.RecoverMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(container.GetMetrics()))
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.ContainerMiddleware(container))
	router.Use(middleware.ErrorHandlerMiddleware())

	NewRoutesConfig(container).SetupRoutes(router)
	return router
}
