package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/locus-portfolio/locus-backend/docs"
	"github.com/locus-portfolio/locus-backend/internal/application/services"
	"github.com/locus-portfolio/locus-backend/internal/infrastructure/config"
	"github.com/locus-portfolio/locus-backend/internal/interfaces/http/routes"
	"github.com/locus-portfolio/locus-backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Locus Backend API
// @version 1.0
// @description 作品集后端：媒体目录查询与缓存、静态数据、博客与站点地图

// @host localhost:7001
// @BasePath /api
// @schemes http https
func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化日志
	if err := logger.Init(logger.Options{
		Level:     cfg.Log.Level,
		Output:    cfg.Log.Output,
		Format:    cfg.Log.Format,
		FilePath:  cfg.Log.FilePath,
		Colorize:  cfg.Log.Colorize,
		AddSource: cfg.Log.AddSource,
	}); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化服务容器
	container, err := services.NewServiceContainer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize service container:", err)
	}
	if err := container.Start(); err != nil {
		log.Fatal("Failed to start background services:", err)
	}

	// 初始化路由
	router := routes.SetupRoutesWithContainer(container)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 设置信号处理
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 启动服务器
	go func() {
		logger.Info("Starting server",
			"address", server.Addr,
			"collection_root", cfg.Media.CollectionRoot,
			"freshness_window", cfg.Media.FreshnessWindow)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// 等待退出信号
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	container.Shutdown(ctx)

	logger.Info("Server stopped")
}
