package services

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/locus-portfolio/locus-backend/internal/application/contracts"
	"github.com/locus-portfolio/locus-backend/internal/application/services/cache"
	"github.com/locus-portfolio/locus-backend/internal/application/services/content"
	"github.com/locus-portfolio/locus-backend/internal/application/services/media"
	"github.com/locus-portfolio/locus-backend/internal/application/services/task"
	"github.com/locus-portfolio/locus-backend/internal/domain/entities"
	"github.com/locus-portfolio/locus-backend/internal/infrastructure/cloudinary"
	"github.com/locus-portfolio/locus-backend/internal/infrastructure/config"
	"github.com/locus-portfolio/locus-backend/internal/infrastructure/metrics"
	"github.com/locus-portfolio/locus-backend/pkg/logger"
)

// ServiceContainer 应用服务容器 - 实现依赖注入
// 在启动时构建一次，通过ContainerMiddleware注入到handler
type ServiceContainer struct {
	config *config.Config

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	mediaService     *media.Service
	dataService      *content.DataService
	blogService      *content.BlogService
	sitemapService   *content.SitemapService
	schedulerService *task.SchedulerService
}

// NewServiceContainer 使用Cloudinary客户端创建服务容器
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	if !cfg.Cloudinary.Configured() {
		logger.Warn("Cloudinary credentials are incomplete, media requests will fail",
			"cloud_name", cfg.Cloudinary.CloudName)
	}

	client := cloudinary.NewClient(cloudinary.Config{
		CloudName:    cfg.Cloudinary.CloudName,
		APIKey:       cfg.Cloudinary.APIKey,
		APISecret:    cfg.Cloudinary.APISecret,
		BaseURL:      cfg.Cloudinary.BaseURL,
		QPS:          cfg.Cloudinary.QPS,
		OperationQPS: cfg.Cloudinary.OperationQPS,
		Timeout:      cfg.Cloudinary.Timeout,
		MaxRetries:   cfg.Cloudinary.MaxRetries,
	})

	container, err := NewServiceContainerWithAPI(cfg, client)
	if err != nil {
		return nil, err
	}
	client.SetObserver(container.metrics)
	return container, nil
}

// NewServiceContainerWithAPI 使用给定的媒体服务实现创建容器
func NewServiceContainerWithAPI(cfg *config.Config, api contracts.MediaAPI) (*ServiceContainer, error) {
	container := &ServiceContainer{
		config:   cfg,
		registry: prometheus.NewRegistry(),
	}

	// 1. 指标
	container.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(container.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	container.metrics = m

	// 2. 媒体服务（带缓存）
	mediaCache := cache.New[[]entities.MediaResource](cache.Options{
		FreshnessWindow: cfg.Media.FreshnessWindow,
		Coalesce:        cfg.Media.CoalesceLoads,
		LoadTimeout:     cfg.Media.LoadTimeout,
		Observer:        m,
	})
	container.mediaService = media.NewService(api, mediaCache, media.Options{
		CollectionRoot:        cfg.Media.CollectionRoot,
		MaxResults:            cfg.Media.MaxResults,
		AutoCreateFolders:     cfg.Media.AutoCreateFolders,
		CollectionConcurrency: cfg.Media.CollectionConcurrency,
	})

	// 3. 内容服务
	container.dataService = content.NewDataService(cfg.Content.DataDir, cfg.Content.AllowedFiles, container.mediaService)
	container.blogService = content.NewBlogService(cfg.Content.BlogDir)
	container.sitemapService = content.NewSitemapService(container.blogService)

	// 4. 缓存预热
	if cfg.Scheduler.Enabled {
		container.schedulerService = task.NewSchedulerService(container.mediaService, cfg.Scheduler.WarmCron, cfg.Scheduler.WarmFolders)
	}

	return container, nil
}

// Start 启动后台任务
func (c *ServiceContainer) Start() error {
	if c.schedulerService == nil {
		return nil
	}
	if err := c.schedulerService.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	return nil
}

// Shutdown 停止后台任务，等待正在执行的预热结束或ctx到期
func (c *ServiceContainer) Shutdown(ctx context.Context) {
	if c.schedulerService == nil {
		return
	}
	select {
	case <-c.schedulerService.Stop().Done():
	case <-ctx.Done():
		logger.Warn("Scheduler did not stop before shutdown deadline")
	}
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetMediaService 获取媒体服务
func (c *ServiceContainer) GetMediaService() contracts.MediaService {
	return c.mediaService
}

// GetDataService 获取数据文件服务
func (c *ServiceContainer) GetDataService() *content.DataService {
	return c.dataService
}

// GetBlogService 获取博客服务
func (c *ServiceContainer) GetBlogService() *content.BlogService {
	return c.blogService
}

// GetSitemapService 获取站点地图服务
func (c *ServiceContainer) GetSitemapService() *content.SitemapService {
	return c.sitemapService
}

// GetSchedulerService 获取调度服务，未启用时为nil
func (c *ServiceContainer) GetSchedulerService() *task.SchedulerService {
	return c.schedulerService
}

// GetMetrics 获取指标
func (c *ServiceContainer) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// GetRegistry 获取Prometheus注册表
func (c *ServiceContainer) GetRegistry() *prometheus.Registry {
	return c.registry
}
