package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/locus-portfolio/locus-backend/pkg/logger"
)

// defaultRunTimeout 单次预热的超时
const defaultRunTimeout = 2 * time.Minute

// CacheWarmer 强制刷新媒体缓存
type CacheWarmer interface {
	RefreshCollection(ctx context.Context, rootName string) (int, error)
	RefreshFolder(ctx context.Context, folderPath string) (int, error)
}

// WarmupResult 单个目标的预热结果
type WarmupResult struct {
	Target    string
	Resources int
	Err       error
}

// WarmupReport 一次预热的汇总
type WarmupReport struct {
	RunID    string
	Results  []WarmupResult
	Duration time.Duration
}

// Failed 失败的目标数
func (r WarmupReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// SchedulerService 按cron表达式定期预热媒体缓存
type SchedulerService struct {
	cron    *cron.Cron
	warmer  CacheWarmer
	spec    string
	folders []string
	timeout time.Duration

	mu      sync.Mutex
	running bool
}

// NewSchedulerService 创建调度器，spec使用标准5字段格式（分 时 日 月 周）
func NewSchedulerService(warmer CacheWarmer, spec string, folders []string) *SchedulerService {
	return &SchedulerService{
		cron:    cron.New(),
		warmer:  warmer,
		spec:    spec,
		folders: folders,
		timeout: defaultRunTimeout,
	}
}

// Start 注册预热任务并启动调度器
func (s *SchedulerService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	if _, err := cron.ParseStandard(s.spec); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", s.spec, err)
	}

	if _, err := s.cron.AddFunc(s.spec, s.runScheduled); err != nil {
		return fmt.Errorf("failed to schedule cache warm-up: %w", err)
	}

	s.cron.Start()
	s.running = true
	logger.Info("Scheduler service started", "cron", s.spec, "folders", len(s.folders))
	return nil
}

// Stop 停止调度器，返回的context在正在执行的任务结束后关闭
func (s *SchedulerService) Stop() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	s.running = false
	logger.Info("Scheduler service stopped")
	return s.cron.Stop()
}

// IsRunning 调度器是否在运行
func (s *SchedulerService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *SchedulerService) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.WarmUp(ctx)
}

// WarmUp 刷新默认集合与配置的目录；单个目标失败不影响其他目标，原缓存保留
func (s *SchedulerService) WarmUp(ctx context.Context) WarmupReport {
	start := time.Now()
	report := WarmupReport{RunID: uuid.NewString()}

	n, err := s.warmer.RefreshCollection(ctx, "")
	report.Results = append(report.Results, WarmupResult{Target: "collection", Resources: n, Err: err})

	for _, folder := range s.folders {
		n, err := s.warmer.RefreshFolder(ctx, folder)
		report.Results = append(report.Results, WarmupResult{Target: folder, Resources: n, Err: err})
	}

	for _, res := range report.Results {
		if res.Err != nil {
			logger.Warn("Cache warm-up failed", "run_id", report.RunID, "target", res.Target, "error", res.Err)
		}
	}

	report.Duration = time.Since(start)
	logger.Info("Cache warm-up finished",
		"run_id", report.RunID,
		"targets", len(report.Results),
		"failed", report.Failed(),
		"duration", report.Duration)
	return report
}
