package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Options 日志初始化选项
type Options struct {
	Level     string // debug, info, warn, error
	Output    string // console, file, both
	Format    string // text, json
	FilePath  string
	Colorize  bool
	AddSource bool
}

var (
	defaultLogger *slog.Logger
	levelVar      = new(slog.LevelVar)
	mu            sync.RWMutex
	logFile       *os.File
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// Init 初始化全局日志
func Init(opts Options) error {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}

	var (
		writers []io.Writer
		file    *os.File
	)
	switch strings.ToLower(opts.Output) {
	case "", "console":
		writers = append(writers, os.Stdout)
	case "file", "both":
		if opts.FilePath == "" {
			return fmt.Errorf("log file path is required for output %q", opts.Output)
		}
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		writers = append(writers, f)
		if strings.EqualFold(opts.Output, "both") {
			writers = append(writers, os.Stdout)
		}
	default:
		return fmt.Errorf("unknown log output: %s", opts.Output)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     levelVar,
		AddSource: opts.AddSource,
	}
	// 颜色只用于纯控制台文本输出，文件中不写入转义序列
	isJSON := strings.EqualFold(opts.Format, "json")
	if opts.Colorize && !isJSON && file == nil {
		handlerOpts.ReplaceAttr = colorizeLevel
	}

	w := io.MultiWriter(writers...)
	var handler slog.Handler
	if isJSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	levelVar.Set(level)

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	defaultLogger = slog.New(handler)
	return nil
}

// SetLevel 动态调整日志级别
func SetLevel(level string) error {
	l, err := parseLevel(level)
	if err != nil {
		return err
	}
	levelVar.Set(l)
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

func colorizeLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	color := colorBlue
	switch {
	case level >= slog.LevelError:
		color = colorRed
	case level >= slog.LevelWarn:
		color = colorYellow
	case level < slog.LevelInfo:
		color = colorGray
	}
	return slog.String(a.Key, color+level.String()+colorReset)
}

func get() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: levelVar}))
	}
	return defaultLogger
}

// Logger 返回底层slog实例
func Logger() *slog.Logger {
	return get()
}

// With 返回带固定字段的子logger
func With(args ...any) *slog.Logger {
	return get().With(SanitizeArgs(args...)...)
}

// Debug 输出调试日志
func Debug(msg string, args ...any) {
	get().Log(context.Background(), slog.LevelDebug, msg, SanitizeArgs(args...)...)
}

// Info 输出信息日志
func Info(msg string, args ...any) {
	get().Log(context.Background(), slog.LevelInfo, msg, SanitizeArgs(args...)...)
}

// Warn 输出警告日志
func Warn(msg string, args ...any) {
	get().Log(context.Background(), slog.LevelWarn, msg, SanitizeArgs(args...)...)
}

// Error 输出错误日志
func Error(msg string, args ...any) {
	get().Log(context.Background(), slog.LevelError, msg, SanitizeArgs(args...)...)
}
