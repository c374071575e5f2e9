package utils

import (
	"fmt"
	"strings"
	"time"
)

// TimeParser 时间解析器，按顺序尝试多种格式
type TimeParser struct {
	formats []string
}

var (
	// 媒体服务的created_at和文章front matter中的date使用的格式
	defaultTimeFormats = []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	// DefaultParser 全局时间解析器实例
	DefaultParser = NewTimeParser(defaultTimeFormats...)

	// Epoch 无法解析的时间统一视为Unix纪元
	Epoch = time.Unix(0, 0).UTC()
)

// NewTimeParser 创建时间解析器
func NewTimeParser(formats ...string) *TimeParser {
	if len(formats) == 0 {
		formats = defaultTimeFormats
	}
	return &TimeParser{formats: formats}
}

// ParseTime 解析时间字符串
func (tp *TimeParser) ParseTime(timeStr string) (time.Time, error) {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}

	for _, format := range tp.formats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse time string: %s", timeStr)
}

// ParseTimeWithDefault 解析失败时返回默认值
func (tp *TimeParser) ParseTimeWithDefault(timeStr string, defaultTime time.Time) time.Time {
	if t, err := tp.ParseTime(timeStr); err == nil {
		return t
	}
	return defaultTime
}

// ParseTimeOrEpoch 解析失败时返回Unix纪元，用于排序
func (tp *TimeParser) ParseTimeOrEpoch(timeStr string) time.Time {
	return tp.ParseTimeWithDefault(timeStr, Epoch)
}

// ParseTimeOrZero 解析失败时返回零值
func (tp *TimeParser) ParseTimeOrZero(timeStr string) time.Time {
	return tp.ParseTimeWithDefault(timeStr, time.Time{})
}

// FormatDate 格式化为YYYY-MM-DD，零值返回空串
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// 便利函数 - 使用默认解析器
func ParseTime(timeStr string) (time.Time, error) {
	return DefaultParser.ParseTime(timeStr)
}

func ParseTimeOrEpoch(timeStr string) time.Time {
	return DefaultParser.ParseTimeOrEpoch(timeStr)
}

func ParseTimeOrZero(timeStr string) time.Time {
	return DefaultParser.ParseTimeOrZero(timeStr)
}
