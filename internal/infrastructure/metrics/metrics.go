package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/locus-portfolio/locus-backend/internal/application/services/cache"
)

const namespace = "locus"

// Metrics 进程内Prometheus指标集合
// 同时实现cache.Observer和cloudinary.Observer
type Metrics struct {
	cacheRequests *prometheus.CounterVec
	apiDuration   *prometheus.HistogramVec
	apiErrors     *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New 在reg上注册全部指标，reg为nil时使用默认注册表
// 同名指标已注册时复用已有的collector
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{}
	var err error
	if m.cacheRequests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "media",
		Name:      "cache_requests_total",
		Help:      "Media cache lookups by key kind and result.",
	}, []string{"kind", "result"})); err != nil {
		return nil, err
	}
	if m.apiDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "media",
		Name:      "api_request_duration_seconds",
		Help:      "Latency of media API operations including retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})); err != nil {
		return nil, err
	}
	if m.apiErrors, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "media",
		Name:      "api_errors_total",
		Help:      "Failed media API operations.",
	}, []string{"operation"})); err != nil {
		return nil, err
	}
	if m.httpRequests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})); err != nil {
		return nil, err
	}
	if m.httpDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register metric: %w", err)
	}
	return c, nil
}

// RecordLookup 记录一次缓存查询，kind取自key的前缀（folder、collection）
func (m *Metrics) RecordLookup(key string, result cache.LookupResult) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(KeyKind(key), string(result)).Inc()
}

// ObserveAPICall 记录一次媒体API调用
func (m *Metrics) ObserveAPICall(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.apiDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.apiErrors.WithLabelValues(operation).Inc()
	}
}

// ObserveHTTPRequest 记录一次HTTP请求，route使用路由模板以控制基数
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// KeyKind 返回缓存key的类型前缀，没有前缀时为"other"
func KeyKind(key string) string {
	kind, _, found := strings.Cut(key, ":")
	if !found || kind == "" {
		return "other"
	}
	return kind
}
