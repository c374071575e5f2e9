package cloudinary

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// rateLimiter Admin API限速
// 所有调用共享一个全局令牌桶；search等较重的操作可以再单独收紧
type rateLimiter struct {
	global *rate.Limiter

	mu    sync.RWMutex
	perOp map[string]*rate.Limiter
}

func newRateLimiter(qps int, operationQPS map[string]int) *rateLimiter {
	l := &rateLimiter{
		global: newLimiter(qps),
		perOp:  make(map[string]*rate.Limiter, len(operationQPS)),
	}
	for op, q := range operationQPS {
		if q > 0 {
			l.perOp[op] = newLimiter(q)
		}
	}
	return l
}

// newLimiter qps<=0表示不限速；桶容量等于qps，允许短时间突发
func newLimiter(qps int) *rate.Limiter {
	if qps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(qps), qps)
}

// Wait 先等待操作自己的令牌，再等待全局令牌
func (l *rateLimiter) Wait(ctx context.Context, op string) error {
	l.mu.RLock()
	opLimiter := l.perOp[op]
	l.mu.RUnlock()

	if opLimiter != nil {
		if err := opLimiter.Wait(ctx); err != nil {
			return err
		}
	}
	return l.global.Wait(ctx)
}

func (l *rateLimiter) setQPS(qps int) {
	setLimit(l.global, qps)
}

func (l *rateLimiter) qps() int {
	return limitValue(l.global)
}

// setOperationQPS 调整单个操作的限速，qps<=0时移除单独限制
func (l *rateLimiter) setOperationQPS(op string, qps int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if qps <= 0 {
		delete(l.perOp, op)
		return
	}
	if existing, ok := l.perOp[op]; ok {
		setLimit(existing, qps)
		return
	}
	l.perOp[op] = newLimiter(qps)
}

func (l *rateLimiter) operationQPS(op string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if limiter, ok := l.perOp[op]; ok {
		return limitValue(limiter)
	}
	return 0
}

func setLimit(limiter *rate.Limiter, qps int) {
	if qps <= 0 {
		limiter.SetLimit(rate.Inf)
		limiter.SetBurst(1)
		return
	}
	limiter.SetLimit(rate.Limit(qps))
	limiter.SetBurst(qps)
}

func limitValue(limiter *rate.Limiter) int {
	limit := limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return int(limit)
}
