package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultFreshnessWindow 默认新鲜期
const DefaultFreshnessWindow = 10 * time.Minute

// LookupResult 一次查询的结果类型，用于指标统计
type LookupResult string

const (
	LookupHit   LookupResult = "hit"
	LookupMiss  LookupResult = "miss"
	LookupError LookupResult = "error"
)

// Loader 缓存未命中时调用的加载函数
type Loader[V any] func(ctx context.Context) (V, error)

// Observer 缓存查询观察者
type Observer interface {
	RecordLookup(key string, result LookupResult)
}

// Entry 缓存条目，整体替换，不做部分更新
type Entry[V any] struct {
	Value    V
	StoredAt time.Time
}

// Options 缓存选项
type Options struct {
	// FreshnessWindow 条目在StoredAt之后的有效时长，<=0时使用默认值
	FreshnessWindow time.Duration
	// Coalesce 为true时同一key的并发未命中共享一次加载
	// 共享加载不受任何单个调用方取消的影响，每个调用方只等待自己的ctx
	Coalesce bool
	// LoadTimeout 共享加载的超时上限，<=0时不额外限制
	LoadTimeout time.Duration
	// Now 时钟，测试中可替换
	Now      func() time.Time
	Observer Observer
}

// ExpiringCache 带过期时间的进程内缓存
// 条目不会被主动删除，读取时按StoredAt判断是否新鲜；加载失败时不写入任何条目
type ExpiringCache[V any] struct {
	window      time.Duration
	loadTimeout time.Duration
	now         func() time.Time
	observer    Observer

	mu      sync.RWMutex
	entries map[string]Entry[V]

	group *singleflight.Group
}

// New 创建缓存实例
func New[V any](opts Options) *ExpiringCache[V] {
	if opts.FreshnessWindow <= 0 {
		opts.FreshnessWindow = DefaultFreshnessWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	c := &ExpiringCache[V]{
		window:      opts.FreshnessWindow,
		loadTimeout: opts.LoadTimeout,
		now:         opts.Now,
		observer:    opts.Observer,
		entries:     make(map[string]Entry[V]),
	}
	if opts.Coalesce {
		c.group = &singleflight.Group{}
	}
	return c
}

// FreshnessWindow 返回新鲜期
func (c *ExpiringCache[V]) FreshnessWindow() time.Duration {
	return c.window
}

// GetOrLoad 新鲜条目直接返回；否则调用loader，成功后写入并返回
func (c *ExpiringCache[V]) GetOrLoad(ctx context.Context, key string, loader Loader[V]) (V, error) {
	if v, ok := c.fresh(key); ok {
		c.record(key, LookupHit)
		return v, nil
	}

	if c.group == nil {
		return c.load(ctx, key, loader)
	}

	ch := c.group.DoChan(key, func() (any, error) {
		// 排队期间可能已有其他调用写入
		if v, ok := c.fresh(key); ok {
			return v, nil
		}
		loadCtx := context.WithoutCancel(ctx)
		if c.loadTimeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(loadCtx, c.loadTimeout)
			defer cancel()
		}
		return c.load(loadCtx, key, loader)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero V
			return zero, res.Err
		}
		return res.Val.(V), nil
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// Refresh 强制调用loader并覆盖条目；失败时保留原有条目
func (c *ExpiringCache[V]) Refresh(ctx context.Context, key string, loader Loader[V]) (V, error) {
	return c.load(ctx, key, loader)
}

// Peek 读取条目而不触发加载，不判断新鲜度
func (c *ExpiringCache[V]) Peek(key string) (Entry[V], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Len 当前条目数（含已过期但尚未覆盖的条目）
func (c *ExpiringCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ExpiringCache[V]) fresh(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Sub(e.StoredAt) < c.window {
		return e.Value, true
	}
	var zero V
	return zero, false
}

func (c *ExpiringCache[V]) load(ctx context.Context, key string, loader Loader[V]) (V, error) {
	v, err := loader(ctx)
	if err != nil {
		c.record(key, LookupError)
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = Entry[V]{Value: v, StoredAt: c.now()}
	c.mu.Unlock()

	c.record(key, LookupMiss)
	return v, nil
}

func (c *ExpiringCache[V]) record(key string, result LookupResult) {
	if c.observer != nil {
		c.observer.RecordLookup(key, result)
	}
}
