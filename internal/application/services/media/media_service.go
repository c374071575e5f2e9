package media

import (
	"context"

	"github.com/locus-portfolio/locus-backend/internal/application/contracts"
	"github.com/locus-portfolio/locus-backend/internal/application/services/cache"
	"github.com/locus-portfolio/locus-backend/internal/domain/entities"
	"github.com/locus-portfolio/locus-backend/internal/domain/valueobjects"
	apperrors "github.com/locus-portfolio/locus-backend/internal/shared/errors"
)

// 缓存key前缀，单目录与集合互不冲突
const (
	folderKeyPrefix     = "folder:"
	collectionKeyPrefix = "collection:"
)

// DefaultCollectionRoot 默认集合根目录
const DefaultCollectionRoot = "photography"

// Cache 媒体查询结果缓存
type Cache = cache.ExpiringCache[[]entities.MediaResource]

// Options 媒体服务配置
type Options struct {
	CollectionRoot        string
	MaxResults            int
	AutoCreateFolders     bool
	CollectionConcurrency int
}

// Service 带缓存的媒体查询服务
// 返回的切片与缓存共享底层数组，调用方不得修改
type Service struct {
	cache          *Cache
	resolver       *FolderResolver
	aggregator     *CollectionAggregator
	collectionRoot string
}

var _ contracts.MediaService = (*Service)(nil)

// NewService 创建媒体服务
func NewService(api contracts.MediaAPI, c *Cache, opts Options) *Service {
	if opts.CollectionRoot == "" {
		opts.CollectionRoot = DefaultCollectionRoot
	}
	if c == nil {
		c = cache.New[[]entities.MediaResource](cache.Options{})
	}
	resolver := NewFolderResolver(api, opts.MaxResults, opts.AutoCreateFolders)
	return &Service{
		cache:          c,
		resolver:       resolver,
		aggregator:     NewCollectionAggregator(api, resolver, opts.CollectionConcurrency),
		collectionRoot: opts.CollectionRoot,
	}
}

// FolderKey 单目录缓存key
func FolderKey(folder valueobjects.FolderPath) string {
	return folderKeyPrefix + folder.String()
}

// CollectionKey 集合缓存key
func CollectionKey(root valueobjects.FolderPath) string {
	return collectionKeyPrefix + root.String()
}

// CollectionRoot 默认集合根目录
func (s *Service) CollectionRoot() string {
	return s.collectionRoot
}

// ResolveFolder 解析单个目录
func (s *Service) ResolveFolder(ctx context.Context, folderPath string) ([]entities.MediaResource, error) {
	folder, err := parseFolder(folderPath)
	if err != nil {
		return nil, err
	}
	return s.cache.GetOrLoad(ctx, FolderKey(folder), s.folderLoader(folder))
}

// ResolveCollection 解析集合，rootName为空时使用默认根目录
func (s *Service) ResolveCollection(ctx context.Context, rootName string) ([]entities.MediaResource, error) {
	root, err := s.collectionPath(rootName)
	if err != nil {
		return nil, err
	}
	return s.cache.GetOrLoad(ctx, CollectionKey(root), s.collectionLoader(root))
}

// RefreshFolder 忽略新鲜期强制重新加载目录，失败时保留原缓存
func (s *Service) RefreshFolder(ctx context.Context, folderPath string) (int, error) {
	folder, err := parseFolder(folderPath)
	if err != nil {
		return 0, err
	}
	res, err := s.cache.Refresh(ctx, FolderKey(folder), s.folderLoader(folder))
	return len(res), err
}

// RefreshCollection 强制重新聚合集合，失败时保留原缓存
func (s *Service) RefreshCollection(ctx context.Context, rootName string) (int, error) {
	root, err := s.collectionPath(rootName)
	if err != nil {
		return 0, err
	}
	res, err := s.cache.Refresh(ctx, CollectionKey(root), s.collectionLoader(root))
	return len(res), err
}

// CachedEntries 当前缓存条目数
func (s *Service) CachedEntries() int {
	return s.cache.Len()
}

func (s *Service) folderLoader(folder valueobjects.FolderPath) cache.Loader[[]entities.MediaResource] {
	return func(ctx context.Context) ([]entities.MediaResource, error) {
		return s.resolver.Resolve(ctx, folder.String())
	}
}

func (s *Service) collectionLoader(root valueobjects.FolderPath) cache.Loader[[]entities.MediaResource] {
	return func(ctx context.Context) ([]entities.MediaResource, error) {
		return s.aggregator.Resolve(ctx, root)
	}
}

func (s *Service) collectionPath(rootName string) (valueobjects.FolderPath, error) {
	if rootName == "" {
		rootName = s.collectionRoot
	}
	return parseFolder(rootName)
}

func parseFolder(raw string) (valueobjects.FolderPath, error) {
	folder, err := valueobjects.NewFolderPath(raw)
	if err != nil {
		return valueobjects.FolderPath{}, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInvalidRequest, err.Error(), err)
	}
	return folder, nil
}
