package contracts

import (
	"context"

	"github.com/locus-portfolio/locus-backend/internal/domain/entities"
)

// SortOrder 排序方向
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// RawResource 媒体服务返回的原始条目，字段集合由远端决定
// 只在归一化之前使用，不向外暴露
type RawResource map[string]any

// SearchRequest 按目录表达式搜索媒体资源
type SearchRequest struct {
	Expression     string
	MaxResults     int
	SortField      string
	SortOrder      SortOrder
	IncludeContext bool
}

// SearchResponse 搜索结果
type SearchResponse struct {
	TotalCount int
	Resources  []RawResource
}

// Folder 子目录描述
type Folder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// MediaAPI 远端媒体服务
// 目录不存在时实现应返回包装了errors.ErrNotFound的错误，其余失败返回ExternalServiceError
type MediaAPI interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	ListSubfolders(ctx context.Context, path string) ([]Folder, error)
	CreateFolder(ctx context.Context, path string) error
}

// MediaService 面向HTTP层的媒体查询服务（带缓存）
type MediaService interface {
	// ResolveFolder 返回单个目录下的全部图片资源，目录为空时返回空切片
	ResolveFolder(ctx context.Context, folderPath string) ([]entities.MediaResource, error)
	// ResolveCollection 返回集合根目录下所有子相册的资源，按年份、创建时间倒序
	ResolveCollection(ctx context.Context, rootName string) ([]entities.MediaResource, error)
	// CollectionRoot 配置的默认集合根目录
	CollectionRoot() string
}
