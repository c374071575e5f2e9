package media

import (
	"cmp"
	"context"
	"path"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/locus-portfolio/locus-backend/internal/application/contracts"
	"github.com/locus-portfolio/locus-backend/internal/domain/entities"
	"github.com/locus-portfolio/locus-backend/internal/domain/valueobjects"
	apperrors "github.com/locus-portfolio/locus-backend/internal/shared/errors"
	"github.com/locus-portfolio/locus-backend/pkg/logger"
	"github.com/locus-portfolio/locus-backend/pkg/utils"
)

// DefaultCollectionConcurrency 同时解析的子相册数
const DefaultCollectionConcurrency = 4

// CollectionAggregator 两级集合聚合器：根目录下每个子目录是一个"<年份>_<主题>"相册
type CollectionAggregator struct {
	api         contracts.MediaAPI
	resolver    *FolderResolver
	concurrency int
}

// NewCollectionAggregator 创建聚合器
func NewCollectionAggregator(api contracts.MediaAPI, resolver *FolderResolver, concurrency int) *CollectionAggregator {
	if concurrency <= 0 {
		concurrency = DefaultCollectionConcurrency
	}
	return &CollectionAggregator{api: api, resolver: resolver, concurrency: concurrency}
}

// Resolve 聚合根目录下所有子相册的资源
// 任一子相册失败则整体失败，不返回部分结果
func (a *CollectionAggregator) Resolve(ctx context.Context, root valueobjects.FolderPath) ([]entities.MediaResource, error) {
	folders, err := a.api.ListSubfolders(ctx, root.String())
	if err != nil {
		if apperrors.IsNotFound(err) {
			return []entities.MediaResource{}, nil
		}
		return nil, external("list_subfolders", root.String(), err)
	}
	if len(folders) == 0 {
		return []entities.MediaResource{}, nil
	}

	// 每个子相册写入自己的槽位，合并顺序与枚举顺序一致
	slots := make([][]entities.MediaResource, len(folders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, f := range folders {
		name := f.Name
		if name == "" {
			name = path.Base(f.Path)
		}
		g.Go(func() error {
			album := valueobjects.ParseAlbumFolder(name)
			items, err := a.resolver.Search(gctx, root.Join(name).String())
			if err != nil {
				return err
			}
			derived := album.Metadata()
			for j := range items {
				items[j] = items[j].WithMetadata(derived)
			}
			slots[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Failed to aggregate media collection", "root", root.String(), "error", err)
		return nil, err
	}

	total := 0
	for _, s := range slots {
		total += len(s)
	}
	merged := make([]entities.MediaResource, 0, total)
	for _, s := range slots {
		merged = append(merged, s...)
	}

	SortResources(merged)
	logger.Debug("Aggregated media collection", "root", root.String(), "albums", len(folders), "resources", total)
	return merged, nil
}

// SortResources 稳定排序：年份（整数）倒序，同年按createdAt倒序
// 年份无法解析视为0，时间无法解析视为Unix纪元，二者都排在最后
func SortResources(resources []entities.MediaResource) {
	slices.SortStableFunc(resources, func(x, y entities.MediaResource) int {
		yx := valueobjects.YearValue(x.MetadataString(entities.MetadataKeyYear))
		yy := valueobjects.YearValue(y.MetadataString(entities.MetadataKeyYear))
		if c := cmp.Compare(yy, yx); c != 0 {
			return c
		}
		return utils.ParseTimeOrEpoch(y.CreatedAt).Compare(utils.ParseTimeOrEpoch(x.CreatedAt))
	})
}
