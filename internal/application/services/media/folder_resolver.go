package media

import (
	"context"
	"errors"
	"strings"

	"github.com/locus-portfolio/locus-backend/internal/application/contracts"
	"github.com/locus-portfolio/locus-backend/internal/domain/entities"
	apperrors "github.com/locus-portfolio/locus-backend/internal/shared/errors"
	"github.com/locus-portfolio/locus-backend/pkg/logger"
)

// MaxSearchResults 媒体服务单页上限
const MaxSearchResults = 500

// FolderExpression 精确匹配单个目录（不含子目录）中图片资源的搜索表达式
func FolderExpression(folder string) string {
	return `folder="` + strings.ReplaceAll(folder, `"`, `\"`) + `" AND resource_type:image`
}

// FolderResolver 单目录解析器
type FolderResolver struct {
	api        contracts.MediaAPI
	maxResults int
	autoCreate bool
}

// NewFolderResolver 创建解析器，maxResults<=0或超过单页上限时取上限
func NewFolderResolver(api contracts.MediaAPI, maxResults int, autoCreate bool) *FolderResolver {
	if maxResults <= 0 || maxResults > MaxSearchResults {
		maxResults = MaxSearchResults
	}
	return &FolderResolver{api: api, maxResults: maxResults, autoCreate: autoCreate}
}

// Resolve 解析目录；结果为空且开启autoCreate时顺带在远端创建该目录
// 创建失败只记录日志，仍返回空结果
func (r *FolderResolver) Resolve(ctx context.Context, folder string) ([]entities.MediaResource, error) {
	resources, err := r.Search(ctx, folder)
	if err != nil {
		return nil, err
	}
	if len(resources) > 0 || !r.autoCreate {
		return resources, nil
	}

	if err := r.api.CreateFolder(ctx, folder); err != nil {
		logger.Warn("Failed to create empty media folder", "folder", folder, "error", err)
	} else {
		logger.Info("Created empty media folder", "folder", folder)
	}
	return resources, nil
}

// Search 查询目录下的资源并归一化，没有副作用
// 目录不存在视为空结果；格式错误的条目被跳过
func (r *FolderResolver) Search(ctx context.Context, folder string) ([]entities.MediaResource, error) {
	resp, err := r.api.Search(ctx, contracts.SearchRequest{
		Expression:     FolderExpression(folder),
		MaxResults:     r.maxResults,
		SortField:      "public_id",
		SortOrder:      contracts.SortOrderDesc,
		IncludeContext: true,
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return []entities.MediaResource{}, nil
		}
		return nil, external("search", folder, err)
	}

	resources := make([]entities.MediaResource, 0, len(resp.Resources))
	for _, raw := range resp.Resources {
		res, err := Normalize(raw)
		if err != nil {
			var malformed *apperrors.MalformedResourceError
			if errors.As(err, &malformed) {
				logger.Warn("Skipping malformed media resource", "folder", folder, "missing", malformed.Field)
				continue
			}
			return nil, err
		}
		resources = append(resources, res)
	}

	if resp.TotalCount > len(resp.Resources) {
		logger.Debug("Media folder truncated to a single page", "folder", folder, "total", resp.TotalCount, "returned", len(resp.Resources))
	}
	return resources, nil
}

// external 确保错误以ExternalServiceError的形式向上传播
func external(op, path string, err error) error {
	if _, ok := apperrors.AsExternal(err); ok {
		return err
	}
	return &apperrors.ExternalServiceError{Op: op, Path: path, Cause: err}
}
