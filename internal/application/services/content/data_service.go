package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/locus-portfolio/locus-backend/internal/application/contracts"
	apperrors "github.com/locus-portfolio/locus-backend/internal/shared/errors"
	"github.com/locus-portfolio/locus-backend/pkg/httpclient"
	"github.com/locus-portfolio/locus-backend/pkg/logger"
)

// WorkFile 工作经历数据文件
const WorkFile = "work.json"

// DefaultAllowedFiles 允许通过API读取的数据文件
var DefaultAllowedFiles = []string{"projects.json", "photos.json", WorkFile}

// WorkItem work.json中的一项，字段集合开放
type WorkItem map[string]any

// Title 标题，用于按标题查找
func (w WorkItem) Title() string {
	s, _ := w["title"].(string)
	return s
}

// DataService 静态JSON数据服务
type DataService struct {
	dataDir string
	allowed []string
	media   contracts.MediaService
}

// NewDataService 创建数据服务，allowed为空时使用DefaultAllowedFiles
func NewDataService(dataDir string, allowed []string, media contracts.MediaService) *DataService {
	if len(allowed) == 0 {
		allowed = DefaultAllowedFiles
	}
	return &DataService{dataDir: dataDir, allowed: allowed, media: media}
}

// GetDataFile 读取允许列表中的数据文件；只取文件名部分，防止目录穿越
// work.json返回去除图片字段后的形式
func (s *DataService) GetDataFile(fileName string) (any, error) {
	name := filepath.Base(strings.TrimSpace(fileName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, apperrors.NewServiceError(apperrors.ErrorCodeInvalidRequest, "file name parameter is required")
	}
	if !slices.Contains(s.allowed, name) {
		return nil, apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodeForbidden,
			"access to file '"+name+"' is not allowed", map[string]any{"file": name})
	}

	if name == WorkFile {
		return s.GetWorkData()
	}

	var data any
	if err := s.readJSON(name, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// GetWorkData 返回work.json，每项的images和imageFolders被替换为空数组
// 图片由GetWorkItemImages按需获取
func (s *DataService) GetWorkData() ([]WorkItem, error) {
	items, err := s.loadWork()
	if err != nil {
		return nil, err
	}

	stripped := make([]WorkItem, 0, len(items))
	for _, item := range items {
		out := make(WorkItem, len(item)+2)
		for k, v := range item {
			out[k] = v
		}
		out["images"] = []string{}
		out["imageFolders"] = []string{}
		stripped = append(stripped, out)
	}
	return stripped, nil
}

// GetWorkItemImages 返回工作项的静态图片加上媒体目录中的图片URL
// 目录优先取imagesPath+name，否则使用旧的imageFolders；目录解析失败只记录日志
func (s *DataService) GetWorkItemImages(ctx context.Context, title string) ([]string, error) {
	items, err := s.loadWork()
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(items, func(w WorkItem) bool { return w.Title() == title })
	if idx < 0 {
		return nil, apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodeNotFound,
			"work item '"+title+"' not found", map[string]any{"title": title})
	}
	item := items[idx]

	images := append([]string{}, stringSlice(item["images"])...)
	for _, folder := range workItemFolders(item) {
		resources, err := s.media.ResolveFolder(ctx, folder)
		if err != nil {
			logger.Error("Failed to resolve work item images", "title", title, "folder", folder, "error", err)
			continue
		}
		for _, r := range resources {
			images = append(images, r.URL)
		}
	}
	return images, nil
}

func workItemFolders(item WorkItem) []string {
	imagesPath, _ := item["imagesPath"].(string)
	name, _ := item["name"].(string)
	if imagesPath != "" && name != "" {
		return []string{imagesPath + name}
	}

	var folders []string
	for _, f := range stringSlice(item["imageFolders"]) {
		if strings.TrimSpace(f) != "" {
			folders = append(folders, f)
		}
	}
	if len(folders) > 0 {
		logger.Warn("Work item uses legacy imageFolders", "title", item.Title())
	}
	return folders
}

func stringSlice(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (s *DataService) loadWork() ([]WorkItem, error) {
	var items []WorkItem
	if err := s.readJSON(WorkFile, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *DataService) readJSON(name string, v any) error {
	path := filepath.Join(s.dataDir, name)
	if err := httpclient.ReadJSONFile(path, v); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodeNotFound,
				"data file '"+name+"' not found", map[string]any{"file": name})
		}
		logger.Error("Failed to load data file", "file", path, "error", err)
		return apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInternalError,
			"error serving data file '"+name+"'", err)
	}
	return nil
}
