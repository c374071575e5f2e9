package cloudinary

// searchRequest /resources/search 请求体
type searchRequest struct {
	Expression string              `json:"expression"`
	MaxResults int                 `json:"max_results,omitempty"`
	SortBy     []map[string]string `json:"sort_by,omitempty"`
	WithField  []string            `json:"with_field,omitempty"`
}

// searchResponse /resources/search 响应
// 资源条目保持松散结构，由上层归一化
type searchResponse struct {
	TotalCount int              `json:"total_count"`
	Time       int              `json:"time"`
	NextCursor string           `json:"next_cursor,omitempty"`
	Resources  []map[string]any `json:"resources"`
}

// folderItem 子目录条目
type folderItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// foldersResponse GET /folders/{path} 响应
type foldersResponse struct {
	Folders    []folderItem `json:"folders"`
	NextCursor string       `json:"next_cursor,omitempty"`
	TotalCount int          `json:"total_count"`
}

// createFolderResponse POST /folders/{path} 响应
type createFolderResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
	Name    string `json:"name"`
}
