package entities

// 元数据中由相册目录名派生的键
const (
	MetadataKeyYear     = "year"
	MetadataKeyTopic    = "topic"
	MetadataKeyFolder   = "folder"
	MetadataKeyCategory = "category"
)

// MediaResource 媒体资源实体
// ID和URL必定非空；其余字段未知时省略，而不是写入占位值。
// Metadata始终是一个对象（可能为空），序列化时不会省略。
type MediaResource struct {
	ID        string         `json:"id"`
	URL       string         `json:"url"`
	Width     *int           `json:"width,omitempty"`
	Height    *int           `json:"height,omitempty"`
	Format    string         `json:"format,omitempty"`
	CreatedAt string         `json:"createdAt,omitempty"`
	Metadata  map[string]any `json:"metadata"`
}

// MetadataString 读取字符串类型的元数据，不存在或类型不符时返回空串
func (r MediaResource) MetadataString(key string) string {
	if r.Metadata == nil {
		return ""
	}
	s, _ := r.Metadata[key].(string)
	return s
}

// WithMetadata 返回合并了派生元数据的副本，派生键覆盖同名的原生键
func (r MediaResource) WithMetadata(derived map[string]any) MediaResource {
	merged := make(map[string]any, len(r.Metadata)+len(derived))
	for k, v := range r.Metadata {
		merged[k] = v
	}
	for k, v := range derived {
		merged[k] = v
	}
	r.Metadata = merged
	return r
}
