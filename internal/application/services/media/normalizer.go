package media

import (
	"encoding/json"
	"math"

	"github.com/locus-portfolio/locus-backend/internal/application/contracts"
	"github.com/locus-portfolio/locus-backend/internal/domain/entities"
	apperrors "github.com/locus-portfolio/locus-backend/internal/shared/errors"
)

// Normalize 把媒体服务返回的原始条目转换为MediaResource
// 缺少标识或URL时返回MalformedResourceError；Metadata始终非nil
func Normalize(raw contracts.RawResource) (entities.MediaResource, error) {
	id := firstString(raw, "public_id", "asset_id")
	if id == "" {
		return entities.MediaResource{}, &apperrors.MalformedResourceError{Field: "id", Raw: raw}
	}
	url := firstString(raw, "secure_url", "url")
	if url == "" {
		return entities.MediaResource{}, &apperrors.MalformedResourceError{Field: "url", Raw: raw}
	}

	return entities.MediaResource{
		ID:        id,
		URL:       url,
		Width:     intField(raw, "width"),
		Height:    intField(raw, "height"),
		Format:    firstString(raw, "format"),
		CreatedAt: firstString(raw, "created_at"),
		Metadata:  metadataOf(raw),
	}, nil
}

func firstString(raw contracts.RawResource, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func intField(raw contracts.RawResource, key string) *int {
	var n int
	switch v := raw[key].(type) {
	case float64:
		if v != math.Trunc(v) {
			return nil
		}
		n = int(v)
	case int:
		n = v
	case int64:
		n = int(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil
		}
		n = int(i)
	default:
		return nil
	}
	return &n
}

// metadataOf 合并结构化metadata与context中的自定义字段，context优先
func metadataOf(raw contracts.RawResource) map[string]any {
	out := make(map[string]any)
	if m, ok := raw["metadata"].(map[string]any); ok {
		for k, v := range m {
			out[k] = v
		}
	}

	ctx, ok := raw["context"].(map[string]any)
	if !ok {
		return out
	}
	custom := ctx
	if c, ok := ctx["custom"].(map[string]any); ok {
		custom = c
	}
	for k, v := range custom {
		out[k] = v
	}
	return out
}
