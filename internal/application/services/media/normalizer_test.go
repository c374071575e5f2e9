package media

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locus-portfolio/locus-backend/internal/application/contracts"
	apperrors "github.com/locus-portfolio/locus-backend/internal/shared/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		raw          contracts.RawResource
		wantID       string
		wantURL      string
		wantWidth    *int
		wantMetadata map[string]any
		wantMissing  string
	}{
		{
			name: "完整条目",
			raw: contracts.RawResource{
				"public_id": "work/locus/cover", "secure_url": "https://res/cover.jpg", "url": "http://res/cover.jpg",
				"width": float64(1200), "height": float64(800), "format": "jpg", "created_at": "2023-05-01T00:00:00Z",
				"context": map[string]any{"custom": map[string]any{"alt": "Cover", "caption": "Locus"}},
			},
			wantID:       "work/locus/cover",
			wantURL:      "https://res/cover.jpg",
			wantWidth:    intPtr(1200),
			wantMetadata: map[string]any{"alt": "Cover", "caption": "Locus"},
		},
		{
			name:         "回退到asset_id和url",
			raw:          contracts.RawResource{"asset_id": "abc123", "url": "http://res/a.jpg"},
			wantID:       "abc123",
			wantURL:      "http://res/a.jpg",
			wantMetadata: map[string]any{},
		},
		{
			name: "context无custom层",
			raw: contracts.RawResource{
				"public_id": "a", "secure_url": "https://res/a.jpg",
				"context": map[string]any{"alt": "plain"},
			},
			wantID:       "a",
			wantURL:      "https://res/a.jpg",
			wantMetadata: map[string]any{"alt": "plain"},
		},
		{
			name: "结构化metadata与context合并",
			raw: contracts.RawResource{
				"public_id": "a", "secure_url": "https://res/a.jpg",
				"metadata": map[string]any{"year": "2020", "rating": float64(5)},
				"context":  map[string]any{"custom": map[string]any{"year": "2021"}},
			},
			wantID:       "a",
			wantURL:      "https://res/a.jpg",
			wantMetadata: map[string]any{"year": "2021", "rating": float64(5)},
		},
		{
			name: "非整数宽度被忽略",
			raw: contracts.RawResource{
				"public_id": "a", "secure_url": "https://res/a.jpg", "width": 12.5,
			},
			wantID:       "a",
			wantURL:      "https://res/a.jpg",
			wantMetadata: map[string]any{},
		},
		{name: "缺少标识", raw: contracts.RawResource{"secure_url": "https://res/a.jpg"}, wantMissing: "id"},
		{name: "缺少URL", raw: contracts.RawResource{"public_id": "a"}, wantMissing: "url"},
		{name: "标识为空串", raw: contracts.RawResource{"public_id": "", "secure_url": "https://res/a.jpg"}, wantMissing: "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantMissing != "" {
				var malformed *apperrors.MalformedResourceError
				require.True(t, errors.As(err, &malformed))
				assert.Equal(t, tt.wantMissing, malformed.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, tt.wantURL, got.URL)
			assert.Equal(t, tt.wantWidth, got.Width)
			assert.Equal(t, tt.wantMetadata, got.Metadata)
		})
	}
}

func TestNormalize_JSONShape(t *testing.T) {
	res, err := Normalize(contracts.RawResource{"public_id": "a", "secure_url": "https://res/a.jpg"})
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","url":"https://res/a.jpg","metadata":{}}`, string(data))
}

func intPtr(n int) *int { return &n }
