package cloudinary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locus-portfolio/locus-backend/internal/application/contracts"
	apperrors "github.com/locus-portfolio/locus-backend/internal/shared/errors"
)

type recordedCall struct {
	op  string
	err error
}

type fakeObserver struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (f *fakeObserver) ObserveAPICall(op string, _ time.Duration, err error) {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{op: op, err: err})
	f.mu.Unlock()
}

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries int) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		CloudName:     "demo",
		APIKey:        "key",
		APISecret:     "secret",
		BaseURL:       srv.URL,
		Timeout:       2 * time.Second,
		MaxRetries:    maxRetries,
		RetryInterval: time.Millisecond,
	})
}

func TestClient_Search(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1_1/demo/resources/search", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_count":2,"resources":[
			{"public_id":"work/a","secure_url":"https://res/a.jpg","width":800},
			{"public_id":"work/b","secure_url":"https://res/b.jpg","context":{"custom":{"alt":"b"}}}
		]}`))
	}, 0)

	resp, err := client.Search(context.Background(), contracts.SearchRequest{
		Expression:     `folder="work" AND resource_type:image`,
		MaxResults:     500,
		SortField:      "public_id",
		SortOrder:      contracts.SortOrderDesc,
		IncludeContext: true,
	})
	require.NoError(t, err)

	assert.Equal(t, `folder="work" AND resource_type:image`, got["expression"])
	assert.Equal(t, float64(500), got["max_results"])
	assert.Equal(t, []any{map[string]any{"public_id": "desc"}}, got["sort_by"])
	assert.Equal(t, []any{"context"}, got["with_field"])

	require.Len(t, resp.Resources, 2)
	assert.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, "work/a", resp.Resources[0]["public_id"])
	assert.Equal(t, float64(800), resp.Resources[0]["width"])
}

func TestClient_ListSubfoldersEscapesPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1_1/demo/folders/photography/2023%20Night", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"folders":[{"name":"2023_Landscapes","path":"photography/2023_Landscapes"},{"name":"misc","path":"photography/misc"}]}`))
	}, 0)

	folders, err := client.ListSubfolders(context.Background(), "/photography/2023 Night/")
	require.NoError(t, err)
	assert.Equal(t, []contracts.Folder{
		{Name: "2023_Landscapes", Path: "photography/2023_Landscapes"},
		{Name: "misc", Path: "photography/misc"},
	}, folders)
}

func folderPage(prefix string, n int, cursor string) []byte {
	resp := foldersResponse{NextCursor: cursor}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s_%02d", prefix, i)
		resp.Folders = append(resp.Folders, folderItem{Name: name, Path: "photography/" + name})
	}
	b, _ := json.Marshal(resp)
	return b
}

func TestClient_ListSubfoldersFollowsCursor(t *testing.T) {
	var calls int32
	var queries []url.Values
	var mu sync.Mutex
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		mu.Lock()
		queries = append(queries, r.URL.Query())
		mu.Unlock()

		if r.URL.Query().Get("next_cursor") == "abc" {
			_, _ = w.Write(folderPage("2024", 2, ""))
			return
		}
		_, _ = w.Write(folderPage("2023", 10, "abc"))
	}, 0)

	folders, err := client.ListSubfolders(context.Background(), "photography")
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	require.Len(t, folders, 12)
	assert.Equal(t, "2023_00", folders[0].Name)
	assert.Equal(t, "2024_01", folders[11].Name)

	require.Len(t, queries, 2)
	assert.Equal(t, "500", queries[0].Get("max_results"))
	assert.Empty(t, queries[0].Get("next_cursor"))
	assert.Equal(t, "500", queries[1].Get("max_results"))
	assert.Equal(t, "abc", queries[1].Get("next_cursor"))
}

func TestClient_ListSubfoldersPageFailureFailsListing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("next_cursor") != "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"invalid cursor"}}`))
			return
		}
		_, _ = w.Write(folderPage("2023", 3, "abc"))
	}, 0)

	folders, err := client.ListSubfolders(context.Background(), "photography")
	require.Error(t, err)
	assert.Nil(t, folders)

	ext, ok := apperrors.AsExternal(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ext.StatusCode)
}

func TestClient_ListSubfoldersRepeatedCursor(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write(folderPage("2023", 1, "same"))
	}, 0)

	_, err := client.ListSubfolders(context.Background(), "photography")
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	_, ok := apperrors.AsExternal(err)
	assert.True(t, ok)
}

func TestClient_CreateFolder(t *testing.T) {
	var hits int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1_1/demo/folders/work/locus", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"path":"work/locus","name":"locus"}`))
	}, 0)

	require.NoError(t, client.CreateFolder(context.Background(), "work/locus"))
	assert.Equal(t, int32(1), hits)
}

func TestClient_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"Can't find folder with path nope"}}`))
	}, 2)

	_, err := client.ListSubfolders(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	ext, ok := apperrors.AsExternal(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ext.StatusCode)
	assert.Equal(t, OpListSubfolders, ext.Op)
}

func TestClient_Retry(t *testing.T) {
	tests := []struct {
		name       string
		statuses   []int
		maxRetries int
		wantCalls  int32
		wantErr    bool
		wantStatus int
	}{
		{name: "5xx后成功", statuses: []int{500, 502, 200}, maxRetries: 2, wantCalls: 3},
		{name: "429后成功", statuses: []int{429, 200}, maxRetries: 2, wantCalls: 2},
		{name: "重试次数用尽", statuses: []int{503, 503, 503}, maxRetries: 1, wantCalls: 2, wantErr: true, wantStatus: 503},
		{name: "4xx不重试", statuses: []int{401, 200}, maxRetries: 3, wantCalls: 1, wantErr: true, wantStatus: 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				n := atomic.AddInt32(&calls, 1)
				status := tt.statuses[int(n)-1]
				w.WriteHeader(status)
				if status == http.StatusOK {
					_, _ = w.Write([]byte(`{"folders":[]}`))
				}
			}, tt.maxRetries)

			_, err := client.ListSubfolders(context.Background(), "photography")
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ext, ok := apperrors.AsExternal(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, ext.StatusCode)
			assert.False(t, apperrors.IsNotFound(err))
		})
	}
}

func TestClient_ObserverAndCancellation(t *testing.T) {
	obs := &fakeObserver{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resources":[]}`))
	}, 0)
	client.SetObserver(obs)

	_, err := client.Search(context.Background(), contracts.SearchRequest{Expression: "x"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Search(ctx, contracts.SearchRequest{Expression: "x"})
	require.Error(t, err)
	_, ok := apperrors.AsExternal(err)
	assert.True(t, ok)

	require.Len(t, obs.calls, 2)
	assert.Equal(t, OpSearch, obs.calls[0].op)
	assert.NoError(t, obs.calls[0].err)
	assert.Error(t, obs.calls[1].err)
}

func TestClient_OperationRateLimit(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{"total_count":0,"resources":[]}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		CloudName:    "demo",
		BaseURL:      srv.URL,
		OperationQPS: map[string]int{OpSearch: 1},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Search(ctx, contracts.SearchRequest{Expression: "folder=\"a\""})
	require.NoError(t, err)
	_, err = client.Search(ctx, contracts.SearchRequest{Expression: "folder=\"b\""})
	require.Error(t, err)
	_, ok := apperrors.AsExternal(err)
	assert.True(t, ok)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
