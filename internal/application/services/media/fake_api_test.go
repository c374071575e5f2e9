package media

import (
	"context"
	"slices"
	"sync"

	"github.com/locus-portfolio/locus-backend/internal/application/contracts"
	apperrors "github.com/locus-portfolio/locus-backend/internal/shared/errors"
)

// fakeAPI 内存中的媒体服务
type fakeAPI struct {
	mu sync.Mutex

	resources map[string][]contracts.RawResource
	folders   map[string][]contracts.Folder
	// searchErr/listErr 按目录注入错误
	searchErr map[string]error
	listErr   map[string]error
	createErr error
	// reverse 为true时倒序返回子目录
	reverse bool

	searches []contracts.SearchRequest
	lists    []string
	created  []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		resources: map[string][]contracts.RawResource{},
		folders:   map[string][]contracts.Folder{},
		searchErr: map[string]error{},
		listErr:   map[string]error{},
	}
}

func (f *fakeAPI) addAlbum(root, name string, items ...contracts.RawResource) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folders[root] = append(f.folders[root], contracts.Folder{Name: name, Path: root + "/" + name})
	f.resources[root+"/"+name] = items
}

func (f *fakeAPI) Search(_ context.Context, req contracts.SearchRequest) (*contracts.SearchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, req)

	for folder, err := range f.searchErr {
		if FolderExpression(folder) == req.Expression {
			return nil, err
		}
	}
	for folder, items := range f.resources {
		if FolderExpression(folder) == req.Expression {
			return &contracts.SearchResponse{TotalCount: len(items), Resources: slices.Clone(items)}, nil
		}
	}
	return &contracts.SearchResponse{Resources: []contracts.RawResource{}}, nil
}

func (f *fakeAPI) ListSubfolders(_ context.Context, path string) ([]contracts.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, path)

	if err, ok := f.listErr[path]; ok {
		return nil, err
	}
	folders, ok := f.folders[path]
	if !ok {
		return nil, &apperrors.ExternalServiceError{Op: "list_subfolders", Path: path, StatusCode: 404, Cause: apperrors.ErrNotFound}
	}
	out := slices.Clone(folders)
	if f.reverse {
		slices.Reverse(out)
	}
	return out, nil
}

func (f *fakeAPI) CreateFolder(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, path)
	return f.createErr
}

func (f *fakeAPI) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches)
}

func (f *fakeAPI) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lists)
}

func image(id, createdAt string) contracts.RawResource {
	return contracts.RawResource{
		"public_id":  id,
		"secure_url": "https://res.example.com/" + id + ".jpg",
		"format":     "jpg",
		"created_at": createdAt,
	}
}
