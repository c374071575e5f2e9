package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	"github.com/locus-portfolio/locus-backend/internal/application/contracts"
	apperrors "github.com/locus-portfolio/locus-backend/internal/shared/errors"
	"github.com/locus-portfolio/locus-backend/pkg/httpclient"
	"github.com/locus-portfolio/locus-backend/pkg/logger"
)

// 操作名，同时用作指标标签
const (
	OpSearch         = "search"
	OpListSubfolders = "list_subfolders"
	OpCreateFolder   = "create_folder"
)

// DefaultBaseURL Cloudinary Admin API地址
const DefaultBaseURL = "https://api.cloudinary.com"

// FolderPageSize folders接口单页上限
const FolderPageSize = 500

// maxFolderPages 翻页上限，游标异常循环时报错而不是无限请求
const maxFolderPages = 100

// Observer 接收每次API调用的耗时与结果
type Observer interface {
	ObserveAPICall(operation string, duration time.Duration, err error)
}

// Config 客户端配置
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string
	// QPS 所有操作合计的每秒请求数上限，<=0不限速
	QPS int
	// OperationQPS 按操作名（OpSearch等）单独限速，与全局限速同时生效
	OperationQPS map[string]int
	// Timeout 单次请求超时
	Timeout time.Duration
	// MaxRetries 传输错误、429和5xx的最大重试次数
	MaxRetries int
	// RetryInterval 首次重试间隔，默认200ms
	RetryInterval time.Duration
}

// Client Cloudinary Admin API客户端
type Client struct {
	cfg         Config
	httpClient  *resty.Client
	rateLimiter *rateLimiter
	observer    Observer
}

var _ contracts.MediaAPI = (*Client)(nil)

// NewClient 创建客户端
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 200 * time.Millisecond
	}
	for op := range cfg.OperationQPS {
		if !knownOperation(op) {
			logger.Warn("Ignoring rate limit for unknown media API operation", "operation", op)
		}
	}

	return &Client{
		cfg:         cfg,
		httpClient:  resty.New().SetHeader("User-Agent", "locus-backend"),
		rateLimiter: newRateLimiter(cfg.QPS, cfg.OperationQPS),
	}
}

// SetObserver 设置调用观察者（指标）
func (c *Client) SetObserver(o Observer) {
	c.observer = o
}

func knownOperation(op string) bool {
	switch op {
	case OpSearch, OpListSubfolders, OpCreateFolder:
		return true
	}
	return false
}

// Search 按表达式搜索资源
func (c *Client) Search(ctx context.Context, req contracts.SearchRequest) (*contracts.SearchResponse, error) {
	body := searchRequest{
		Expression: req.Expression,
		MaxResults: req.MaxResults,
	}
	if req.SortField != "" {
		order := req.SortOrder
		if order == "" {
			order = contracts.SortOrderDesc
		}
		body.SortBy = []map[string]string{{req.SortField: string(order)}}
	}
	if req.IncludeContext {
		body.WithField = []string{"context"}
	}

	var resp searchResponse
	if err := c.call(ctx, OpSearch, req.Expression, http.MethodPost, c.endpoint("resources", "search"), body, &resp); err != nil {
		return nil, err
	}

	out := &contracts.SearchResponse{
		TotalCount: resp.TotalCount,
		Resources:  make([]contracts.RawResource, 0, len(resp.Resources)),
	}
	for _, r := range resp.Resources {
		out.Resources = append(out.Resources, contracts.RawResource(r))
	}
	return out, nil
}

// ListSubfolders 列出直接子目录，按next_cursor翻页直到取完
func (c *Client) ListSubfolders(ctx context.Context, path string) ([]contracts.Folder, error) {
	endpoint := c.folderEndpoint(path)
	folders := []contracts.Folder{}
	cursor := ""

	for page := 1; ; page++ {
		if page > maxFolderPages {
			return nil, &apperrors.ExternalServiceError{
				Op:    OpListSubfolders,
				Path:  path,
				Cause: fmt.Errorf("folder listing exceeded %d pages", maxFolderPages),
			}
		}

		query := url.Values{}
		query.Set("max_results", strconv.Itoa(FolderPageSize))
		if cursor != "" {
			query.Set("next_cursor", cursor)
		}

		var resp foldersResponse
		if err := c.call(ctx, OpListSubfolders, path, http.MethodGet, endpoint+"?"+query.Encode(), nil, &resp); err != nil {
			return nil, err
		}
		for _, f := range resp.Folders {
			folders = append(folders, contracts.Folder{Name: f.Name, Path: f.Path})
		}

		if resp.NextCursor == "" {
			return folders, nil
		}
		if resp.NextCursor == cursor {
			return nil, &apperrors.ExternalServiceError{
				Op:    OpListSubfolders,
				Path:  path,
				Cause: fmt.Errorf("folder listing returned a repeated cursor %q", cursor),
			}
		}
		cursor = resp.NextCursor
	}
}

// CreateFolder 创建目录，目录已存在时远端同样返回成功
func (c *Client) CreateFolder(ctx context.Context, path string) error {
	var resp createFolderResponse
	return c.call(ctx, OpCreateFolder, path, http.MethodPost, c.folderEndpoint(path), nil, &resp)
}

func (c *Client) endpoint(parts ...string) string {
	return c.cfg.BaseURL + "/v1_1/" + url.PathEscape(c.cfg.CloudName) + "/" + strings.Join(parts, "/")
}

// folderEndpoint 逐段转义目录路径，保留分隔符
func (c *Client) folderEndpoint(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return c.endpoint("folders", strings.Join(segments, "/"))
}

// call 执行一次带限速、超时与重试的请求，所有失败都包装为ExternalServiceError
func (c *Client) call(ctx context.Context, op, target, method, endpoint string, reqBody, respBody any) error {
	start := time.Now()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.cfg.RetryInterval
	policy.MaxInterval = 5 * c.cfg.RetryInterval
	policy.MaxElapsedTime = 0

	attempts := 0
	operation := func() error {
		attempts++
		if err := c.rateLimiter.Wait(ctx, op); err != nil {
			return backoff.Permanent(fmt.Errorf("rate limit wait: %w", err))
		}

		opts := httpclient.DefaultOptions().
			WithContext(ctx).
			WithClient(c.httpClient).
			WithTimeout(c.cfg.Timeout).
			WithBasicAuth(c.cfg.APIKey, c.cfg.APISecret)

		err := httpclient.DoJSONRequest(method, endpoint, reqBody, respBody, opts)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !retryable(err) {
			return backoff.Permanent(err)
		}
		logger.Debug("Retrying media API request", "operation", op, "path", target, "attempt", attempts, "error", err)
		return err
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.cfg.MaxRetries)), ctx))
	if err != nil {
		err = wrapError(op, target, err)
		logger.Warn("Media API request failed", "operation", op, "path", target, "attempts", attempts, "error", err)
	}

	if c.observer != nil {
		c.observer.ObserveAPICall(op, time.Since(start), err)
	}
	return err
}

// retryable 传输错误、429和5xx可重试，其余4xx不可重试
func retryable(err error) bool {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	return true
}

func wrapError(op, target string, err error) error {
	ext := &apperrors.ExternalServiceError{Op: op, Path: target, Cause: err}

	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		ext.StatusCode = statusErr.StatusCode
		if statusErr.StatusCode == http.StatusNotFound {
			ext.Cause = fmt.Errorf("%w: %s", apperrors.ErrNotFound, statusErr.Body)
		}
	}
	return ext
}
