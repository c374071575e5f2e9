package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options HTTP请求选项
type Options struct {
	// 超时时间，默认30秒
	Timeout time.Duration
	// 上下文，用于取消请求
	Context context.Context
	// resty客户端，如果为nil则使用共享的默认客户端
	Client *resty.Client
	// Basic认证，为空时不设置
	Username string
	Password string
}

var defaultClient = resty.New()

// DefaultOptions 返回默认选项
func DefaultOptions() *Options {
	return &Options{
		Timeout: 30 * time.Second,
		Context: context.Background(),
	}
}

// WithTimeout 设置超时时间
func (o *Options) WithTimeout(timeout time.Duration) *Options {
	o.Timeout = timeout
	return o
}

// WithContext 设置上下文
func (o *Options) WithContext(ctx context.Context) *Options {
	o.Context = ctx
	return o
}

// WithClient 设置resty客户端
func (o *Options) WithClient(client *resty.Client) *Options {
	o.Client = client
	return o
}

// WithBasicAuth 设置Basic认证
func (o *Options) WithBasicAuth(username, password string) *Options {
	o.Username = username
	o.Password = password
	return o
}

// StatusError 非2xx响应
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP request failed with status %d: %s", e.StatusCode, e.Body)
}

// DoJSONRequest 执行JSON请求，统一处理JSON编码/解码和HTTP请求
func DoJSONRequest(method, url string, reqBody, respBody any, opts ...*Options) error {
	var options *Options
	if len(opts) > 0 && opts[0] != nil {
		options = opts[0]
	} else {
		options = DefaultOptions()
	}

	client := options.Client
	if client == nil {
		client = defaultClient
	}

	ctx := options.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	req := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if options.Username != "" {
		req.SetBasicAuth(options.Username, options.Password)
	}
	if reqBody != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(reqBody)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	if respBody != nil {
		if err := json.Unmarshal(resp.Body(), respBody); err != nil {
			return fmt.Errorf("failed to unmarshal response body: %w", err)
		}
	}

	return nil
}

// ReadJSONFile 从文件读取JSON数据
// 文件不存在时返回的错误满足 errors.Is(err, os.ErrNotExist)
func ReadJSONFile(filename string, v any) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from file %s: %w", filename, err)
	}

	return nil
}
