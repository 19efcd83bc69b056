// Package transport 负责向卖家端点异步投递 JSON 请求。
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"shop-bench/internal/config"
)

// ReplyHandler 接收一次投递的结果回调。
// OnReply 在拿到任意 HTTP 响应时触发；OnUnreachable 在连接层失败时触发。
// 同一次投递只会触发其中一个。
type ReplyHandler struct {
	OnReply       func(status int, body []byte)
	OnUnreachable func(err error)
}

// Endpoint 描述一次投递的目标地址。
type Endpoint struct {
	Hostname string
	Port     int
	Path     string
}

// Client 封装出站 HTTP 调用。
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient 创建传输客户端。
func NewClient(cfg config.TransportConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Send 异步 POST payload 到端点，立即返回，不等待响应。
// 回调在投递 goroutine 中执行。
func (c *Client) Send(ctx context.Context, endpoint Endpoint, pathSuffix string, payload interface{}, handler ReplyHandler) {
	go func() {
		status, body, err := c.post(ctx, endpoint, pathSuffix, payload)
		if err != nil {
			if handler.OnUnreachable != nil {
				handler.OnUnreachable(err)
			}
			return
		}
		if handler.OnReply != nil {
			handler.OnReply(status, body)
		}
	}()
}

func (c *Client) post(ctx context.Context, endpoint Endpoint, pathSuffix string, payload interface{}) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("序列化请求体失败: %w", err)
	}

	url := fmt.Sprintf("http://%s:%d%s%s", endpoint.Hostname, endpoint.Port, endpoint.Path, pathSuffix)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: 读取响应失败: %v", ErrUnreachable, err)
	}

	return resp.StatusCode, body, nil
}
