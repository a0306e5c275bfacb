package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"souk_commerce/internal/api/events"
	"souk_commerce/internal/global"

	"github.com/sirupsen/logrus"
)

// Client gửi lệnh invalidate cache-tag sang frontend.
// Mọi request là best effort, lỗi chỉ được log chứ không chặn luồng ghi dữ liệu.
type Client struct {
	httpClient  *http.Client
	frontendURL string
	secret      string
}

// NewClient tạo mới Client từ cấu hình server
func NewClient(frontendURL string, secret string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		frontendURL: strings.TrimRight(frontendURL, "/"),
		secret:      secret,
	}
}

// revalidatePayload là body gửi sang endpoint revalidate của frontend
type revalidatePayload struct {
	Secret string `json:"secret"`
	Tag    string `json:"tag"`
}

// Revalidate gửi một tag sang frontend. Trả lỗi để endpoint thủ công báo 502,
// luồng tự động qua event bus bỏ qua lỗi này.
func (c *Client) Revalidate(ctx context.Context, tag string) error {
	if c.frontendURL == "" {
		return nil
	}

	body, err := json.Marshal(revalidatePayload{Secret: c.secret, Tag: tag})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.frontendURL+"/api/revalidate", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("frontend revalidate trả về status %d cho tag %s", resp.StatusCode, tag)
	}
	return nil
}

// RevalidateTags gửi nhiều tag, lỗi từng tag chỉ được log
func (c *Client) RevalidateTags(ctx context.Context, tags []string) {
	for _, tag := range tags {
		if err := c.Revalidate(ctx, tag); err != nil {
			logrus.WithFields(logrus.Fields{
				"tag":   tag,
				"error": err.Error(),
			}).Warn("Revalidate cache tag thất bại")
		}
	}
}

// Subscribe đăng ký client vào event bus thay đổi dữ liệu.
// Handler chạy trong goroutine riêng (xem events.EmitDataChanged), panic đã được recover.
func (c *Client) Subscribe() {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		tags := TagsForEvent(e)
		if len(tags) == 0 {
			return
		}
		// Không dùng request context vì response có thể đã trả về cho client
		sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		c.RevalidateTags(sendCtx, tags)
	})
}

// Init tạo client từ global.ServerConfig và đăng ký vào event bus.
// Gọi một lần lúc khởi động server, sau khi config đã load.
func Init() *Client {
	client := NewClient(global.ServerConfig.FrontendURL, global.ServerConfig.RevalidateSecret)
	client.Subscribe()
	return client
}
