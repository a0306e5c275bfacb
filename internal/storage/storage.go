// Package storage cung cấp client lưu trữ object (ảnh sản phẩm, banner)
// trên dịch vụ S3-compatible (MinIO). Object được đọc công khai qua PublicURL.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"souk_commerce/config"
)

// Client bọc minio.Client với thông tin bucket và public URL
type Client struct {
	minioClient *minio.Client
	bucket      string
	publicURL   string
}

var (
	defaultClient *Client
	initOnce      sync.Once
	initErr       error
)

// Init khởi tạo storage client mặc định từ cấu hình server.
// Tạo bucket nếu chưa tồn tại.
func Init(cfg *config.Configuration) error {
	initOnce.Do(func() {
		defaultClient, initErr = NewClient(cfg)
	})
	return initErr
}

// GetClient trả về storage client mặc định (phải gọi Init trước)
func GetClient() (*Client, error) {
	if defaultClient == nil {
		return nil, fmt.Errorf("storage client chưa được khởi tạo")
	}
	return defaultClient, nil
}

// NewClient tạo một storage client mới từ cấu hình
func NewClient(cfg *config.Configuration) (*Client, error) {
	minioClient, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %v", err)
	}

	client := &Client{
		minioClient: minioClient,
		bucket:      cfg.StorageBucket,
		publicURL:   strings.TrimRight(cfg.StoragePublicURL, "/"),
	}

	// Tạo bucket nếu chưa có
	ctx := context.Background()
	exists, err := minioClient.BucketExists(ctx, client.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %v", err)
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, client.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %v", client.bucket, err)
		}
		logrus.WithField("bucket", client.bucket).Info("Storage: Đã tạo bucket mới")
	}

	return client, nil
}

// Upload đẩy một object lên bucket và trả về public URL của object đó
// Parameters:
//   - ctx: Context cho việc hủy bỏ hoặc timeout
//   - key: Object key (ví dụ "products/<uuid>.webp")
//   - reader: Dữ liệu object
//   - size: Kích thước tính bằng byte (-1 nếu không biết trước)
//   - contentType: MIME type của object
//
// Returns:
//   - string: Public URL của object
//   - error: Lỗi nếu có
func (c *Client) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := c.minioClient.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %v", key, err)
	}
	return c.PublicURL(key), nil
}

// PublicURL trả về URL công khai của một object key
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, strings.TrimLeft(key, "/"))
}

// KeyFromURL tách object key từ public URL. Trả về chuỗi rỗng nếu URL
// không thuộc bucket này.
func (c *Client) KeyFromURL(rawURL string) string {
	prefix := c.publicURL + "/" + c.bucket + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return ""
	}
	return strings.TrimPrefix(rawURL, prefix)
}

// Delete xóa một object khỏi bucket
func (c *Client) Delete(ctx context.Context, key string) error {
	err := c.minioClient.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %v", key, err)
	}
	return nil
}

// DeleteByURL xóa object theo public URL, best-effort.
// URL không thuộc bucket (ảnh ngoài) được bỏ qua, không tính là lỗi.
func (c *Client) DeleteByURL(ctx context.Context, rawURL string) error {
	if rawURL == "" {
		return nil
	}
	key := c.KeyFromURL(rawURL)
	if key == "" {
		return nil
	}
	return c.Delete(ctx, key)
}

// CompensateUpload xóa object vừa upload khi bước ghi dữ liệu sau đó thất bại.
// Lỗi compensation chỉ được log, không trả về cho caller.
func (c *Client) CompensateUpload(ctx context.Context, key string) {
	if err := c.Delete(ctx, key); err != nil {
		logrus.WithFields(logrus.Fields{
			"bucket": c.bucket,
			"key":    key,
			"error":  err.Error(),
		}).Error("Storage: Compensation xóa object thất bại, object có thể bị orphan")
	}
}
