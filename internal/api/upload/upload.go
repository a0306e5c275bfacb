// Package upload cung cấp endpoint upload ảnh lên object storage cho back-office.
// Trả về public URL để admin gắn vào sản phẩm/danh mục/section.
package upload

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"

	authrouter "souk_commerce/internal/api/auth/router"
	basehdl "souk_commerce/internal/api/base/handler"
	apirouter "souk_commerce/internal/api/router"
	"souk_commerce/internal/common"
	"souk_commerce/internal/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// allowedExtensions giới hạn loại file nhận upload
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".svg":  true,
}

// UploadResult là kết quả upload một file
type UploadResult struct {
	Key      string `json:"key"`      // Object key trong bucket
	URL      string `json:"url"`      // Public URL
	FileName string `json:"fileName"` // Tên file gốc
}

// Handler xử lý request upload ảnh
type Handler struct {
	*basehdl.BaseHandler[interface{}, interface{}, interface{}]
}

// NewHandler tạo mới Handler upload
func NewHandler() *Handler {
	hdl := &Handler{}
	hdl.BaseHandler = &basehdl.BaseHandler[interface{}, interface{}, interface{}]{}
	return hdl
}

// NewObjectKey sinh object key duy nhất giữ lại phần mở rộng của file gốc
func NewObjectKey(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return uuid.NewString() + ext
}

// IsAllowedExtension kiểm tra phần mở rộng file có được phép upload
func IsAllowedExtension(fileName string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(fileName))]
}

// uploadOne đẩy một file lên storage và trả về key + public URL
func uploadOne(ctx context.Context, client *storage.Client, fileHeader *multipart.FileHeader) (UploadResult, error) {
	var zero UploadResult

	if !IsAllowedExtension(fileHeader.Filename) {
		return zero, common.NewError(common.ErrCodeValidationInput, fmt.Sprintf("Loại file không được hỗ trợ: %s", fileHeader.Filename), common.StatusBadRequest, nil)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return zero, common.NewError(common.ErrCodeStorage, "Không đọc được file upload", common.StatusBadRequest, err)
	}
	defer f.Close()

	key := NewObjectKey(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := client.Upload(ctx, key, f, fileHeader.Size, contentType)
	if err != nil {
		return zero, common.NewError(common.ErrCodeStorage, "Upload file lên storage thất bại", common.StatusBadGateway, err)
	}

	return UploadResult{Key: key, URL: url, FileName: fileHeader.Filename}, nil
}

// HandleUpload nhận một hoặc nhiều file qua multipart form (field "files")
// và upload song song, giới hạn bởi số file trong một request
func (h *Handler) HandleUpload(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		client, err := storage.GetClient()
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeStorage, "Object storage chưa sẵn sàng", common.StatusInternalServerError, err))
			return nil
		}

		form, err := c.MultipartForm()
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Request phải là multipart form", common.StatusBadRequest, err))
			return nil
		}
		files := form.File["files"]
		if len(files) == 0 {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Không có file nào trong field files", common.StatusBadRequest, nil))
			return nil
		}

		// Upload song song, fiber.Ctx không dùng được trong goroutine
		// nên context được lấy ra trước
		ctx := c.Context()
		results := make([]UploadResult, len(files))
		errs := make([]error, len(files))
		var wg sync.WaitGroup
		for i, fileHeader := range files {
			wg.Add(1)
			go func(i int, fileHeader *multipart.FileHeader) {
				defer wg.Done()
				results[i], errs[i] = uploadOne(ctx, client, fileHeader)
			}(i, fileHeader)
		}
		wg.Wait()

		// Một file lỗi thì dọn các blob đã upload thành công rồi trả lỗi,
		// không để blob orphan từ request thất bại
		for _, uploadErr := range errs {
			if uploadErr != nil {
				for i, result := range results {
					if errs[i] == nil && result.Key != "" {
						client.CompensateUpload(ctx, result.Key)
					}
				}
				h.HandleResponse(c, nil, uploadErr)
				return nil
			}
		}

		h.HandleResponse(c, results, nil)
		return nil
	})
}

// Register đăng ký route upload lên v1, toàn bộ qua admin gate
func Register(v1 fiber.Router, _ *apirouter.Router) error {
	adminGate, err := authrouter.NewAdminGate()
	if err != nil {
		return err
	}

	hdl := NewHandler()
	v1.Post("/uploads", hdl.HandleUpload, adminGate)

	return nil
}
