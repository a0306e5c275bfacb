package sitehdl

import (
	"fmt"

	basehdl "souk_commerce/internal/api/base/handler"
	sitesvc "souk_commerce/internal/api/site/service"
	"souk_commerce/internal/common"

	"github.com/gofiber/fiber/v3"
)

// ConfigHandler xử lý các request đọc và cập nhật cấu hình cửa hàng.
// Không đăng ký CRUD generic, mọi route đi qua ConfigService.
type ConfigHandler struct {
	*basehdl.BaseHandler[interface{}, interface{}, interface{}]
	ConfigService *sitesvc.ConfigService
}

// NewConfigHandler tạo mới ConfigHandler
func NewConfigHandler() (*ConfigHandler, error) {
	configService, err := sitesvc.NewConfigService()
	if err != nil {
		return nil, fmt.Errorf("failed to create config service: %v", err)
	}
	hdl := &ConfigHandler{
		ConfigService: configService,
	}
	hdl.BaseHandler = &basehdl.BaseHandler[interface{}, interface{}, interface{}]{}
	return hdl, nil
}

// HandleGetConfig trả về toàn bộ document cấu hình (route storefront)
func (h *ConfigHandler) HandleGetConfig(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		result, err := h.ConfigService.GetConfig(c.Context())
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGetSection trả về một sub-object cấu hình theo tên
func (h *ConfigHandler) HandleGetSection(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		name := c.Params("section")
		result, err := h.ConfigService.GetSection(c.Context(), name)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleUpdateSection cập nhật đúng một sub-object cấu hình từ body JSON thô
func (h *ConfigHandler) HandleUpdateSection(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		name := c.Params("section")
		body := c.Body()
		if len(body) == 0 {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, nil))
			return nil
		}
		result, err := h.ConfigService.UpdateSection(c.Context(), name, body)
		h.HandleResponse(c, result, err)
		return nil
	})
}
