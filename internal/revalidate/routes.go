package revalidate

import (
	basehdl "souk_commerce/internal/api/base/handler"
	apirouter "souk_commerce/internal/api/router"
	"souk_commerce/internal/common"
	"souk_commerce/internal/global"

	"github.com/gofiber/fiber/v3"
)

// manualRequest là body của các endpoint revalidate thủ công
type manualRequest struct {
	Secret string `json:"secret"`
	Tag    string `json:"tag"`
}

// Handler phục vụ các endpoint revalidate thủ công.
// Không đi qua Firebase gate, bảo vệ bằng shared secret trong body.
type Handler struct {
	*basehdl.BaseHandler[interface{}, interface{}, interface{}]
	client *Client
}

// NewHandler tạo mới Handler cho endpoint revalidate thủ công
func NewHandler(client *Client) *Handler {
	hdl := &Handler{client: client}
	hdl.BaseHandler = &basehdl.BaseHandler[interface{}, interface{}, interface{}]{}
	return hdl
}

// checkSecret so khớp shared secret, secret rỗng phía server nghĩa là tắt tính năng
func checkSecret(secret string) error {
	configured := global.ServerConfig.RevalidateSecret
	if configured == "" || secret != configured {
		return common.ErrRevalidateSecret
	}
	return nil
}

// HandleRevalidateTag revalidate đúng một tag trong whitelist
func (h *Handler) HandleRevalidateTag(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var req manualRequest
		if err := h.ParseRequestBody(c, &req); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		if err := checkSecret(req.Secret); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if !IsValidManualTag(req.Tag) {
			h.HandleResponse(c, nil, common.ErrUnknownCacheTag)
			return nil
		}
		if err := h.client.Revalidate(c.Context(), req.Tag); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeInternalServer, "Gửi lệnh revalidate sang frontend thất bại", common.StatusBadGateway, err))
			return nil
		}
		h.HandleResponse(c, map[string]interface{}{"revalidated": req.Tag}, nil)
		return nil
	})
}

// HandleRevalidateLandingPage revalidate nhanh tag landing-page
func (h *Handler) HandleRevalidateLandingPage(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var req manualRequest
		if err := h.ParseRequestBody(c, &req); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		if err := checkSecret(req.Secret); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.client.Revalidate(c.Context(), TagLandingPage); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeInternalServer, "Gửi lệnh revalidate sang frontend thất bại", common.StatusBadGateway, err))
			return nil
		}
		h.HandleResponse(c, map[string]interface{}{"revalidated": TagLandingPage}, nil)
		return nil
	})
}

// Routes trả về RegisterFunc đăng ký các endpoint revalidate thủ công lên v1
func Routes(client *Client) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		hdl := NewHandler(client)
		v1.Post("/revalidate", hdl.HandleRevalidateTag)
		v1.Post("/revalidate/landing-page", hdl.HandleRevalidateLandingPage)
		return nil
	}
}
