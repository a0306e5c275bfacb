// Package paymenthdl - handler thanh toán (intent + webhook).
package paymenthdl

import (
	"fmt"

	basehdl "souk_commerce/internal/api/base/handler"
	paymentdto "souk_commerce/internal/api/payment/dto"
	paymentsvc "souk_commerce/internal/api/payment/service"
	"souk_commerce/internal/common"
	"souk_commerce/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// PaymentHandler xử lý các request thanh toán thẻ
type PaymentHandler struct {
	*basehdl.BaseHandler[interface{}, interface{}, interface{}]
	IntentService  *paymentsvc.IntentService
	WebhookService *paymentsvc.WebhookService
}

// NewPaymentHandler tạo mới PaymentHandler
func NewPaymentHandler() (*PaymentHandler, error) {
	intentService, err := paymentsvc.NewIntentService()
	if err != nil {
		return nil, fmt.Errorf("failed to create intent service: %v", err)
	}
	webhookService, err := paymentsvc.NewWebhookService()
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook service: %v", err)
	}
	h := &PaymentHandler{
		IntentService:  intentService,
		WebhookService: webhookService,
	}
	h.BaseHandler = &basehdl.BaseHandler[interface{}, interface{}, interface{}]{}
	return h, nil
}

// HandleCreateIntent tạo payment intent cho giỏ hàng (route công khai, guest checkout)
func (h *PaymentHandler) HandleCreateIntent(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input paymentdto.CreateIntentInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.IntentService.CreateIntent(c.Context(), &input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleUpdateIntent bổ sung thông tin giao hàng vào intent và đơn pending
func (h *PaymentHandler) HandleUpdateIntent(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input paymentdto.UpdateIntentInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.IntentService.UpdateIntentShipping(c.Context(), &input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleStripeWebhook nhận webhook từ Stripe. Body phải giữ nguyên raw bytes
// để verify chữ ký, không parse JSON trước khi verify.
func (h *PaymentHandler) HandleStripeWebhook(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload := c.Body()
		sigHeader := c.Get("Stripe-Signature")

		if err := h.WebhookService.Process(c.Context(), payload, sigHeader); err != nil {
			logger.WithRequest(c).WithError(err).Warn("Webhook Stripe xử lý thất bại")
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{"received": true}, nil)
		return nil
	})
}
