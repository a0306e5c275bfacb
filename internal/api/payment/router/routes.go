// Package router đăng ký các route thanh toán. Toàn bộ là route công khai:
// intent phục vụ guest checkout, webhook được bảo vệ bằng chữ ký Stripe.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	paymenthdl "souk_commerce/internal/api/payment/handler"
	apirouter "souk_commerce/internal/api/router"
)

// Register đăng ký route payment lên v1
func Register(v1 fiber.Router, _ *apirouter.Router) error {
	paymentHandler, err := paymenthdl.NewPaymentHandler()
	if err != nil {
		return fmt.Errorf("failed to create payment handler: %w", err)
	}

	v1.Post("/payments/create-intent", paymentHandler.HandleCreateIntent)
	v1.Post("/payments/update-intent", paymentHandler.HandleUpdateIntent)
	v1.Post("/payments/stripe-webhook", paymentHandler.HandleStripeWebhook)

	return nil
}
