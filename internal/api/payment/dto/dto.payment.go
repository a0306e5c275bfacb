// Package paymentdto chứa các cấu trúc input cho domain payment.
package paymentdto

import (
	orderdto "souk_commerce/internal/api/order/dto"
	ordermodels "souk_commerce/internal/api/order/models"
)

// CreateIntentInput dữ liệu đầu vào khi tạo payment intent cho checkout thẻ.
// Giá không nhận từ client, server resolve từng productId/variantId từ catalog.
type CreateIntentInput struct {
	Items        []orderdto.GuestOrderItemInput `json:"items" validate:"required,min=1,dive"`
	ShippingInfo *ordermodels.ShippingInfo      `json:"shippingInfo,omitempty"` // Có thể bổ sung sau qua update-intent
}

// CreateIntentResult trả về cho client sau khi tạo intent
type CreateIntentResult struct {
	IntentID     string `json:"intentId"`     // ID của payment intent (pi_...)
	ClientSecret string `json:"clientSecret"` // Client secret cho Stripe.js confirm phía frontend
	OrderCode    string `json:"orderCode"`    // Mã đơn hàng pending đã tạo kèm
	Amount       int64  `json:"amount"`       // Tổng tiền theo đơn vị nhỏ nhất (centimes)
	Currency     string `json:"currency"`
}

// UpdateIntentInput dữ liệu đầu vào khi bổ sung thông tin giao hàng vào intent
type UpdateIntentInput struct {
	IntentID     string                   `json:"intentId" validate:"required"`
	ShippingInfo ordermodels.ShippingInfo `json:"shippingInfo" validate:"required"`
}
