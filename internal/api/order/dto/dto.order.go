// Package orderdto chứa các cấu trúc input cho domain order.
package orderdto

import (
	models "souk_commerce/internal/api/order/models"
)

// GuestOrderItemInput một dòng hàng trong giỏ khi guest checkout.
// Giá KHÔNG nhận từ client, server tự resolve từ catalog.
type GuestOrderItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId,omitempty"`
	Quantity  int64  `json:"quantity"` // Service kiểm tra > 0, trả ErrInvalidQuantity
}

// GuestOrderCreateInput dữ liệu đầu vào khi khách đặt hàng COD
type GuestOrderCreateInput struct {
	Items        []GuestOrderItemInput `json:"items" validate:"required,min=1,dive"`
	ShippingInfo models.ShippingInfo   `json:"shippingInfo" validate:"required"`
}

// OrderStatusUpdateInput dữ liệu đầu vào khi đổi trạng thái đơn hàng
type OrderStatusUpdateInput struct {
	Status string `json:"status" validate:"required,order_status"`
}

// OrderListQuery tham số query khi admin duyệt danh sách đơn hàng
type OrderListQuery struct {
	Status string `query:"status"` // pending/paid/shipped/delivered/cancelled hoặc "all"
	Search string `query:"search"` // Tìm theo tên người nhận
	From   int64  `query:"from"`   // createdAt >= from (unix millis)
	To     int64  `query:"to"`     // createdAt <= to (unix millis)
}
