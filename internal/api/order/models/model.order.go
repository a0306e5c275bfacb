package models

import (
	catalogmodels "souk_commerce/internal/api/catalog/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái đơn hàng
const (
	OrderStatusPending   = "pending"   // Mới tạo, chưa thanh toán
	OrderStatusPaid      = "paid"      // Đã thanh toán qua Stripe
	OrderStatusShipped   = "shipped"   // Đã giao cho đơn vị vận chuyển
	OrderStatusDelivered = "delivered" // Khách đã nhận hàng (terminal)
	OrderStatusCancelled = "cancelled" // Đã hủy (terminal)
)

// orderTransitions là bảng chuyển trạng thái hợp lệ của đơn hàng.
// delivered và cancelled là trạng thái cuối, không chuyển tiếp được.
var orderTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// IsValidOrderStatus kiểm tra một chuỗi có phải trạng thái đơn hàng hợp lệ
func IsValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

// CanTransition kiểm tra chuyển trạng thái from → to có hợp lệ theo bảng trạng thái
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderItem là snapshot của một sản phẩm tại thời điểm đặt hàng.
// Giá và tên được chụp lại để đơn hàng không đổi khi catalog thay đổi sau này.
type OrderItem struct {
	ProductID   primitive.ObjectID           `json:"productId" bson:"productId"`
	Name        catalogmodels.LocalizedText  `json:"name" bson:"name"`
	Price       float64                      `json:"price" bson:"price"` // Đơn giá tại thời điểm đặt
	Quantity    int64                        `json:"quantity" bson:"quantity"`
	Image       string                       `json:"image,omitempty" bson:"image,omitempty"`
	VariantID   string                       `json:"variantId,omitempty" bson:"variantId,omitempty"`
	VariantName *catalogmodels.LocalizedText `json:"variantName,omitempty" bson:"variantName,omitempty"`
}

// ShippingInfo chứa thông tin giao hàng khách nhập khi checkout
type ShippingInfo struct {
	FullName string `json:"fullName" bson:"fullName" validate:"required"`
	Phone    string `json:"phone" bson:"phone" validate:"required"`
	City     string `json:"city" bson:"city" validate:"required"`
	Address  string `json:"address" bson:"address" validate:"required"`
	Email    string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Notes    string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Order đại diện cho một đơn hàng guest checkout.
// Không có tài khoản khách hàng, đơn được tra cứu qua code hoặc back-office.
type Order struct {
	ID   primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của đơn hàng
	Code string             `json:"code" bson:"code" index:"unique"`   // Mã đơn cho khách tra cứu

	Items        []OrderItem  `json:"items" bson:"items"`
	ShippingInfo ShippingInfo `json:"shippingInfo" bson:"shippingInfo"`
	TotalAmount  float64      `json:"totalAmount" bson:"totalAmount"` // Tổng tiền (đơn vị tiền tệ chính)

	Status          string `json:"status" bson:"status" index:"single:1"` // pending, paid, shipped, delivered, cancelled
	PaymentMethod   string `json:"paymentMethod" bson:"paymentMethod"`    // cod hoặc card
	PaymentIntentID string `json:"paymentIntentId,omitempty" bson:"paymentIntentId,omitempty" index:"unique,sparse"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`                   // Thời gian cập nhật
}

// Phương thức thanh toán
const (
	PaymentMethodCOD  = "cod"  // Thanh toán khi nhận hàng
	PaymentMethodCard = "card" // Thẻ qua Stripe
)
