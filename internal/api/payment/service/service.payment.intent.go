// Package paymentsvc - service thanh toán thẻ qua Stripe.
package paymentsvc

import (
	"context"
	"fmt"

	ordermodels "souk_commerce/internal/api/order/models"
	ordersvc "souk_commerce/internal/api/order/service"
	paymentdto "souk_commerce/internal/api/payment/dto"
	"souk_commerce/internal/common"
	"souk_commerce/internal/global"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// IntentAPI trừu tượng hóa payment intent API của Stripe để test không cần gọi mạng
type IntentAPI interface {
	Create(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Update(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// stripeIntentAPI gọi Stripe thật qua stripe-go
type stripeIntentAPI struct{}

func (stripeIntentAPI) Create(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}

func (stripeIntentAPI) Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(id, params)
}

func (stripeIntentAPI) Update(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.Update(id, params)
}

// IntentService xử lý tạo và cập nhật payment intent
type IntentService struct {
	intents  IntentAPI
	orders   *ordersvc.OrderService
	currency string
}

// NewIntentService tạo mới IntentService dùng Stripe thật.
// Stripe secret key được set một lần ở bước khởi động server.
func NewIntentService() (*IntentService, error) {
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %v", err)
	}
	currency := "mad"
	if global.ServerConfig != nil && global.ServerConfig.StoreCurrency != "" {
		currency = global.ServerConfig.StoreCurrency
	}
	return &IntentService{
		intents:  stripeIntentAPI{},
		orders:   orderService,
		currency: currency,
	}, nil
}

// NewIntentServiceWithAPI tạo IntentService với IntentAPI tùy biến (dùng cho test)
func NewIntentServiceWithAPI(api IntentAPI, orders *ordersvc.OrderService, currency string) *IntentService {
	return &IntentService{intents: api, orders: orders, currency: currency}
}

// MinorUnitTotal tính tổng tiền theo đơn vị nhỏ nhất (centimes) từ snapshot dòng hàng.
// Từng dòng: round(price × 100) × quantity, rồi cộng dồn.
// Tính per-line để tránh sai số dồn khi làm tròn trên tổng.
func MinorUnitTotal(items []ordermodels.OrderItem) int64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Shift(2).Round(0).Mul(decimal.NewFromInt(item.Quantity))
		total = total.Add(line)
	}
	return total.IntPart()
}

// MetadataFromShipping chuyển thông tin giao hàng thành metadata key cho intent
func MetadataFromShipping(info ordermodels.ShippingInfo) map[string]string {
	metadata := map[string]string{
		"shipping_full_name": info.FullName,
		"shipping_phone":     info.Phone,
		"shipping_city":      info.City,
		"shipping_address":   info.Address,
	}
	if info.Email != "" {
		metadata["shipping_email"] = info.Email
	}
	if info.Notes != "" {
		metadata["shipping_notes"] = info.Notes
	}
	return metadata
}

// CreateIntent tạo payment intent cho giỏ hàng và pre-create đơn pending kèm theo.
// Từng productId/variantId được resolve từ catalog, giá client gửi lên bị bỏ qua.
// Returns:
//   - *paymentdto.CreateIntentResult: intent id, client secret, mã đơn, tổng tiền
//   - error: ErrInvalidQuantity, ErrProductNotFound hoặc lỗi Stripe
func (s *IntentService) CreateIntent(ctx context.Context, input *paymentdto.CreateIntentInput) (*paymentdto.CreateIntentResult, error) {
	items, total, err := s.orders.BuildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	amount := MinorUnitTotal(items)
	orderCode := ordersvc.NewOrderCode()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(s.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_code", orderCode)
	if input.ShippingInfo != nil {
		for key, value := range MetadataFromShipping(*input.ShippingInfo) {
			params.AddMetadata(key, value)
		}
	}

	intent, err := s.intents.Create(params)
	if err != nil {
		logrus.WithError(err).Error("CreateIntent: Lỗi tạo payment intent từ Stripe")
		return nil, common.NewError(common.ErrCodePayment, "Không thể tạo payment intent", common.StatusBadGateway, err)
	}

	shipping := ordermodels.ShippingInfo{}
	if input.ShippingInfo != nil {
		shipping = *input.ShippingInfo
	}
	if _, err := s.orders.CreatePendingCardOrder(ctx, orderCode, items, shipping, total, intent.ID); err != nil {
		logrus.WithFields(logrus.Fields{
			"intent_id":  intent.ID,
			"order_code": orderCode,
			"error":      err.Error(),
		}).Error("CreateIntent: Tạo đơn pending thất bại sau khi đã tạo intent")
		return nil, err
	}

	return &paymentdto.CreateIntentResult{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		OrderCode:    orderCode,
		Amount:       amount,
		Currency:     s.currency,
	}, nil
}

// UpdateIntentShipping bổ sung thông tin giao hàng vào metadata của intent
// và vào đơn pending tương ứng. Metadata có sẵn trên intent được giữ nguyên,
// chỉ các key shipping_* bị ghi đè.
func (s *IntentService) UpdateIntentShipping(ctx context.Context, input *paymentdto.UpdateIntentInput) (ordermodels.Order, error) {
	var zero ordermodels.Order

	if err := global.Validate.Struct(&input.ShippingInfo); err != nil {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	intent, err := s.intents.Get(input.IntentID, nil)
	if err != nil {
		logrus.WithFields(logrus.Fields{"intent_id": input.IntentID, "error": err.Error()}).Error("UpdateIntentShipping: Không lấy được intent từ Stripe")
		return zero, common.ErrIntentNotFound
	}

	// Merge metadata: giữ key không liên quan, ghi đè key shipping_*
	merged := make(map[string]string, len(intent.Metadata))
	for key, value := range intent.Metadata {
		merged[key] = value
	}
	for key, value := range MetadataFromShipping(input.ShippingInfo) {
		merged[key] = value
	}

	updateParams := &stripe.PaymentIntentParams{}
	for key, value := range merged {
		updateParams.AddMetadata(key, value)
	}
	if _, err := s.intents.Update(input.IntentID, updateParams); err != nil {
		logrus.WithFields(logrus.Fields{"intent_id": input.IntentID, "error": err.Error()}).Error("UpdateIntentShipping: Lỗi cập nhật metadata intent")
		return zero, common.NewError(common.ErrCodePayment, "Không thể cập nhật payment intent", common.StatusBadGateway, err)
	}

	return s.orders.UpdateShippingByIntentID(ctx, input.IntentID, input.ShippingInfo)
}
