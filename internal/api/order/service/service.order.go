// Package ordersvc - service quản lý đơn hàng guest checkout.
package ordersvc

import (
	"context"
	"fmt"
	"strings"

	basemodels "souk_commerce/internal/api/base/models"
	basesvc "souk_commerce/internal/api/base/service"
	catalogsvc "souk_commerce/internal/api/catalog/service"
	orderdto "souk_commerce/internal/api/order/dto"
	models "souk_commerce/internal/api/order/models"
	"souk_commerce/internal/common"
	"souk_commerce/internal/global"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderService là service quản lý đơn hàng
type OrderService struct {
	*basesvc.BaseServiceMongoImpl[models.Order]
	productService *catalogsvc.ProductService
}

// NewOrderService tạo mới OrderService
func NewOrderService() (*OrderService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}
	return &OrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Order](collection),
		productService:       productService,
	}, nil
}

// NewOrderCode sinh mã đơn hàng cho khách tra cứu (8 ký tự đầu của UUID, viết hoa)
func NewOrderCode() string {
	return "SK-" + strings.ToUpper(uuid.NewString()[:8])
}

// BuildItems resolve từng dòng hàng từ catalog và chụp snapshot.
// Giá lấy từ server, client chỉ gửi id và số lượng.
// Returns:
//   - []models.OrderItem: Snapshot các dòng hàng
//   - decimal.Decimal: Tổng tiền
//   - error: ErrInvalidQuantity khi quantity <= 0, ErrProductNotFound khi id lạ
func (s *OrderService) BuildItems(ctx context.Context, items []orderdto.GuestOrderItemInput) ([]models.OrderItem, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, common.ErrInvalidQuantity
	}

	snapshots := make([]models.OrderItem, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, decimal.Zero, common.ErrInvalidQuantity
		}
		unitPrice, product, err := s.productService.ResolveUnitPrice(ctx, item.ProductID, item.VariantID)
		if err != nil {
			return nil, decimal.Zero, err
		}

		snapshot := models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     unitPrice.InexactFloat64(),
			Quantity:  item.Quantity,
			Image:     product.Image,
		}
		if item.VariantID != "" {
			variant := product.FindVariant(item.VariantID)
			snapshot.VariantID = item.VariantID
			if variant != nil {
				snapshot.VariantName = &variant.Name
			}
		}
		snapshots = append(snapshots, snapshot)

		lineTotal := unitPrice.Mul(decimal.NewFromInt(item.Quantity))
		total = total.Add(lineTotal)
	}
	return snapshots, total, nil
}

// CreateGuestOrder tạo đơn hàng COD cho khách vãng lai (không cần tài khoản)
func (s *OrderService) CreateGuestOrder(ctx context.Context, input *orderdto.GuestOrderCreateInput) (models.Order, error) {
	var zero models.Order

	items, total, err := s.BuildItems(ctx, input.Items)
	if err != nil {
		return zero, err
	}

	order := models.Order{
		Code:          NewOrderCode(),
		Items:         items,
		ShippingInfo:  input.ShippingInfo,
		TotalAmount:   total.InexactFloat64(),
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodCOD,
	}
	return s.InsertOne(ctx, order)
}

// CreatePendingCardOrder tạo đơn pending gắn với một payment intent (checkout thẻ).
// Code do caller sinh trước để đưa vào metadata của intent.
// Đơn chuyển sang paid khi webhook payment_intent.succeeded về.
func (s *OrderService) CreatePendingCardOrder(ctx context.Context, code string, items []models.OrderItem, shipping models.ShippingInfo, total decimal.Decimal, intentID string) (models.Order, error) {
	order := models.Order{
		Code:            code,
		Items:           items,
		ShippingInfo:    shipping,
		TotalAmount:     total.InexactFloat64(),
		Status:          models.OrderStatusPending,
		PaymentMethod:   models.PaymentMethodCard,
		PaymentIntentID: intentID,
	}
	return s.InsertOne(ctx, order)
}

// FindOrdersWithPagination trả về danh sách đơn hàng cho back-office.
// Status "all" hoặc rỗng nghĩa là không lọc trạng thái. Status lạ bị chặn
// trước khi chạm tới database.
func (s *OrderService) FindOrdersWithPagination(ctx context.Context, query *orderdto.OrderListQuery, page, limit int64) (*basemodels.PaginateResult[models.Order], error) {
	filter := bson.M{}

	if query.Status != "" && query.Status != "all" {
		if !models.IsValidOrderStatus(query.Status) {
			return nil, common.ErrInvalidStatus
		}
		filter["status"] = query.Status
	}
	if query.Search != "" {
		filter["shippingInfo.fullName"] = bson.M{"$regex": query.Search, "$options": "i"}
	}
	if query.From > 0 || query.To > 0 {
		createdAt := bson.M{}
		if query.From > 0 {
			createdAt["$gte"] = query.From
		}
		if query.To > 0 {
			createdAt["$lte"] = query.To
		}
		filter["createdAt"] = createdAt
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// UpdateOrderStatus chuyển trạng thái đơn hàng theo bảng trạng thái.
// Chuyển không hợp lệ trả lỗi BIZ, không ghi gì vào database.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, newStatus string) (models.Order, error) {
	var zero models.Order

	if !models.IsValidOrderStatus(newStatus) {
		return zero, common.ErrInvalidStatus
	}

	order, err := s.FindOneById(ctx, id)
	if err != nil {
		if err == common.ErrNotFound {
			return zero, common.ErrOrderNotFound
		}
		return zero, err
	}

	if !models.CanTransition(order.Status, newStatus) {
		return zero, common.NewError(
			common.ErrCodeBusinessState,
			fmt.Sprintf("Không thể chuyển đơn hàng từ trạng thái %s sang %s", order.Status, newStatus),
			common.StatusConflict,
			nil,
		)
	}

	updateData := &basesvc.UpdateData{Set: map[string]interface{}{"status": newStatus}}
	return s.UpdateById(ctx, id, updateData)
}

// DeleteOrder xóa đơn hàng theo id
func (s *OrderService) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	err := s.DeleteById(ctx, id)
	if err == common.ErrNotFound {
		return common.ErrOrderNotFound
	}
	return err
}

// FindByCode tìm đơn hàng theo mã tra cứu của khách
func (s *OrderService) FindByCode(ctx context.Context, code string) (models.Order, error) {
	order, err := s.FindOne(ctx, bson.M{"code": code}, nil)
	if err == common.ErrNotFound {
		return order, common.ErrOrderNotFound
	}
	return order, err
}

// FindByIntentID tìm đơn hàng theo payment intent id
func (s *OrderService) FindByIntentID(ctx context.Context, intentID string) (models.Order, error) {
	order, err := s.FindOne(ctx, bson.M{"paymentIntentId": intentID}, nil)
	if err == common.ErrNotFound {
		return order, common.ErrOrderNotFound
	}
	return order, err
}

// AttachPaymentIntent gắn payment intent id vào một đơn hàng pending
func (s *OrderService) AttachPaymentIntent(ctx context.Context, orderID primitive.ObjectID, intentID string) (models.Order, error) {
	updateData := &basesvc.UpdateData{Set: map[string]interface{}{"paymentIntentId": intentID}}
	order, err := s.UpdateById(ctx, orderID, updateData)
	if err == common.ErrNotFound {
		return order, common.ErrOrderNotFound
	}
	return order, err
}

// UpdateShippingByIntentID cập nhật thông tin giao hàng của đơn pending theo intent id
func (s *OrderService) UpdateShippingByIntentID(ctx context.Context, intentID string, shipping models.ShippingInfo) (models.Order, error) {
	order, err := s.FindByIntentID(ctx, intentID)
	if err != nil {
		return order, err
	}
	updateData := &basesvc.UpdateData{Set: map[string]interface{}{"shippingInfo": shipping}}
	return s.UpdateById(ctx, order.ID, updateData)
}

// MarkPaidByIntentID chuyển đơn pending sang paid khi webhook xác nhận thanh toán.
// Idempotent: đơn đã paid/shipped/delivered thì bỏ qua, không lỗi
// (Stripe có thể gửi lại cùng một event nhiều lần).
func (s *OrderService) MarkPaidByIntentID(ctx context.Context, intentID string) (models.Order, error) {
	order, err := s.FindByIntentID(ctx, intentID)
	if err != nil {
		return order, err
	}

	switch order.Status {
	case models.OrderStatusPaid, models.OrderStatusShipped, models.OrderStatusDelivered:
		return order, nil
	case models.OrderStatusCancelled:
		logrus.WithFields(logrus.Fields{
			"order_id":          order.ID.Hex(),
			"payment_intent_id": intentID,
		}).Error("MarkPaidByIntentID: Thanh toán thành công cho đơn đã hủy, cần đối soát thủ công")
		return order, common.NewError(
			common.ErrCodeBusinessState,
			"Đơn hàng đã hủy nhưng thanh toán thành công",
			common.StatusConflict,
			nil,
		)
	}

	updateData := &basesvc.UpdateData{Set: map[string]interface{}{"status": models.OrderStatusPaid}}
	return s.UpdateById(ctx, order.ID, updateData)
}
