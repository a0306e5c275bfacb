package paymentsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	basesvc "souk_commerce/internal/api/base/service"
	ordermodels "souk_commerce/internal/api/order/models"
	paymentmodels "souk_commerce/internal/api/payment/models"
	"souk_commerce/internal/common"
	"souk_commerce/internal/global"

	ordersvc "souk_commerce/internal/api/order/service"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SignatureVerifier xác thực chữ ký webhook của Stripe và trả về event.
// Tách thành function type để test inject verifier giả không cần secret thật.
type SignatureVerifier func(payload []byte, sigHeader string, secret string) (stripe.Event, error)

// EventLog là phần event-log mà webhook dùng: insert dedup, ghi note,
// xóa record khi xử lý dở dang. Tách interface để test inject log giả.
type EventLog interface {
	InsertOne(ctx context.Context, data paymentmodels.PaymentEvent) (paymentmodels.PaymentEvent, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (paymentmodels.PaymentEvent, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error
}

// PaidOrderMarker chuyển đơn hàng sang paid theo intent id
type PaidOrderMarker interface {
	MarkPaidByIntentID(ctx context.Context, intentID string) (ordermodels.Order, error)
}

// WebhookService xử lý webhook event từ Stripe
type WebhookService struct {
	events EventLog
	orders PaidOrderMarker
	verify SignatureVerifier
	secret string
}

// NewWebhookService tạo mới WebhookService dùng webhook.ConstructEvent của stripe-go
func NewWebhookService() (*WebhookService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.PaymentEvents)
	if !exist {
		return nil, fmt.Errorf("failed to get payment_events collection: %v", common.ErrNotFound)
	}
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %v", err)
	}
	secret := ""
	if global.ServerConfig != nil {
		secret = global.ServerConfig.StripeWebhookSecret
	}
	return &WebhookService{
		events: basesvc.NewBaseServiceMongo[paymentmodels.PaymentEvent](collection),
		orders: orderService,
		verify: webhook.ConstructEvent,
		secret: secret,
	}, nil
}

// NewWebhookServiceWithVerifier tạo WebhookService với verifier tùy biến (dùng cho test)
func NewWebhookServiceWithVerifier(events EventLog, orders PaidOrderMarker, verify SignatureVerifier, secret string) *WebhookService {
	return &WebhookService{events: events, orders: orders, verify: verify, secret: secret}
}

// Process xác thực, dedup và xử lý một webhook delivery từ Stripe.
// Event đã thấy rồi (trùng eventId) là no-op thành công, Stripe ngừng retry.
// Returns:
//   - error: ErrSignatureInvalid khi chữ ký sai, nil khi đã xử lý hoặc đã bỏ qua
func (s *WebhookService) Process(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.verify(payload, sigHeader, s.secret)
	if err != nil {
		logrus.WithError(err).Warn("Webhook: Chữ ký Stripe không hợp lệ")
		return common.ErrSignatureInvalid
	}

	intentID := extractIntentID(event)

	// Dedup qua unique index trên eventId
	record := paymentmodels.PaymentEvent{
		EventID:    event.ID,
		Type:       string(event.Type),
		IntentID:   intentID,
		ReceivedAt: time.Now(),
	}
	stored, err := s.events.InsertOne(ctx, record)
	if err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			logrus.WithField("event_id", event.ID).Info("Webhook: Event đã xử lý trước đó, bỏ qua")
			return nil
		}
		return err
	}

	if event.Type != "payment_intent.succeeded" {
		logrus.WithFields(logrus.Fields{"event_id": event.ID, "type": event.Type}).Debug("Webhook: Loại event không cần xử lý")
		return nil
	}

	if intentID == "" {
		return s.noteEvent(ctx, stored, "event payment_intent.succeeded không chứa intent id")
	}

	if _, err := s.orders.MarkPaidByIntentID(ctx, intentID); err != nil {
		if errors.Is(err, common.ErrOrderNotFound) {
			// Thanh toán thành công nhưng không có đơn tương ứng,
			// ghi nhận để đối soát thủ công, vẫn trả 200 cho Stripe
			logrus.WithFields(logrus.Fields{
				"event_id":  event.ID,
				"intent_id": intentID,
			}).Error("Webhook: Không tìm thấy đơn hàng cho intent đã thanh toán")
			return s.noteEvent(ctx, stored, "không tìm thấy đơn hàng cho intent "+intentID)
		}
		// Lỗi tạm thời (database), xóa record dedup rồi trả lỗi non-2xx
		// để lần retry của Stripe không bị chặn ở nhánh duplicate
		s.dropEvent(ctx, stored)
		return err
	}

	logrus.WithFields(logrus.Fields{"event_id": event.ID, "intent_id": intentID}).Info("Webhook: Đã chuyển đơn hàng sang paid")
	return nil
}

// noteEvent ghi chú bất thường vào record event đã lưu
func (s *WebhookService) noteEvent(ctx context.Context, stored paymentmodels.PaymentEvent, note string) error {
	updateData := &basesvc.UpdateData{Set: map[string]interface{}{"note": note}}
	if _, err := s.events.UpdateOne(ctx, bson.M{"_id": stored.ID}, updateData, nil); err != nil {
		logrus.WithFields(logrus.Fields{"event_id": stored.EventID, "error": err.Error()}).Warn("Webhook: Không ghi được note vào event")
	}
	return nil
}

// dropEvent xóa record dedup của một event xử lý dở dang
func (s *WebhookService) dropEvent(ctx context.Context, stored paymentmodels.PaymentEvent) {
	if err := s.events.DeleteById(ctx, stored.ID); err != nil {
		logrus.WithFields(logrus.Fields{
			"event_id": stored.EventID,
			"error":    err.Error(),
		}).Error("Webhook: Không xóa được event dở dang, retry tiếp theo sẽ bị dedup chặn")
	}
}

// extractIntentID lấy payment intent id từ payload của event
func extractIntentID(event stripe.Event) string {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return ""
	}
	return intent.ID
}
