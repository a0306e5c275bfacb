// Package paymentsvc - Test tính tiền minor unit, metadata shipping và merge metadata intent.
package paymentsvc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	basesvc "souk_commerce/internal/api/base/service"
	ordermodels "souk_commerce/internal/api/order/models"
	paymentdto "souk_commerce/internal/api/payment/dto"
	paymentmodels "souk_commerce/internal/api/payment/models"
	"souk_commerce/internal/common"
	"souk_commerce/internal/global"

	"github.com/stripe/stripe-go/v81"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMinorUnitTotal_RoundsPerLine(t *testing.T) {
	items := []ordermodels.OrderItem{
		{Price: 99.99, Quantity: 2},
	}
	if got := MinorUnitTotal(items); got != 19998 {
		t.Errorf("99.99 x 2 phải ra 19998 centimes, nhận được %d", got)
	}
}

func TestMinorUnitTotal_MultipleLines(t *testing.T) {
	items := []ordermodels.OrderItem{
		{Price: 10.5, Quantity: 3},  // 3150
		{Price: 0.1, Quantity: 7},   // 70
		{Price: 199.0, Quantity: 1}, // 19900
	}
	if got := MinorUnitTotal(items); got != 23120 {
		t.Errorf("tổng phải ra 23120 centimes, nhận được %d", got)
	}
}

func TestMinorUnitTotal_Empty(t *testing.T) {
	if got := MinorUnitTotal(nil); got != 0 {
		t.Errorf("giỏ rỗng phải ra 0, nhận được %d", got)
	}
}

func TestMetadataFromShipping(t *testing.T) {
	info := ordermodels.ShippingInfo{
		FullName: "أمينة العلوي",
		Phone:    "+212600000000",
		City:     "Casablanca",
		Address:  "12 Rue des Orangers",
	}
	metadata := MetadataFromShipping(info)

	if metadata["shipping_full_name"] != info.FullName {
		t.Errorf("shipping_full_name = %q, muốn %q", metadata["shipping_full_name"], info.FullName)
	}
	if metadata["shipping_city"] != "Casablanca" {
		t.Errorf("shipping_city = %q, muốn Casablanca", metadata["shipping_city"])
	}
	if _, ok := metadata["shipping_email"]; ok {
		t.Error("không được thêm shipping_email khi email rỗng")
	}
	if _, ok := metadata["shipping_notes"]; ok {
		t.Error("không được thêm shipping_notes khi notes rỗng")
	}

	info.Email = "amina@example.com"
	info.Notes = "gọi trước khi giao"
	metadata = MetadataFromShipping(info)
	if metadata["shipping_email"] != "amina@example.com" {
		t.Errorf("shipping_email = %q, muốn amina@example.com", metadata["shipping_email"])
	}
	if metadata["shipping_notes"] != "gọi trước khi giao" {
		t.Errorf("shipping_notes = %q, muốn ghi chú của khách", metadata["shipping_notes"])
	}
}

// fakeIntentAPI giả lập Stripe payment intent API, ghi lại params của lần Update
type fakeIntentAPI struct {
	getIntent    *stripe.PaymentIntent
	getErr       error
	updateErr    error
	capturedMeta map[string]string
	updateCalled bool
}

func (f *fakeIntentAPI) Create(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return nil, errors.New("không dùng trong test này")
}

func (f *fakeIntentAPI) Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getIntent, nil
}

func (f *fakeIntentAPI) Update(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.updateCalled = true
	f.capturedMeta = params.Metadata
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.getIntent, nil
}

func validShipping() ordermodels.ShippingInfo {
	return ordermodels.ShippingInfo{
		FullName: "Yassine Berrada",
		Phone:    "+212611111111",
		City:     "Rabat",
		Address:  "5 Avenue Hassan II",
	}
}

func TestUpdateIntentShipping_MergePreservesUnrelatedKeys(t *testing.T) {
	global.InitValidator()

	api := &fakeIntentAPI{
		getIntent: &stripe.PaymentIntent{
			ID: "pi_123",
			Metadata: map[string]string{
				"order_code":         "SK-AB12CD34",
				"campaign":           "eid-promo",
				"shipping_full_name": "tên cũ",
			},
		},
		// Trả lỗi ở Update để dừng trước khi service đụng tới database,
		// metadata gửi đi đã được fake ghi lại
		updateErr: errors.New("stripe unavailable"),
	}
	svc := NewIntentServiceWithAPI(api, nil, "mad")

	_, err := svc.UpdateIntentShipping(context.Background(), &paymentdto.UpdateIntentInput{
		IntentID:     "pi_123",
		ShippingInfo: validShipping(),
	})
	if err == nil {
		t.Fatal("Update trả lỗi thì UpdateIntentShipping phải trả lỗi")
	}
	if !api.updateCalled {
		t.Fatal("Update phải được gọi sau khi Get thành công")
	}

	if api.capturedMeta["order_code"] != "SK-AB12CD34" {
		t.Errorf("key order_code phải được giữ nguyên, nhận được %q", api.capturedMeta["order_code"])
	}
	if api.capturedMeta["campaign"] != "eid-promo" {
		t.Errorf("key campaign phải được giữ nguyên, nhận được %q", api.capturedMeta["campaign"])
	}
	if api.capturedMeta["shipping_full_name"] != "Yassine Berrada" {
		t.Errorf("shipping_full_name phải bị ghi đè bằng giá trị mới, nhận được %q", api.capturedMeta["shipping_full_name"])
	}
	if api.capturedMeta["shipping_city"] != "Rabat" {
		t.Errorf("shipping_city phải được thêm vào, nhận được %q", api.capturedMeta["shipping_city"])
	}
}

func TestUpdateIntentShipping_IntentNotFound(t *testing.T) {
	global.InitValidator()

	api := &fakeIntentAPI{getErr: errors.New("no such payment_intent")}
	svc := NewIntentServiceWithAPI(api, nil, "mad")

	_, err := svc.UpdateIntentShipping(context.Background(), &paymentdto.UpdateIntentInput{
		IntentID:     "pi_missing",
		ShippingInfo: validShipping(),
	})
	if !errors.Is(err, common.ErrIntentNotFound) {
		t.Errorf("intent không tồn tại phải trả ErrIntentNotFound, nhận được %v", err)
	}
	if api.updateCalled {
		t.Error("không được gọi Update khi Get thất bại")
	}
}

func TestUpdateIntentShipping_InvalidShippingRejected(t *testing.T) {
	global.InitValidator()

	api := &fakeIntentAPI{}
	svc := NewIntentServiceWithAPI(api, nil, "mad")

	_, err := svc.UpdateIntentShipping(context.Background(), &paymentdto.UpdateIntentInput{
		IntentID:     "pi_123",
		ShippingInfo: ordermodels.ShippingInfo{FullName: "thiếu các trường khác"},
	})
	if err == nil {
		t.Fatal("shipping thiếu trường bắt buộc phải bị từ chối")
	}
	if api.updateCalled {
		t.Error("không được gọi Stripe khi input không hợp lệ")
	}
}

// fakeEventLog giả lập event log trong Mongo, mô phỏng unique index trên eventId
type fakeEventLog struct {
	stored  []paymentmodels.PaymentEvent
	deleted []primitive.ObjectID
	notes   []string
}

func (f *fakeEventLog) InsertOne(ctx context.Context, data paymentmodels.PaymentEvent) (paymentmodels.PaymentEvent, error) {
	for _, record := range f.stored {
		if record.EventID == data.EventID {
			return paymentmodels.PaymentEvent{}, common.ErrDuplicate
		}
	}
	data.ID = primitive.NewObjectID()
	f.stored = append(f.stored, data)
	return data, nil
}

func (f *fakeEventLog) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (paymentmodels.PaymentEvent, error) {
	if updateData, ok := update.(*basesvc.UpdateData); ok {
		if note, ok := updateData.Set["note"].(string); ok {
			f.notes = append(f.notes, note)
		}
	}
	return paymentmodels.PaymentEvent{}, nil
}

func (f *fakeEventLog) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	f.deleted = append(f.deleted, id)
	for i, record := range f.stored {
		if record.ID == id {
			f.stored = append(f.stored[:i], f.stored[i+1:]...)
			break
		}
	}
	return nil
}

// fakeOrderMarker giả lập chuyển đơn hàng sang paid
type fakeOrderMarker struct {
	err   error
	calls int
}

func (f *fakeOrderMarker) MarkPaidByIntentID(ctx context.Context, intentID string) (ordermodels.Order, error) {
	f.calls++
	return ordermodels.Order{}, f.err
}

func succeededIntentVerifier(eventID string) SignatureVerifier {
	raw, _ := json.Marshal(map[string]interface{}{"id": "pi_123"})
	return func(payload []byte, sigHeader string, secret string) (stripe.Event, error) {
		return stripe.Event{
			ID:   eventID,
			Type: "payment_intent.succeeded",
			Data: &stripe.EventData{Raw: raw},
		}, nil
	}
}

func TestWebhookProcess_DuplicateDeliveryIsNoOp(t *testing.T) {
	events := &fakeEventLog{}
	orders := &fakeOrderMarker{}
	svc := NewWebhookServiceWithVerifier(events, orders, succeededIntentVerifier("evt_1"), "whsec_test")

	if err := svc.Process(context.Background(), []byte(`{}`), "sig"); err != nil {
		t.Fatalf("lần giao đầu phải thành công, nhận được %v", err)
	}
	if orders.calls != 1 {
		t.Fatalf("lần giao đầu phải chuyển đơn sang paid, calls = %d", orders.calls)
	}

	if err := svc.Process(context.Background(), []byte(`{}`), "sig"); err != nil {
		t.Fatalf("giao lại cùng event phải là no-op thành công, nhận được %v", err)
	}
	if orders.calls != 1 {
		t.Errorf("giao lại không được xử lý đơn hàng lần nữa, calls = %d", orders.calls)
	}
	if len(events.stored) != 1 {
		t.Errorf("event log phải giữ đúng 1 record, có %d", len(events.stored))
	}
}

func TestWebhookProcess_OrderMissingIsNoted(t *testing.T) {
	events := &fakeEventLog{}
	orders := &fakeOrderMarker{err: common.ErrOrderNotFound}
	svc := NewWebhookServiceWithVerifier(events, orders, succeededIntentVerifier("evt_2"), "whsec_test")

	if err := svc.Process(context.Background(), []byte(`{}`), "sig"); err != nil {
		t.Fatalf("thiếu đơn hàng vẫn phải trả 200 cho Stripe, nhận được %v", err)
	}
	if len(events.notes) != 1 {
		t.Fatalf("phải ghi note vào event record, có %d note", len(events.notes))
	}
	if events.notes[0] != "không tìm thấy đơn hàng cho intent pi_123" {
		t.Errorf("note không đúng: %q", events.notes[0])
	}
	if len(events.deleted) != 0 {
		t.Error("thiếu đơn hàng là bất thường cần đối soát, không được xóa record dedup")
	}
}

func TestWebhookProcess_TransientFailureKeepsRetryPath(t *testing.T) {
	events := &fakeEventLog{}
	orders := &fakeOrderMarker{err: errors.New("database timeout")}
	svc := NewWebhookServiceWithVerifier(events, orders, succeededIntentVerifier("evt_3"), "whsec_test")

	// Lần giao đầu: chuyển trạng thái đơn thất bại tạm thời
	if err := svc.Process(context.Background(), []byte(`{}`), "sig"); err == nil {
		t.Fatal("lỗi tạm thời phải trả lỗi để Stripe retry")
	}
	if len(events.deleted) != 1 {
		t.Fatalf("record dedup phải bị xóa khi xử lý dở dang, deleted = %d", len(events.deleted))
	}

	// Stripe giao lại: database đã hồi phục, transition phải hoàn tất
	orders.err = nil
	if err := svc.Process(context.Background(), []byte(`{}`), "sig"); err != nil {
		t.Fatalf("retry sau khi hồi phục phải thành công, nhận được %v", err)
	}
	if orders.calls != 2 {
		t.Errorf("retry phải xử lý lại đơn hàng, calls = %d", orders.calls)
	}
	if len(events.stored) != 1 {
		t.Errorf("sau retry thành công event log phải có đúng 1 record, có %d", len(events.stored))
	}
}

func TestWebhookProcess_IgnoredEventTypeStillDeduped(t *testing.T) {
	events := &fakeEventLog{}
	orders := &fakeOrderMarker{}
	verify := func(payload []byte, sigHeader string, secret string) (stripe.Event, error) {
		return stripe.Event{ID: "evt_4", Type: "charge.refunded", Data: &stripe.EventData{Raw: []byte(`{}`)}}, nil
	}
	svc := NewWebhookServiceWithVerifier(events, orders, verify, "whsec_test")

	if err := svc.Process(context.Background(), []byte(`{}`), "sig"); err != nil {
		t.Fatalf("loại event không xử lý vẫn phải trả 200, nhận được %v", err)
	}
	if orders.calls != 0 {
		t.Error("loại event khác không được đụng tới đơn hàng")
	}
	if len(events.stored) != 1 {
		t.Errorf("event vẫn phải được lưu để dedup, có %d record", len(events.stored))
	}
}

func TestWebhookProcess_InvalidSignature(t *testing.T) {
	verify := func(payload []byte, sigHeader string, secret string) (stripe.Event, error) {
		return stripe.Event{}, errors.New("signature mismatch")
	}
	svc := NewWebhookServiceWithVerifier(nil, nil, verify, "whsec_test")

	err := svc.Process(context.Background(), []byte(`{}`), "t=1,v1=bad")
	if !errors.Is(err, common.ErrSignatureInvalid) {
		t.Errorf("chữ ký sai phải trả ErrSignatureInvalid, nhận được %v", err)
	}
}

func TestExtractIntentID(t *testing.T) {
	raw, _ := json.Marshal(map[string]interface{}{"id": "pi_789", "amount": 19998})
	event := stripe.Event{Data: &stripe.EventData{Raw: raw}}
	if got := extractIntentID(event); got != "pi_789" {
		t.Errorf("extractIntentID = %q, muốn pi_789", got)
	}

	bad := stripe.Event{Data: &stripe.EventData{Raw: []byte("not json")}}
	if got := extractIntentID(bad); got != "" {
		t.Errorf("payload hỏng phải trả chuỗi rỗng, nhận được %q", got)
	}
}
