package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentEvent ghi nhận một webhook event đã xử lý từ Stripe.
// Unique index trên eventId là cơ chế dedup: Stripe gửi lại cùng event
// thì insert trùng và lần xử lý thứ hai trở thành no-op.
// TTL 90 ngày, event cũ tự xóa.
type PaymentEvent struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EventID    string             `json:"eventId" bson:"eventId" index:"unique"` // ID event từ Stripe (evt_...)
	Type       string             `json:"type" bson:"type"`                      // Loại event (payment_intent.succeeded, ...)
	IntentID   string             `json:"intentId,omitempty" bson:"intentId,omitempty" index:"single:1"`
	Note       string             `json:"note,omitempty" bson:"note,omitempty"` // Ghi chú khi xử lý bất thường
	ReceivedAt time.Time          `json:"receivedAt" bson:"receivedAt" index:"ttl:7776000"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}
