package events

import (
	"context"
	"time"
)

// OrderPaid is published after a payment signature has been verified and
// the order transitioned to paid. Downstream consumers (fulfillment,
// notifications) pick it up asynchronously.
type OrderPaid struct {
	OrderID           string    `json:"order_id"`
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id"`
	VerifiedAt        time.Time `json:"verified_at"`
}

// Publisher emits order events. Publishing is always best-effort: a failure
// is logged by the caller and never affects the payment response.
type Publisher interface {
	PublishOrderPaid(ctx context.Context, event OrderPaid) error
}

// NopPublisher drops all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPaid(context.Context, OrderPaid) error { return nil }
