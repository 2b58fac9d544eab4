package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamalhin-buss/ALH-perfume/internal/domain"
	"github.com/teamalhin-buss/ALH-perfume/internal/events"
	"github.com/teamalhin-buss/ALH-perfume/internal/gateway"
)

const testSecret = "test_key_secret"

func validVerifyRequest() VerifyPaymentRequest {
	return VerifyPaymentRequest{
		OrderID:           "order_local1",
		RazorpayOrderID:   "order_gw1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: gateway.Signature("order_gw1", "pay_1", testSecret),
	}
}

func TestVerifyPayment_Success(t *testing.T) {
	orders := newMockOrders()
	publisher := &mockPublisher{}
	svc := NewVerifyService(orders, publisher, testSecret)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	resp, err := svc.VerifyPayment(context.Background(), validVerifyRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "order_local1", resp.OrderID)
	assert.Equal(t, "pay_1", resp.RazorpayPaymentID)
	assert.Equal(t, "Payment verified successfully", resp.Message)
	assert.Empty(t, resp.Warning)
	assert.Equal(t, "2026-03-01T12:00:00Z", resp.Timestamp)

	payment, ok := orders.paid["order_local1"]
	require.True(t, ok)
	assert.Equal(t, "completed", payment.Status)
	assert.Equal(t, "pay_1", payment.RazorpayPaymentID)
	assert.Equal(t, fixed, payment.VerifiedAt)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, "order_local1", publisher.published[0].OrderID)
}

func TestVerifyPayment_MissingParameters(t *testing.T) {
	svc := NewVerifyService(newMockOrders(), nil, testSecret)

	tests := []struct {
		name   string
		mutate func(*VerifyPaymentRequest)
	}{
		{"missing orderId", func(r *VerifyPaymentRequest) { r.OrderID = "" }},
		{"missing razorpayOrderId", func(r *VerifyPaymentRequest) { r.RazorpayOrderID = "" }},
		{"missing razorpayPaymentId", func(r *VerifyPaymentRequest) { r.RazorpayPaymentID = "" }},
		{"missing razorpaySignature", func(r *VerifyPaymentRequest) { r.RazorpaySignature = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validVerifyRequest()
			tt.mutate(&req)
			_, err := svc.VerifyPayment(context.Background(), req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Message, "Missing required parameters")
		})
	}
}

func TestVerifyPayment_SignatureMismatch(t *testing.T) {
	orders := newMockOrders()
	svc := NewVerifyService(orders, nil, testSecret)

	req := validVerifyRequest()
	req.RazorpaySignature = gateway.Signature("order_gw1", "pay_1", "wrong_secret")
	_, err := svc.VerifyPayment(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidSignature)

	require.Len(t, orders.attempts, 1)
	attempt := orders.attempts[0]
	assert.Equal(t, domain.AttemptStatusSignatureMismatch, attempt.Status)
	assert.Equal(t, req.RazorpaySignature, attempt.ReceivedSignature)
	assert.Equal(t, gateway.Signature("order_gw1", "pay_1", testSecret), attempt.ExpectedSignature)
	assert.Empty(t, orders.paid)
}

func TestVerifyPayment_AttemptLogFailureStillFails(t *testing.T) {
	orders := newMockOrders()
	orders.logFunc = func(context.Context, *domain.PaymentAttempt) error {
		return errors.New("firestore unavailable")
	}
	svc := NewVerifyService(orders, nil, testSecret)

	req := validVerifyRequest()
	req.RazorpaySignature = "deadbeef"
	_, err := svc.VerifyPayment(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyPayment_StatusUpdateFailureBecomesWarning(t *testing.T) {
	orders := newMockOrders()
	orders.markPaidFunc = func(context.Context, string, domain.PaymentRecord) error {
		return errors.New("firestore unavailable")
	}
	svc := NewVerifyService(orders, nil, testSecret)

	resp, err := svc.VerifyPayment(context.Background(), validVerifyRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Payment verified but order status update failed", resp.Warning)
	assert.Empty(t, resp.Message)
}

func TestVerifyPayment_NilRepositorySkipsUpdate(t *testing.T) {
	publisher := &mockPublisher{}
	svc := NewVerifyService(nil, publisher, testSecret)

	resp, err := svc.VerifyPayment(context.Background(), validVerifyRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Warning)
	assert.Len(t, publisher.published, 1)
}

func TestVerifyPayment_PublisherFailureIsIgnored(t *testing.T) {
	orders := newMockOrders()
	publisher := &mockPublisher{
		publishFunc: func(context.Context, events.OrderPaid) error {
			return errors.New("broker down")
		},
	}
	svc := NewVerifyService(orders, publisher, testSecret)

	resp, err := svc.VerifyPayment(context.Background(), validVerifyRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestVerifyPayment_Reverification(t *testing.T) {
	// Re-sending the same valid callback verifies again but writes nothing:
	// the order is already paid, so the update and the event are skipped.
	orders := newMockOrders()
	publisher := &mockPublisher{}
	svc := NewVerifyService(orders, publisher, testSecret)

	first, err := svc.VerifyPayment(context.Background(), validVerifyRequest())
	require.NoError(t, err)
	second, err := svc.VerifyPayment(context.Background(), validVerifyRequest())
	require.NoError(t, err)

	assert.True(t, second.Success)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, 1, orders.markPaidCalls)
	assert.Len(t, publisher.published, 1)
}

func TestVerifyPayment_CreatedOrderIsUpdated(t *testing.T) {
	orders := newMockOrders()
	orders.getFunc = func(_ context.Context, id string) (*domain.Order, error) {
		return &domain.Order{ID: id, Status: domain.OrderStatusCreated}, nil
	}
	svc := NewVerifyService(orders, nil, testSecret)

	resp, err := svc.VerifyPayment(context.Background(), validVerifyRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, orders.markPaidCalls)
}
