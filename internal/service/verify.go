package service

import (
	"context"
	"log"
	"time"

	"github.com/teamalhin-buss/ALH-perfume/internal/domain"
	"github.com/teamalhin-buss/ALH-perfume/internal/events"
	"github.com/teamalhin-buss/ALH-perfume/internal/gateway"
	"github.com/teamalhin-buss/ALH-perfume/internal/repository"
)

type VerifyPaymentRequest struct {
	OrderID           string `json:"orderId"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

type VerifyPaymentResponse struct {
	Success           bool   `json:"success"`
	OrderID           string `json:"orderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	Message           string `json:"message,omitempty"`
	Warning           string `json:"warning,omitempty"`
	Timestamp         string `json:"timestamp,omitempty"`
}

// VerifyService checks gateway callback signatures and transitions orders
// to paid. A nil order repository skips the status update; the signature
// check itself needs only the shared secret.
type VerifyService struct {
	orders    repository.OrderRepository
	publisher events.Publisher
	secret    string
	now       func() time.Time
}

func NewVerifyService(orders repository.OrderRepository, publisher events.Publisher, secret string) *VerifyService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &VerifyService{
		orders:    orders,
		publisher: publisher,
		secret:    secret,
		now:       time.Now,
	}
}

func (s *VerifyService) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*VerifyPaymentResponse, error) {
	if req.OrderID == "" || req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		return nil, &ValidationError{
			Message: "Missing required parameters. Need orderId, razorpayPaymentId, razorpayOrderId, and razorpaySignature",
		}
	}

	if !gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, s.secret, req.RazorpaySignature) {
		log.Printf("invalid payment signature for order %s", req.OrderID)
		s.logAttempt(ctx, req)
		return nil, ErrInvalidSignature
	}

	verifiedAt := s.now().UTC()
	resp := &VerifyPaymentResponse{
		Success:           true,
		OrderID:           req.OrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		Message:           "Payment verified successfully",
		Timestamp:         verifiedAt.Format(time.RFC3339),
	}

	// The money has moved: a failed status update degrades to a warning so
	// the caller can reconcile out of band, never to a failed verification.
	if s.orders != nil {
		// A repeated callback for an already-paid order is acknowledged
		// without another write or a duplicate event.
		if existing, err := s.orders.GetOrder(ctx, req.OrderID); err == nil &&
			!existing.Status.CanTransitionTo(domain.OrderStatusPaid) {
			log.Printf("order %s already %s, skipping status update", req.OrderID, existing.Status)
			return resp, nil
		}
		payment := domain.PaymentRecord{
			Status:            "completed",
			RazorpayPaymentID: req.RazorpayPaymentID,
			RazorpayOrderID:   req.RazorpayOrderID,
			VerifiedAt:        verifiedAt,
		}
		if err := s.orders.MarkPaid(ctx, req.OrderID, payment); err != nil {
			log.Printf("failed to update order %s after verification: %v", req.OrderID, err)
			resp.Message = ""
			resp.Warning = "Payment verified but order status update failed"
			return resp, nil
		}
	} else {
		log.Printf("order store not available, skipping status update for order %s", req.OrderID)
	}

	event := events.OrderPaid{
		OrderID:           req.OrderID,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		VerifiedAt:        verifiedAt,
	}
	if err := s.publisher.PublishOrderPaid(ctx, event); err != nil {
		log.Printf("failed to publish order paid event for %s: %v", req.OrderID, err)
	}

	return resp, nil
}

func (s *VerifyService) logAttempt(ctx context.Context, req VerifyPaymentRequest) {
	if s.orders == nil {
		return
	}
	attempt := &domain.PaymentAttempt{
		OrderID:           req.OrderID,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		Status:            domain.AttemptStatusSignatureMismatch,
		ReceivedSignature: req.RazorpaySignature,
		ExpectedSignature: gateway.Signature(req.RazorpayOrderID, req.RazorpayPaymentID, s.secret),
		Timestamp:         s.now().UTC(),
	}
	if err := s.orders.LogPaymentAttempt(ctx, attempt); err != nil {
		log.Printf("failed to log payment attempt for order %s: %v", req.OrderID, err)
	}
}
