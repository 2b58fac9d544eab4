package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/teamalhin-buss/ALH-perfume/internal/service"
)

// CheckoutService and PaymentVerifier are defined here, consumer-side, so
// handler tests can stand in their own fakes.
type CheckoutService interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*service.CreateOrderResponse, error)
}

type PaymentVerifier interface {
	VerifyPayment(ctx context.Context, req service.VerifyPaymentRequest) (*service.VerifyPaymentResponse, error)
}

type OrderHandler struct {
	checkout CheckoutService
	verifier PaymentVerifier
	timeout  time.Duration
}

func NewOrderHandler(checkout CheckoutService, verifier PaymentVerifier, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		verifier: verifier,
		timeout:  timeout,
	}
}

// CreateOrder handles POST /api/create-razorpay-order.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req service.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	resp, err := h.checkout.CreateOrder(ctx, req)
	if err != nil {
		var vErr *service.ValidationError
		var gErr *service.GatewayError
		switch {
		case errors.As(err, &vErr):
			respondError(w, http.StatusBadRequest, vErr.Message)
		case errors.As(err, &gErr):
			respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: gErr.Message, Details: gErr.Details})
		default:
			respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to create order", Details: err.Error()})
		}
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// VerifyPayment handles POST /api/verify-payment.
func (h *OrderHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req service.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, VerifyErrorResponse{Error: "invalid JSON body"})
		return
	}

	resp, err := h.verifier.VerifyPayment(ctx, req)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			respondJSON(w, http.StatusBadRequest, VerifyErrorResponse{Error: vErr.Message})
		case errors.Is(err, service.ErrInvalidSignature):
			respondJSON(w, http.StatusBadRequest, VerifyErrorResponse{Error: "Invalid payment signature"})
		default:
			respondJSON(w, http.StatusInternalServerError, VerifyErrorResponse{
				Error:   "Payment verification failed",
				Details: err.Error(),
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
