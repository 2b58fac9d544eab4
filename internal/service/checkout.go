package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/teamalhin-buss/ALH-perfume/internal/domain"
	"github.com/teamalhin-buss/ALH-perfume/internal/gateway"
	"github.com/teamalhin-buss/ALH-perfume/internal/repository"
)

// CreateOrderRequest is the checkout input. Amount is in minor units
// (paise) and is accepted as either a JSON number or a numeric string,
// since both shapes arrive from clients in practice.
type CreateOrderRequest struct {
	Amount    any            `json:"amount"`
	Currency  string         `json:"currency"`
	Receipt   string         `json:"receipt"`
	OrderData map[string]any `json:"orderData"`
}

// CreateOrderResponse echoes the gateway's response, not the local record,
// so the client always sees gateway-authoritative values.
type CreateOrderResponse struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
	Receipt  string `json:"receipt"`
}

// CheckoutService creates gateway orders and records them. A nil order
// repository puts the service in degraded mode: orders are still created
// with the gateway, just not recorded locally.
type CheckoutService struct {
	gateway gateway.OrderCreator
	orders  repository.OrderRepository
	now     func() time.Time
}

func NewCheckoutService(gw gateway.OrderCreator, orders repository.OrderRepository) *CheckoutService {
	return &CheckoutService{
		gateway: gw,
		orders:  orders,
		now:     time.Now,
	}
}

// CreateOrder validates the amount, creates the gateway order and records it
// locally. A zero amount is rejected the same as a non-numeric one.
func (s *CheckoutService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil || amount == 0 {
		return nil, &ValidationError{Message: "Invalid amount"}
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	receipt := req.Receipt
	if receipt == "" {
		receipt = fmt.Sprintf("order_%d", s.now().UnixMilli())
	}

	order, err := s.gateway.CreateOrder(ctx, gateway.OrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, &GatewayError{Message: "Failed to create order", Details: err.Error()}
	}

	// The gateway order already exists and must be returned to the caller,
	// so a failure to record it locally is logged and swallowed.
	if s.orders != nil {
		record := &domain.Order{
			ID:        order.ID,
			Amount:    order.Amount,
			Currency:  order.Currency,
			Receipt:   order.Receipt,
			Status:    domain.OrderStatusCreated,
			OrderData: req.OrderData,
		}
		if err := s.orders.CreateOrder(ctx, record); err != nil {
			log.Printf("failed to save order %s: %v", order.ID, err)
		}
	}

	return &CreateOrderResponse{
		ID:       order.ID,
		Currency: order.Currency,
		Amount:   order.Amount,
		Receipt:  order.Receipt,
	}, nil
}

// parseAmount accepts a JSON number or a numeric string and rounds to an
// integer minor-unit amount, which is what the gateway requires.
func parseAmount(v any) (int64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, err
		}
		f = parsed
	default:
		return 0, fmt.Errorf("amount is not numeric")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("amount is not finite")
	}
	return int64(math.Round(f)), nil
}
