package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/sony/gobreaker/v2"
)

// OrderRequest is a gateway order creation request. Amount is in integer
// minor units (paise); the charge is auto-captured.
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
}

// Order is the gateway-authoritative order record returned on creation.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

// OrderCreator creates orders with the payment gateway. Consumers define
// this interface, not the Razorpay implementation.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

// Razorpay wraps the Razorpay SDK client behind a circuit breaker so a
// misbehaving gateway fails fast instead of piling up requests.
type Razorpay struct {
	client *razorpay.Client
	cb     *gobreaker.CircuitBreaker[map[string]interface{}]
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{
		client: razorpay.NewClient(keyID, keySecret),
		cb:     gobreaker.NewCircuitBreaker[map[string]interface{}](gobreaker.Settings{Name: "razorpay-orders"}),
	}
}

// CreateOrder calls the Razorpay order creation API. The SDK does not take
// a context; the ctx parameter keeps the interface uniform for callers.
func (r *Razorpay) CreateOrder(_ context.Context, req OrderRequest) (*Order, error) {
	data := map[string]interface{}{
		"amount":          req.Amount,
		"currency":        req.Currency,
		"receipt":         req.Receipt,
		"payment_capture": 1,
	}

	resp, err := r.cb.Execute(func() (map[string]interface{}, error) {
		return r.client.Order.Create(data, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	order := &Order{
		ID:       asString(resp["id"]),
		Amount:   asInt64(resp["amount"]),
		Currency: asString(resp["currency"]),
		Receipt:  asString(resp["receipt"]),
	}
	if order.ID == "" {
		return nil, fmt.Errorf("razorpay order create: response missing order id")
	}
	return order, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
