package repository

import (
	"context"
	"errors"

	"github.com/teamalhin-buss/ALH-perfume/internal/domain"
)

// OrderRepository defines the order persistence operations the services
// need. Consumers define this interface, not the Firestore implementation.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	MarkPaid(ctx context.Context, orderID string, payment domain.PaymentRecord) error
	LogPaymentAttempt(ctx context.Context, attempt *domain.PaymentAttempt) error
}

var ErrOrderNotFound = errors.New("order not found")
