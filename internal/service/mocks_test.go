package service

import (
	"context"
	"sync"

	"github.com/teamalhin-buss/ALH-perfume/internal/domain"
	"github.com/teamalhin-buss/ALH-perfume/internal/events"
	"github.com/teamalhin-buss/ALH-perfume/internal/gateway"
	"github.com/teamalhin-buss/ALH-perfume/internal/repository"
)

type mockGateway struct {
	createFunc func(ctx context.Context, req gateway.OrderRequest) (*gateway.Order, error)
	lastReq    gateway.OrderRequest
	calls      int
}

func (m *mockGateway) CreateOrder(ctx context.Context, req gateway.OrderRequest) (*gateway.Order, error) {
	m.calls++
	m.lastReq = req
	return m.createFunc(ctx, req)
}

type mockOrders struct {
	mu sync.Mutex

	createFunc   func(ctx context.Context, order *domain.Order) error
	getFunc      func(ctx context.Context, id string) (*domain.Order, error)
	markPaidFunc func(ctx context.Context, orderID string, payment domain.PaymentRecord) error
	logFunc      func(ctx context.Context, attempt *domain.PaymentAttempt) error

	created       []*domain.Order
	paid          map[string]domain.PaymentRecord
	markPaidCalls int
	attempts      []*domain.PaymentAttempt
}

func newMockOrders() *mockOrders {
	return &mockOrders{paid: make(map[string]domain.PaymentRecord)}
}

func (m *mockOrders) CreateOrder(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, order)
	if m.createFunc != nil {
		return m.createFunc(ctx, order)
	}
	return nil
}

func (m *mockOrders) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if payment, ok := m.paid[id]; ok {
		return &domain.Order{ID: id, Status: domain.OrderStatusPaid, Payment: &payment}, nil
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrders) MarkPaid(ctx context.Context, orderID string, payment domain.PaymentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markPaidCalls++
	if m.markPaidFunc != nil {
		if err := m.markPaidFunc(ctx, orderID, payment); err != nil {
			return err
		}
	}
	m.paid[orderID] = payment
	return nil
}

func (m *mockOrders) LogPaymentAttempt(ctx context.Context, attempt *domain.PaymentAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, attempt)
	if m.logFunc != nil {
		return m.logFunc(ctx, attempt)
	}
	return nil
}

type mockPublisher struct {
	publishFunc func(ctx context.Context, event events.OrderPaid) error
	published   []events.OrderPaid
}

func (m *mockPublisher) PublishOrderPaid(ctx context.Context, event events.OrderPaid) error {
	m.published = append(m.published, event)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, event)
	}
	return nil
}
