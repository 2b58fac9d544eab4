package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/teamalhin-buss/ALH-perfume/internal/domain"
)

const (
	ordersCollection   = "orders"
	attemptsCollection = "payment_attempts"
)

// FirestoreOrders implements OrderRepository on top of Firestore. Orders are
// keyed by the gateway-issued order id; createdAt/updatedAt/verifiedAt are
// server timestamps.
type FirestoreOrders struct {
	client *firestore.Client
}

func NewFirestoreOrders(client *firestore.Client) *FirestoreOrders {
	return &FirestoreOrders{client: client}
}

func (r *FirestoreOrders) orders() *firestore.CollectionRef {
	return r.client.Collection(ordersCollection)
}

func (r *FirestoreOrders) CreateOrder(ctx context.Context, order *domain.Order) error {
	data := map[string]interface{}{
		"razorpayOrderId": order.ID,
		"status":          string(order.Status),
		"amount":          order.Amount,
		"currency":        order.Currency,
		"receipt":         order.Receipt,
		"createdAt":       firestore.ServerTimestamp,
		"updatedAt":       firestore.ServerTimestamp,
	}
	if len(order.OrderData) > 0 {
		data["orderData"] = order.OrderData
	}

	if _, err := r.orders().Doc(order.ID).Set(ctx, data); err != nil {
		return fmt.Errorf("firestore set order %s: %w", order.ID, err)
	}
	return nil
}

func (r *FirestoreOrders) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrOrderNotFound
	}

	snap, err := r.orders().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("firestore get order %s: %w", id, err)
	}

	var order domain.Order
	if err := snap.DataTo(&order); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", id, err)
	}
	order.ID = snap.Ref.ID
	return &order, nil
}

// MarkPaid transitions the order to paid and fills in the payment
// sub-record. Concurrent verifications of the same order race with
// last-write-wins semantics; both writers set the same values so the
// outcome is still consistent.
func (r *FirestoreOrders) MarkPaid(ctx context.Context, orderID string, payment domain.PaymentRecord) error {
	updates := []firestore.Update{
		{Path: "status", Value: string(domain.OrderStatusPaid)},
		{Path: "payment.status", Value: payment.Status},
		{Path: "payment.razorpayPaymentId", Value: payment.RazorpayPaymentID},
		{Path: "payment.razorpayOrderId", Value: payment.RazorpayOrderID},
		{Path: "payment.verifiedAt", Value: firestore.ServerTimestamp},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}

	if _, err := r.orders().Doc(orderID).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrOrderNotFound
		}
		return fmt.Errorf("firestore update order %s: %w", orderID, err)
	}
	return nil
}

func (r *FirestoreOrders) LogPaymentAttempt(ctx context.Context, attempt *domain.PaymentAttempt) error {
	data := map[string]interface{}{
		"orderId":           attempt.OrderID,
		"razorpayOrderId":   attempt.RazorpayOrderID,
		"razorpayPaymentId": attempt.RazorpayPaymentID,
		"status":            attempt.Status,
		"receivedSignature": attempt.ReceivedSignature,
		"expectedSignature": attempt.ExpectedSignature,
		"timestamp":         firestore.ServerTimestamp,
	}

	doc := r.client.Collection(attemptsCollection).Doc(uuid.NewString())
	if _, err := doc.Set(ctx, data); err != nil {
		return fmt.Errorf("firestore log payment attempt: %w", err)
	}
	return nil
}

// Ping reads a probe document to verify Firestore connectivity. A missing
// document still proves the connection works.
func Ping(ctx context.Context, client *firestore.Client) error {
	if client == nil {
		return errors.New("firestore client is nil")
	}
	_, err := client.Collection("test").Doc("connection-test").Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}
