package domain

import "time"

type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "created"
	OrderStatusPaid    OrderStatus = "paid"
)

// CanTransitionTo guards the order state machine. The only defined
// transition is created -> paid; a failed verification leaves the order
// at created indefinitely.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	return s == OrderStatusCreated && target == OrderStatusPaid
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPaid
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// PaymentRecord is populated on an order only after its signature has been
// verified.
type PaymentRecord struct {
	Status            string    `firestore:"status" json:"status"`
	RazorpayPaymentID string    `firestore:"razorpayPaymentId" json:"razorpayPaymentId"`
	RazorpayOrderID   string    `firestore:"razorpayOrderId" json:"razorpayOrderId"`
	VerifiedAt        time.Time `firestore:"verifiedAt" json:"verifiedAt"`
}

// Order is the server-owned order document, keyed by the gateway-issued
// order id. Amount is in integer minor units (paise).
type Order struct {
	ID        string         `firestore:"razorpayOrderId" json:"id"`
	Amount    int64          `firestore:"amount" json:"amount"`
	Currency  string         `firestore:"currency" json:"currency"`
	Receipt   string         `firestore:"receipt" json:"receipt"`
	Status    OrderStatus    `firestore:"status" json:"status"`
	OrderData map[string]any `firestore:"orderData,omitempty" json:"orderData,omitempty"`
	Payment   *PaymentRecord `firestore:"payment,omitempty" json:"payment,omitempty"`
	CreatedAt time.Time      `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `firestore:"updatedAt" json:"updatedAt"`
}

// PaymentAttempt is an audit record for a verification that failed its
// signature check.
type PaymentAttempt struct {
	OrderID           string    `firestore:"orderId" json:"orderId"`
	RazorpayOrderID   string    `firestore:"razorpayOrderId" json:"razorpayOrderId"`
	RazorpayPaymentID string    `firestore:"razorpayPaymentId" json:"razorpayPaymentId"`
	Status            string    `firestore:"status" json:"status"`
	ReceivedSignature string    `firestore:"receivedSignature" json:"receivedSignature"`
	ExpectedSignature string    `firestore:"expectedSignature" json:"expectedSignature"`
	Timestamp         time.Time `firestore:"timestamp" json:"timestamp"`
}

const AttemptStatusSignatureMismatch = "signature_mismatch"
