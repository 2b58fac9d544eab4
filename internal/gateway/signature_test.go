package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature_Deterministic(t *testing.T) {
	a := Signature("order_123", "pay_456", "secret")
	b := Signature("order_123", "pay_456", "secret")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // hex-encoded SHA-256
}

func TestVerifySignature_Valid(t *testing.T) {
	sig := Signature("order_123", "pay_456", "secret")
	assert.True(t, VerifySignature("order_123", "pay_456", "secret", sig))
}

func TestVerifySignature_SingleCharacterMutation(t *testing.T) {
	sig := Signature("order_123", "pay_456", "secret")

	mutated := []byte(sig)
	if mutated[0] == 'a' {
		mutated[0] = 'b'
	} else {
		mutated[0] = 'a'
	}
	assert.False(t, VerifySignature("order_123", "pay_456", "secret", string(mutated)))
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	sig := Signature("order_123", "pay_456", "secret")
	assert.False(t, VerifySignature("order_123", "pay_456", "other-secret", sig))
}

func TestVerifySignature_SwappedIDs(t *testing.T) {
	// The signed text is "<orderID>|<paymentID>", so swapping the two must
	// not verify.
	sig := Signature("order_123", "pay_456", "secret")
	require.False(t, VerifySignature("pay_456", "order_123", "secret", sig))
}
