package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Signature computes the Razorpay callback signature: hex-encoded
// HMAC-SHA256 over "<orderID>|<paymentID>" with the key secret.
func Signature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a supplied signature against the recomputed one in
// constant time.
func VerifySignature(orderID, paymentID, secret, supplied string) bool {
	expected := Signature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(supplied))
}
