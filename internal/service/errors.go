package service

import "errors"

// ValidationError is a client error: missing or malformed input, surfaced
// as a 4xx with a human-readable message. Never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// GatewayError is an upstream dependency failure that is fatal to the
// request: the gateway order is the source of truth and could not be
// obtained.
type GatewayError struct {
	Message string
	Details string
}

func (e *GatewayError) Error() string { return e.Message + ": " + e.Details }

// ErrInvalidSignature is an integrity failure: the supplied callback
// signature does not match the recomputed one.
var ErrInvalidSignature = errors.New("invalid payment signature")
