package httpapi

import (
	"net/http"
	"time"
)

type HealthHandler struct {
	environment        string
	firebaseReady      bool
	razorpayConfigured bool
}

func NewHealthHandler(environment string, firebaseReady, razorpayConfigured bool) *HealthHandler {
	return &HealthHandler{
		environment:        environment,
		firebaseReady:      firebaseReady,
		razorpayConfigured: razorpayConfigured,
	}
}

type healthServices struct {
	Firebase string `json:"firebase"`
	Razorpay string `json:"razorpay"`
}

type healthResponse struct {
	Status      string         `json:"status"`
	Message     string         `json:"message"`
	Timestamp   string         `json:"timestamp"`
	Environment string         `json:"environment"`
	Services    healthServices `json:"services"`
}

// Health handles GET /.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	firebase := "disconnected"
	if h.firebaseReady {
		firebase = "connected"
	}
	razorpay := "not configured"
	if h.razorpayConfigured {
		razorpay = "configured"
	}

	respondJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Message:     "ALH Perfume storefront API",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Environment: h.environment,
		Services:    healthServices{Firebase: firebase, Razorpay: razorpay},
	})
}
