package httpapi

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers collects everything the router serves. Avatar and Verifier are
// optional; the matching routes and auth support are dropped when nil.
type Handlers struct {
	Cart   *CartHandler
	Orders *OrderHandler
	Health *HealthHandler
	Avatar *AvatarHandler

	Verifier       TokenVerifier
	RequestTimeout time.Duration
}

func NewRouter(h Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(h.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware(h.Verifier))

	r.Get("/", h.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/create-razorpay-order", h.Orders.CreateOrder)
		r.Post("/verify-payment", h.Orders.VerifyPayment)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{id}", h.Cart.UpdateQuantity)
			r.Delete("/items/{id}", h.Cart.RemoveItem)
		})

		if h.Avatar != nil {
			r.Post("/profile/avatar", h.Avatar.Upload)
		}
	})

	return r
}
