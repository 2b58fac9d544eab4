package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/teamalhin-buss/ALH-perfume/internal/cart"
	"github.com/teamalhin-buss/ALH-perfume/internal/domain"
)

type CartHandler struct {
	dispatcher *cart.Dispatcher
	store      *cart.Store
	timeout    time.Duration
}

func NewCartHandler(dispatcher *cart.Dispatcher, store *cart.Store, timeout time.Duration) *CartHandler {
	return &CartHandler{
		dispatcher: dispatcher,
		store:      store,
		timeout:    timeout,
	}
}

type AddItemRequestDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
}

type UpdateQuantityRequestDTO struct {
	Quantity any `json:"quantity"`
}

// CartMutationResponse is returned by every cart mutation: the full
// re-rendered view plus the transient notice, if the mutation produced one.
type CartMutationResponse struct {
	Cart   cart.View `json:"cart"`
	Notice string    `json:"notice,omitempty"`
}

// GetCart handles GET /api/cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	c, err := h.store.Get(ctx, SessionID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	respondJSON(w, http.StatusOK, cart.Render(c))
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.dispatcher.Dispatch(ctx, SessionID(r.Context()), cart.Intent{
		Kind: cart.IntentAddItem,
		Item: domain.CartItem{
			ID:       req.ID,
			Name:     req.Name,
			Price:    req.Price,
			Image:    req.Image,
			Quantity: req.Quantity,
			Size:     req.Size,
			Color:    req.Color,
		},
	})
	if err != nil {
		if errors.Is(err, cart.ErrInvalidItem) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	respondJSON(w, http.StatusCreated, CartMutationResponse{Cart: cart.Render(result.Cart), Notice: result.Notice})
}

// UpdateQuantity handles PUT /api/cart/items/{id}. Quantity arrives as raw
// user input (number or string); anything that is not a positive integer
// leaves the cart unchanged.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.dispatcher.Dispatch(ctx, SessionID(r.Context()), cart.Intent{
		Kind:     cart.IntentChangeQuantity,
		ItemID:   chi.URLParam(r, "id"),
		Quantity: rawQuantity(req.Quantity),
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update quantity")
		return
	}

	respondJSON(w, http.StatusOK, CartMutationResponse{Cart: cart.Render(result.Cart)})
}

// RemoveItem handles DELETE /api/cart/items/{id}. Removes every line with
// that id, regardless of variant.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.dispatcher.Dispatch(ctx, SessionID(r.Context()), cart.Intent{
		Kind:   cart.IntentRemoveItem,
		ItemID: chi.URLParam(r, "id"),
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}

	respondJSON(w, http.StatusOK, CartMutationResponse{Cart: cart.Render(result.Cart), Notice: result.Notice})
}

// ClearCart handles DELETE /api/cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.dispatcher.Dispatch(ctx, SessionID(r.Context()), cart.Intent{Kind: cart.IntentClearCart})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	respondJSON(w, http.StatusOK, CartMutationResponse{Cart: cart.Render(result.Cart)})
}

func rawQuantity(v any) string {
	switch q := v.(type) {
	case string:
		return q
	case float64:
		return strconv.FormatFloat(q, 'f', -1, 64)
	default:
		return ""
	}
}
