package domain

import "time"

// CartItem is a single line in a shopping cart. ID together with Size and
// Color forms the uniqueness key: adding the same variant again merges into
// the existing line instead of appending a new one.
type CartItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Image    string    `json:"image"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
	Size     string    `json:"size,omitempty"`
	Color    string    `json:"color,omitempty"`
}

// SameVariant reports whether two items refer to the same purchasable
// variant. Items without a size or color compare on the empty string.
func (i CartItem) SameVariant(other CartItem) bool {
	return i.ID == other.ID && i.Size == other.Size && i.Color == other.Color
}

// Cart is the ordered list of items for one browsing session. Insertion
// order is preserved across mutations and persistence round trips.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Subtotal sums price times quantity over all lines. Plain float64
// arithmetic, no currency rounding.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount is the sum of all quantities, not the number of lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
