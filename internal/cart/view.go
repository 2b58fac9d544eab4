package cart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teamalhin-buss/ALH-perfume/internal/domain"
)

// Row is the view projection of one cart line: everything the item row in
// the cart panel needs, with prices pre-formatted.
type Row struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	Size         string `json:"size,omitempty"`
	Color        string `json:"color,omitempty"`
	UnitPrice    string `json:"unitPrice"`
	Quantity     int    `json:"quantity"`
	LineTotal    string `json:"lineTotal"`
	CanDecrement bool   `json:"canDecrement"`
}

// View is a full redraw of the cart: no diffing, every render projects the
// whole store state.
type View struct {
	Empty       bool   `json:"empty"`
	Placeholder string `json:"placeholder,omitempty"`
	Rows        []Row  `json:"rows"`
	ItemCount   int    `json:"itemCount"`
	CountLabel  string `json:"countLabel"`
	Subtotal    string `json:"subtotal"`
}

// Render projects the cart into its view. Pure function of the cart state.
func Render(c *domain.Cart) View {
	count := c.ItemCount()
	view := View{
		ItemCount:  count,
		CountLabel: countLabel(count),
		Subtotal:   FormatCurrency(c.Subtotal()),
	}

	if len(c.Items) == 0 {
		view.Empty = true
		view.Placeholder = "Your bag is empty"
		return view
	}

	view.Rows = make([]Row, 0, len(c.Items))
	for _, item := range c.Items {
		view.Rows = append(view.Rows, Row{
			ID:           item.ID,
			Name:         item.Name,
			Image:        item.Image,
			Size:         item.Size,
			Color:        item.Color,
			UnitPrice:    FormatCurrency(item.Price),
			Quantity:     item.Quantity,
			LineTotal:    FormatCurrency(item.Price * float64(item.Quantity)),
			CanDecrement: item.Quantity > 1,
		})
	}
	return view
}

func countLabel(count int) string {
	if count == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", count)
}

// FormatCurrency renders an amount as rupees with two decimals and comma
// grouping, e.g. 1234.5 -> "₹1,234.50".
func FormatCurrency(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	b.WriteString("₹")
	n := len(intPart)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 && intPart[i-1] != '-' {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteString(frac)
	return b.String()
}
