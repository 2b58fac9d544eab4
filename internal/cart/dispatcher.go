package cart

import (
	"context"
	"fmt"
	"strconv"

	"github.com/teamalhin-buss/ALH-perfume/internal/domain"
)

// Messages shown to the user after a successful mutation.
const (
	NoticeItemAdded   = "Item added to cart"
	NoticeItemRemoved = "Item removed from cart"
)

// IntentKind tags the well-defined set of UI intents the cart reacts to.
type IntentKind string

const (
	IntentAddItem        IntentKind = "add-item"
	IntentRemoveItem     IntentKind = "remove-item"
	IntentChangeQuantity IntentKind = "change-quantity"
	IntentClearCart      IntentKind = "clear-cart"
)

// Intent is a single user action aimed at the cart. Which fields are
// meaningful depends on Kind: Item for add-item, ItemID for remove-item and
// change-quantity, Quantity (raw user input, parsed here) for
// change-quantity.
type Intent struct {
	Kind     IntentKind
	Item     domain.CartItem
	ItemID   string
	Quantity string
}

// Result carries the cart after the intent was applied plus the transient
// notice to surface to the user, if any.
type Result struct {
	Cart   *domain.Cart
	Notice string
}

// Dispatcher is the single entry point for cart mutations. It routes each
// intent to the matching store operation, keeping the store itself free of
// any transport or rendering concerns.
type Dispatcher struct {
	store *Store
}

func NewDispatcher(store *Store) *Dispatcher {
	return &Dispatcher{store: store}
}

func (d *Dispatcher) Dispatch(ctx context.Context, sessionID string, intent Intent) (*Result, error) {
	switch intent.Kind {
	case IntentAddItem:
		cart, err := d.store.AddItem(ctx, sessionID, intent.Item)
		if err != nil {
			return nil, err
		}
		return &Result{Cart: cart, Notice: NoticeItemAdded}, nil

	case IntentRemoveItem:
		cart, err := d.store.RemoveItem(ctx, sessionID, intent.ItemID)
		if err != nil {
			return nil, err
		}
		return &Result{Cart: cart, Notice: NoticeItemRemoved}, nil

	case IntentChangeQuantity:
		quantity, err := strconv.Atoi(intent.Quantity)
		if err != nil {
			// Non-numeric input is a silent no-op, same as the quantity
			// stepper refusing the value.
			cart, loadErr := d.store.Get(ctx, sessionID)
			if loadErr != nil {
				return nil, loadErr
			}
			return &Result{Cart: cart}, nil
		}
		cart, err := d.store.UpdateQuantity(ctx, sessionID, intent.ItemID, quantity)
		if err != nil {
			return nil, err
		}
		return &Result{Cart: cart}, nil

	case IntentClearCart:
		cart, err := d.store.Clear(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return &Result{Cart: cart}, nil

	default:
		return nil, fmt.Errorf("unknown cart intent %q", intent.Kind)
	}
}
