package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/teamalhin-buss/ALH-perfume/internal/domain"
	"github.com/teamalhin-buss/ALH-perfume/internal/storage"
)

// ErrInvalidItem is returned when an item is missing one of the required
// fields (id, name, price, image). The cart is left untouched.
var ErrInvalidItem = errors.New("invalid cart item")

// Notifier receives transient user-facing messages emitted by cart
// mutations. A nil notifier is a no-op.
type Notifier interface {
	Notify(sessionID, message string)
}

// Store holds the authoritative cart for each session. Every mutation is
// validated, applied in memory and persisted synchronously before the
// updated cart is returned, so there is never an unsaved mutation in flight.
type Store struct {
	snapshots storage.Snapshots
	notifier  Notifier
	sfg       singleflight.Group // dedupes concurrent loads per session
	now       func() time.Time
}

func NewStore(snapshots storage.Snapshots, notifier Notifier) *Store {
	return &Store{
		snapshots: snapshots,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Get returns the current cart for the session, restoring it from the
// persisted snapshot. A missing snapshot is an empty cart. A corrupt
// snapshot is reset to an empty cart which is immediately re-persisted to
// overwrite the bad value.
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		return s.load(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

func (s *Store) load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := s.snapshots.Load(ctx, cartKey(sessionID))
	if errors.Is(err, storage.ErrNotFound) {
		return &domain.Cart{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("corrupt cart snapshot for session %s, resetting: %v", sessionID, err)
		empty := &domain.Cart{}
		if saveErr := s.save(ctx, sessionID, empty); saveErr != nil {
			log.Printf("failed to overwrite corrupt cart snapshot: %v", saveErr)
		}
		return empty, nil
	}
	return &domain.Cart{Items: items}, nil
}

func (s *Store) save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	return s.snapshots.Save(ctx, cartKey(sessionID), data)
}

// AddItem appends a new line or, if an item with the same (id, size, color)
// already exists, increments its quantity. Incoming quantities below 1
// default to 1. AddedAt is set once on insertion and never touched again.
func (s *Store) AddItem(ctx context.Context, sessionID string, item domain.CartItem) (*domain.Cart, error) {
	if err := validateItem(item); err != nil {
		log.Printf("rejected cart item for session %s: %v", sessionID, err)
		return nil, err
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].SameVariant(item) {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		item.AddedAt = s.now()
		cart.Items = append(cart.Items, item)
	}

	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	s.notify(sessionID, NoticeItemAdded)
	return cart, nil
}

// RemoveItem deletes every line whose id matches, regardless of size or
// color. This intentionally matches on id alone while AddItem merges on the
// full variant key.
func (s *Store) RemoveItem(ctx context.Context, sessionID, itemID string) (*domain.Cart, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	s.notify(sessionID, NoticeItemRemoved)
	return cart, nil
}

// UpdateQuantity sets the quantity of the first line matching the id.
// Quantities below 1 and unknown ids are silent no-ops.
func (s *Store) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*domain.Cart, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return cart, nil
	}

	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			if err := s.save(ctx, sessionID, cart); err != nil {
				return nil, err
			}
			break
		}
	}
	return cart, nil
}

// Clear destroys the persisted cart for the session.
func (s *Store) Clear(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if err := s.snapshots.Delete(ctx, cartKey(sessionID)); err != nil {
		return nil, err
	}
	return &domain.Cart{}, nil
}

func (s *Store) notify(sessionID, message string) {
	if s.notifier != nil {
		s.notifier.Notify(sessionID, message)
	}
}

func validateItem(item domain.CartItem) error {
	if item.ID == "" {
		return fmt.Errorf("%w: missing field id", ErrInvalidItem)
	}
	if item.Name == "" {
		return fmt.Errorf("%w: missing field name", ErrInvalidItem)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidItem)
	}
	if item.Image == "" {
		return fmt.Errorf("%w: missing field image", ErrInvalidItem)
	}
	return nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
