package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() (*Dispatcher, *Store) {
	store, _, _ := newTestStore()
	return NewDispatcher(store), store
}

func TestDispatch_AddItem(t *testing.T) {
	d, _ := newTestDispatcher()

	result, err := d.Dispatch(context.Background(), "s1", Intent{
		Kind: IntentAddItem,
		Item: validItem("p1"),
	})
	require.NoError(t, err)
	require.Len(t, result.Cart.Items, 1)
	assert.Equal(t, NoticeItemAdded, result.Notice)
}

func TestDispatch_AddItem_InvalidItem(t *testing.T) {
	d, _ := newTestDispatcher()

	item := validItem("p1")
	item.Image = ""
	_, err := d.Dispatch(context.Background(), "s1", Intent{Kind: IntentAddItem, Item: item})
	require.ErrorIs(t, err, ErrInvalidItem)
}

func TestDispatch_RemoveItem(t *testing.T) {
	d, store := newTestDispatcher()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", validItem("p1"))
	require.NoError(t, err)

	result, err := d.Dispatch(ctx, "s1", Intent{Kind: IntentRemoveItem, ItemID: "p1"})
	require.NoError(t, err)
	assert.Empty(t, result.Cart.Items)
	assert.Equal(t, NoticeItemRemoved, result.Notice)
}

func TestDispatch_ChangeQuantity(t *testing.T) {
	d, store := newTestDispatcher()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", validItem("p1"))
	require.NoError(t, err)

	result, err := d.Dispatch(ctx, "s1", Intent{Kind: IntentChangeQuantity, ItemID: "p1", Quantity: "4"})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Cart.Items[0].Quantity)
	assert.Empty(t, result.Notice)
}

func TestDispatch_ChangeQuantity_NonNumericIsNoOp(t *testing.T) {
	d, store := newTestDispatcher()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", validItem("p1"))
	require.NoError(t, err)

	for _, raw := range []string{"abc", "", "1.5"} {
		result, err := d.Dispatch(ctx, "s1", Intent{Kind: IntentChangeQuantity, ItemID: "p1", Quantity: raw})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Cart.Items[0].Quantity, "quantity %q must not change the cart", raw)
	}
}

func TestDispatch_ChangeQuantity_ZeroIsNoOp(t *testing.T) {
	d, store := newTestDispatcher()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", validItem("p1"))
	require.NoError(t, err)

	result, err := d.Dispatch(ctx, "s1", Intent{Kind: IntentChangeQuantity, ItemID: "p1", Quantity: "0"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Cart.Items[0].Quantity)
}

func TestDispatch_ClearCart(t *testing.T) {
	d, store := newTestDispatcher()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", validItem("p1"))
	require.NoError(t, err)

	result, err := d.Dispatch(ctx, "s1", Intent{Kind: IntentClearCart})
	require.NoError(t, err)
	assert.Empty(t, result.Cart.Items)
}

func TestDispatch_UnknownIntent(t *testing.T) {
	d, _ := newTestDispatcher()

	_, err := d.Dispatch(context.Background(), "s1", Intent{Kind: "add-wishlist"})
	require.ErrorContains(t, err, "unknown cart intent")
}
