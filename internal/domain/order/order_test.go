package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCart(t *testing.T) *Order {
	t.Helper()
	o, err := NewCart(uuid.New())
	require.NoError(t, err)
	return o
}

func snapshot(name, price string, stock int) ProductSnapshot {
	p, _ := valueobject.NewMoneyFromString(price)
	return ProductSnapshot{ID: uuid.New(), Name: name, Price: p, StockQuantity: stock, IsActive: true}
}

func TestNewCart(t *testing.T) {
	o := newTestCart(t)
	assert.Equal(t, StatusPending, o.Status)
	assert.True(t, o.IsCart())
	assert.Empty(t, o.Items)
	assert.True(t, o.TotalAmount.IsZero())
	assert.Nil(t, o.PlacedAt)

	_, err := NewCart(uuid.Nil)
	assert.True(t, shared.IsValidation(err))
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("adds a new line with captured price", func(t *testing.T) {
		o := newTestCart(t)
		p := snapshot("Yoga Mat Pro", "12.50", 10)

		item, err := o.AddItem(p, 2)
		require.NoError(t, err)
		assert.Equal(t, p.ID, item.ProductID)
		assert.Equal(t, "Yoga Mat Pro", item.ProductName)
		assert.Equal(t, "12.50", item.Price.String())
		assert.Equal(t, "25.00", o.TotalAmount.String())
	})

	t.Run("increments an existing line", func(t *testing.T) {
		o := newTestCart(t)
		p := snapshot("Tennis Racket", "89.99", 12)

		_, err := o.AddItem(p, 1)
		require.NoError(t, err)
		_, err = o.AddItem(p, 2)
		require.NoError(t, err)

		require.Len(t, o.Items, 1)
		assert.Equal(t, 3, o.Items[0].Quantity)
		assert.Equal(t, "269.97", o.TotalAmount.String())
	})

	t.Run("rejects quantity above stock", func(t *testing.T) {
		o := newTestCart(t)
		p := snapshot("Winter Jacket", "149.99", 3)

		_, err := o.AddItem(p, 5)
		require.Error(t, err)
		assert.True(t, shared.IsStockInsufficient(err))
		assert.Empty(t, o.Items)
		assert.True(t, o.TotalAmount.IsZero())
	})

	t.Run("checks the resulting line quantity against stock", func(t *testing.T) {
		o := newTestCart(t)
		p := snapshot("Basketball Official", "24.99", 2)

		_, err := o.AddItem(p, 2)
		require.NoError(t, err)
		_, err = o.AddItem(p, 1)
		assert.True(t, shared.IsStockInsufficient(err))
		assert.Equal(t, 2, o.Items[0].Quantity)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		o := newTestCart(t)
		_, err := o.AddItem(snapshot("X", "1.00", 5), 0)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects inactive product", func(t *testing.T) {
		o := newTestCart(t)
		p := snapshot("X", "1.00", 5)
		p.IsActive = false
		_, err := o.AddItem(p, 1)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects changes once checked out", func(t *testing.T) {
		o := newTestCart(t)
		_, err := o.AddItem(snapshot("X", "1.00", 5), 1)
		require.NoError(t, err)
		require.NoError(t, o.Checkout())

		_, err = o.AddItem(snapshot("Y", "1.00", 5), 1)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestOrder_PriceCapturedAtAdd(t *testing.T) {
	o := newTestCart(t)
	p := snapshot("Yoga Mat Pro", "12.50", 10)
	_, err := o.AddItem(p, 2)
	require.NoError(t, err)

	// a later price change in the catalog does not touch the line
	p.Price = valueobject.NewMoneyFromFloat(10)
	assert.Equal(t, "12.50", o.Items[0].Price.String())
	assert.Equal(t, "25.00", o.TotalAmount.String())

	// adding more units keeps the original line price
	_, err = o.AddItem(p, 1)
	require.NoError(t, err)
	assert.Equal(t, "37.50", o.TotalAmount.String())
}

func TestOrder_UpdateItemQuantity(t *testing.T) {
	o := newTestCart(t)
	item, err := o.AddItem(snapshot("Yoga Mat Pro", "10.00", 10), 2)
	require.NoError(t, err)
	itemID := item.ID

	require.NoError(t, o.UpdateItemQuantity(itemID, 4, 10))
	assert.Equal(t, "40.00", o.TotalAmount.String())

	err = o.UpdateItemQuantity(itemID, 11, 10)
	assert.True(t, shared.IsStockInsufficient(err))
	assert.Equal(t, 4, o.GetItem(itemID).Quantity)

	err = o.UpdateItemQuantity(itemID, 0, 10)
	assert.True(t, shared.IsValidation(err))

	err = o.UpdateItemQuantity(uuid.New(), 1, 10)
	assert.True(t, shared.IsNotFound(err))
}

func TestOrder_RemoveItem(t *testing.T) {
	o := newTestCart(t)
	a, err := o.AddItem(snapshot("A", "12.50", 10), 2)
	require.NoError(t, err)
	aID := a.ID
	b, err := o.AddItem(snapshot("B", "5.00", 10), 1)
	require.NoError(t, err)
	bID := b.ID
	assert.Equal(t, "30.00", o.TotalAmount.String())

	require.NoError(t, o.RemoveItem(bID))
	assert.Equal(t, "25.00", o.TotalAmount.String())

	require.NoError(t, o.RemoveItem(aID))
	assert.Empty(t, o.Items)
	assert.True(t, o.TotalAmount.IsZero())

	assert.True(t, shared.IsNotFound(o.RemoveItem(aID)))
}

func TestOrder_TotalStaysConsistent(t *testing.T) {
	o := newTestCart(t)
	products := []ProductSnapshot{
		snapshot("A", "0.10", 100),
		snapshot("B", "0.20", 100),
		snapshot("C", "19.99", 100),
	}
	for i, p := range products {
		_, err := o.AddItem(p, i+1)
		require.NoError(t, err)
		assert.True(t, o.IsTotalConsistent())
	}
	assert.Equal(t, "60.47", o.TotalAmount.String())

	require.NoError(t, o.UpdateItemQuantity(o.Items[2].ID, 1, 100))
	assert.True(t, o.IsTotalConsistent())
	assert.Equal(t, "20.49", o.TotalAmount.String())
	assert.Equal(t, 4, o.TotalQuantity())
}

func TestOrder_Checkout(t *testing.T) {
	t.Run("moves a non-empty cart to processing", func(t *testing.T) {
		o := newTestCart(t)
		_, err := o.AddItem(snapshot("A", "10.00", 10), 1)
		require.NoError(t, err)

		require.NoError(t, o.Checkout())
		assert.Equal(t, StatusProcessing, o.Status)
		assert.NotNil(t, o.PlacedAt)

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderCheckedOut, events[0].EventType())
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		o := newTestCart(t)
		err := o.Checkout()
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_CART", domainErr.Code)
		assert.Equal(t, StatusPending, o.Status)
	})

	t.Run("rejects a second checkout", func(t *testing.T) {
		o := newTestCart(t)
		_, err := o.AddItem(snapshot("A", "10.00", 10), 1)
		require.NoError(t, err)
		require.NoError(t, o.Checkout())

		err = o.Checkout()
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("accepts any literal and reports lifecycle fit", func(t *testing.T) {
		o := newTestCart(t)
		require.NoError(t, o.ChangeStatus(StatusShipped))
		assert.Equal(t, StatusShipped, o.Status)
		assert.NotNil(t, o.PlacedAt)

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		changed := events[0].(*OrderStatusChangedEvent)
		assert.Equal(t, StatusPending, changed.OldStatus)
		assert.False(t, changed.FollowsLifecycle)

		require.NoError(t, o.ChangeStatus(StatusDelivered))
		changed = o.GetDomainEvents()[1].(*OrderStatusChangedEvent)
		assert.True(t, changed.FollowsLifecycle)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		o := newTestCart(t)
		require.NoError(t, o.ChangeStatus(StatusPending))
		assert.Empty(t, o.GetDomainEvents())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		o := newTestCart(t)
		err := o.ChangeStatus(Status("refunded"))
		assert.True(t, shared.IsValidation(err))
		assert.Equal(t, StatusPending, o.Status)
	})
}

func TestOrder_TwoLineScenario(t *testing.T) {
	o := newTestCart(t)
	productA := snapshot("A", "10.00", 10)
	productB := snapshot("B", "5.00", 10)

	_, err := o.AddItem(productA, 2)
	require.NoError(t, err)
	b, err := o.AddItem(productB, 1)
	require.NoError(t, err)
	bID := b.ID
	assert.Equal(t, "25.00", o.TotalAmount.String())

	require.NoError(t, o.RemoveItem(bID))
	assert.Equal(t, "20.00", o.TotalAmount.String())
}

func TestOrder_StockThreeQuantityFive(t *testing.T) {
	o := newTestCart(t)
	productA := snapshot("A", "10.00", 3)

	_, err := o.AddItem(productA, 5)
	require.Error(t, err)
	assert.True(t, shared.IsStockInsufficient(err))
	assert.Nil(t, o.GetItemByProduct(productA.ID))
	assert.Equal(t, 0, o.TotalQuantity())
}
