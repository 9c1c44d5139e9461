package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, stock int) *Product {
	t.Helper()
	p, err := NewProduct("Laptop Ultra", "", valueobject.NewMoneyFromFloat(1299.99), stock, uuid.New())
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestNewProduct(t *testing.T) {
	categoryID := uuid.New()

	t.Run("creates product with valid inputs", func(t *testing.T) {
		p, err := NewProduct("  Smart Watch ", "desc", valueobject.NewMoneyFromFloat(299.99), 8, categoryID)
		require.NoError(t, err)

		assert.Equal(t, "Smart Watch", p.Name)
		assert.Equal(t, "299.99", p.Price.String())
		assert.Equal(t, 8, p.StockQuantity)
		assert.Equal(t, categoryID, p.CategoryID)
		assert.True(t, p.IsActive)
		assert.Equal(t, 1, p.GetVersion())

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())
	})

	tests := []struct {
		name     string
		pName    string
		price    valueobject.Money
		stock    int
		category uuid.UUID
		field    string
	}{
		{"empty name", "", valueobject.NewMoneyFromFloat(1), 1, categoryID, "name"},
		{"negative price", "X", valueobject.NewMoneyFromFloat(-1), 1, categoryID, "price"},
		{"negative stock", "X", valueobject.NewMoneyFromFloat(1), -1, categoryID, "stock_quantity"},
		{"missing category", "X", valueobject.NewMoneyFromFloat(1), 1, uuid.Nil, "category_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.pName, "", tt.price, tt.stock, tt.category)
			require.Error(t, err)
			assert.True(t, shared.IsValidation(err))

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.field, domainErr.Field)
		})
	}

	t.Run("zero price is allowed", func(t *testing.T) {
		_, err := NewProduct("Free sample", "", valueobject.Zero(), 0, categoryID)
		assert.NoError(t, err)
	})
}

func TestProduct_SetPrice(t *testing.T) {
	p := newTestProduct(t, 5)

	require.NoError(t, p.SetPrice(valueobject.NewMoneyFromFloat(999)))
	assert.Equal(t, "999.00", p.Price.String())
	assert.Equal(t, 2, p.GetVersion())
	require.Len(t, p.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeProductPriceChanged, p.GetDomainEvents()[0].EventType())

	t.Run("same price is a no-op", func(t *testing.T) {
		p.ClearDomainEvents()
		require.NoError(t, p.SetPrice(valueobject.NewMoneyFromFloat(999)))
		assert.Empty(t, p.GetDomainEvents())
	})

	t.Run("rejects negative price", func(t *testing.T) {
		err := p.SetPrice(valueobject.NewMoneyFromFloat(-5))
		assert.True(t, shared.IsValidation(err))
		assert.Equal(t, "999.00", p.Price.String())
	})
}

func TestProduct_Stock(t *testing.T) {
	p := newTestProduct(t, 3)

	assert.True(t, p.HasStock(3))
	assert.False(t, p.HasStock(4))
	assert.True(t, p.IsLowStock(DefaultLowStockThreshold))
	assert.False(t, p.IsOutOfStock())

	require.NoError(t, p.AdjustStock(-3))
	assert.True(t, p.IsOutOfStock())
	assert.False(t, p.IsLowStock(DefaultLowStockThreshold))

	err := p.AdjustStock(-1)
	assert.True(t, shared.IsStockInsufficient(err))
	assert.Equal(t, 0, p.StockQuantity)

	require.NoError(t, p.SetStock(25))
	assert.False(t, p.IsLowStock(DefaultLowStockThreshold))

	assert.True(t, shared.IsValidation(p.SetStock(-2)))
}

func TestProduct_ActivateDeactivate(t *testing.T) {
	p := newTestProduct(t, 1)

	p.Deactivate()
	assert.False(t, p.IsActive)
	v := p.GetVersion()

	p.Deactivate()
	assert.Equal(t, v, p.GetVersion())

	p.Activate()
	assert.True(t, p.IsActive)
}
