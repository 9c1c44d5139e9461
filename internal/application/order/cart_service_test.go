package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/customer"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cartFixture struct {
	tx        *testTxManager
	customers *MockCustomerRepository
	products  *MockProductRepository
	orders    *MockOrderRepository
	payments  *MockPaymentRepository
	publisher *MockEventPublisher
	service   *CartService
	customer  *customer.Customer
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	f := &cartFixture{
		tx:        &testTxManager{},
		customers: new(MockCustomerRepository),
		products:  new(MockProductRepository),
		orders:    new(MockOrderRepository),
		payments:  new(MockPaymentRepository),
		publisher: new(MockEventPublisher),
	}
	f.service = NewCartService(f.tx, f.customers, f.products, f.orders, f.payments, nil)
	f.service.SetEventPublisher(f.publisher)

	// the hash is never checked here, so skip bcrypt
	f.customer = &customer.Customer{BaseAggregateRoot: shared.NewBaseAggregateRoot(), Username: "john_doe", IsActive: true}
	f.customers.On("FindByIDForUpdate", mock.Anything, f.customer.ID).Return(f.customer, nil)
	return f
}

func (f *cartFixture) product(t *testing.T, name, price string, stock int) *catalog.Product {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(price)
	require.NoError(t, err)
	p, err := catalog.NewProduct(name, "", m, stock, uuid.New())
	require.NoError(t, err)
	f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	return p
}

func (f *cartFixture) existingCart(t *testing.T) *order.Order {
	t.Helper()
	cart, err := order.NewCart(f.customer.ID)
	require.NoError(t, err)
	f.orders.On("FindPendingByCustomer", mock.Anything, f.customer.ID).Return(cart, nil)
	return cart
}

func TestCartService_GetCart_EmptyWithoutRow(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	f.orders.On("FindPendingByCustomer", ctx, f.customer.ID).Return(nil, shared.NewNotFoundError("order", "pending"))

	cart, err := f.service.GetCart(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Nil(t, cart.OrderID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "0.00", cart.TotalAmount.String())
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the cart lazily", func(t *testing.T) {
		f := newCartFixture(t)
		p := f.product(t, "Yoga Mat Pro", "29.99", 40)
		f.orders.On("FindPendingByCustomer", ctx, f.customer.ID).Return(nil, shared.NewNotFoundError("order", "pending"))
		f.orders.On("Save", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.CustomerID == f.customer.ID && o.Status == order.StatusPending && len(o.Items) == 1
		})).Return(nil)

		cart, err := f.service.AddItem(ctx, f.customer.ID, AddItemRequest{ProductID: p.ID, Quantity: 2})
		require.NoError(t, err)
		require.NotNil(t, cart.OrderID)
		assert.Equal(t, "59.98", cart.TotalAmount.String())
		assert.Equal(t, 1, f.tx.calls)
		f.orders.AssertExpectations(t)
	})

	t.Run("increments the existing line", func(t *testing.T) {
		f := newCartFixture(t)
		p := f.product(t, "Tennis Racket", "89.99", 12)
		cart := f.existingCart(t)
		f.orders.On("Save", ctx, cart).Return(nil)

		_, err := f.service.AddItem(ctx, f.customer.ID, AddItemRequest{ProductID: p.ID, Quantity: 1})
		require.NoError(t, err)
		result, err := f.service.AddItem(ctx, f.customer.ID, AddItemRequest{ProductID: p.ID, Quantity: 2})
		require.NoError(t, err)

		require.Len(t, result.Items, 1)
		assert.Equal(t, 3, result.Items[0].Quantity)
		assert.Equal(t, "269.97", result.TotalAmount.String())
	})

	t.Run("stock 3 quantity 5 leaves the cart unchanged", func(t *testing.T) {
		f := newCartFixture(t)
		p := f.product(t, "Winter Jacket", "149.99", 3)
		cart := f.existingCart(t)

		_, err := f.service.AddItem(ctx, f.customer.ID, AddItemRequest{ProductID: p.ID, Quantity: 5})
		require.Error(t, err)
		assert.True(t, shared.IsStockInsufficient(err))
		assert.Nil(t, cart.GetItemByProduct(p.ID))
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newCartFixture(t)
		id := uuid.New()
		f.products.On("FindByID", ctx, id).Return(nil, shared.NewNotFoundError("product", id))

		_, err := f.service.AddItem(ctx, f.customer.ID, AddItemRequest{ProductID: id, Quantity: 1})
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("inactive customer", func(t *testing.T) {
		f := newCartFixture(t)
		f.customer.IsActive = false
		p := f.product(t, "X", "1.00", 1)

		_, err := f.service.AddItem(ctx, f.customer.ID, AddItemRequest{ProductID: p.ID, Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestCartService_RemoveItem_TwoLineScenario(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture(t)
	productA := f.product(t, "A", "10.00", 10)
	productB := f.product(t, "B", "5.00", 10)
	f.existingCart(t)
	f.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

	_, err := f.service.AddItem(ctx, f.customer.ID, AddItemRequest{ProductID: productA.ID, Quantity: 2})
	require.NoError(t, err)
	cart, err := f.service.AddItem(ctx, f.customer.ID, AddItemRequest{ProductID: productB.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "25.00", cart.TotalAmount.String())

	var lineB uuid.UUID
	for _, item := range cart.Items {
		if item.ProductID == productB.ID {
			lineB = item.ID
		}
	}
	cart, err = f.service.RemoveItem(ctx, f.customer.ID, lineB)
	require.NoError(t, err)
	assert.Equal(t, "20.00", cart.TotalAmount.String())

	cart, err = f.service.RemoveItem(ctx, f.customer.ID, cart.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "0.00", cart.TotalAmount.String())
}

func TestCartService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture(t)
	p := f.product(t, "LED Desk Lamp", "39.99", 4)
	cart := f.existingCart(t)
	f.orders.On("Save", ctx, cart).Return(nil)

	result, err := f.service.AddItem(ctx, f.customer.ID, AddItemRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	itemID := result.Items[0].ID

	result, err = f.service.UpdateItem(ctx, f.customer.ID, itemID, UpdateItemRequest{Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, "159.96", result.TotalAmount.String())

	_, err = f.service.UpdateItem(ctx, f.customer.ID, itemID, UpdateItemRequest{Quantity: 5})
	assert.True(t, shared.IsStockInsufficient(err))

	_, err = f.service.UpdateItem(ctx, f.customer.ID, uuid.New(), UpdateItemRequest{Quantity: 1})
	assert.True(t, shared.IsNotFound(err))
}

func TestCartService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects when no cart exists", func(t *testing.T) {
		f := newCartFixture(t)
		f.orders.On("FindPendingByCustomer", ctx, f.customer.ID).Return(nil, shared.NewNotFoundError("order", "pending"))

		_, err := f.service.Checkout(ctx, f.customer.ID, CheckoutRequest{})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_CART", domainErr.Code)
	})

	t.Run("repeated checkout of a placed order is an invalid state", func(t *testing.T) {
		f := newCartFixture(t)
		placed, err := order.NewCart(f.customer.ID)
		require.NoError(t, err)
		_, err = placed.AddItem(order.ProductSnapshot{ID: uuid.New(), Name: "A", Price: valueobject.NewMoneyFromCents(1250), StockQuantity: 5, IsActive: true}, 1)
		require.NoError(t, err)
		require.NoError(t, placed.Checkout())
		placedAt := placed.PlacedAt
		f.orders.On("FindByID", ctx, placed.ID).Return(placed, nil)

		_, err = f.service.Checkout(ctx, f.customer.ID, CheckoutRequest{OrderID: &placed.ID})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ORDER_NOT_PENDING", domainErr.Code)
		assert.Equal(t, shared.KindInvalidState, domainErr.Kind)
		assert.Equal(t, order.StatusProcessing, placed.Status)
		assert.Same(t, placedAt, placed.PlacedAt)
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.orders.AssertNotCalled(t, "FindPendingByCustomer", mock.Anything, mock.Anything)
	})

	t.Run("order of another customer is not found", func(t *testing.T) {
		f := newCartFixture(t)
		foreign, err := order.NewCart(uuid.New())
		require.NoError(t, err)
		f.orders.On("FindByID", ctx, foreign.ID).Return(foreign, nil)

		_, err = f.service.Checkout(ctx, f.customer.ID, CheckoutRequest{OrderID: &foreign.ID})
		assert.True(t, shared.IsNotFound(err))
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty cart and keeps it pending", func(t *testing.T) {
		f := newCartFixture(t)
		cart := f.existingCart(t)

		_, err := f.service.Checkout(ctx, f.customer.ID, CheckoutRequest{})
		assert.True(t, shared.IsValidation(err))
		assert.Equal(t, order.StatusPending, cart.Status)
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("places the order and records a pending payment", func(t *testing.T) {
		f := newCartFixture(t)
		metrics := new(MockMetrics)
		f.service.SetMetrics(metrics)
		p := f.product(t, "A", "12.50", 10)
		cart := f.existingCart(t)
		_, err := cart.AddItem(order.ProductSnapshot{ID: p.ID, Name: p.Name, Price: p.Price, StockQuantity: 10, IsActive: true}, 2)
		require.NoError(t, err)

		f.orders.On("Save", ctx, cart).Return(nil)
		f.payments.On("Save", ctx, mock.MatchedBy(func(pay *payment.Payment) bool {
			return pay.OrderID == cart.ID && pay.Amount.String() == "25.00" && pay.Status == payment.StatusPending
		})).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Twice()
		metrics.On("RecordCheckout", ctx, mock.AnythingOfType("valueobject.Money"), 1).Return()

		result, err := f.service.Checkout(ctx, f.customer.ID, CheckoutRequest{PaymentMethod: "paypal", TransactionID: "TXN-1"})
		require.NoError(t, err)
		assert.Equal(t, "processing", result.Order.Status)
		assert.NotNil(t, result.Order.PlacedAt)
		require.NotNil(t, result.Payment)
		assert.Equal(t, "paypal", result.Payment.Method)
		assert.Equal(t, "TXN-1", result.Payment.TransactionID)
		assert.Equal(t, 1, f.tx.calls)
		f.payments.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
		metrics.AssertExpectations(t)
	})

	t.Run("payment conflict fails the whole checkout", func(t *testing.T) {
		f := newCartFixture(t)
		p := f.product(t, "A", "12.50", 10)
		cart := f.existingCart(t)
		_, err := cart.AddItem(order.ProductSnapshot{ID: p.ID, Name: p.Name, Price: p.Price, StockQuantity: 10, IsActive: true}, 1)
		require.NoError(t, err)

		f.orders.On("Save", ctx, cart).Return(nil)
		f.payments.On("Save", ctx, mock.Anything).Return(shared.NewConflictError("transaction_id", "Transaction ID already exists"))

		_, err = f.service.Checkout(ctx, f.customer.ID, CheckoutRequest{PaymentMethod: "credit_card", TransactionID: "TXN-1"})
		assert.True(t, shared.IsConflict(err))
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("checkout without payment", func(t *testing.T) {
		f := newCartFixture(t)
		p := f.product(t, "A", "12.50", 10)
		cart := f.existingCart(t)
		_, err := cart.AddItem(order.ProductSnapshot{ID: p.ID, Name: p.Name, Price: p.Price, StockQuantity: 10, IsActive: true}, 1)
		require.NoError(t, err)

		f.orders.On("Save", ctx, cart).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		result, err := f.service.Checkout(ctx, f.customer.ID, CheckoutRequest{})
		require.NoError(t, err)
		assert.Nil(t, result.Payment)
		f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
