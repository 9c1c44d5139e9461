package payment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]payment.Payment, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) SumAmount(ctx context.Context, filter shared.Filter) (valueobject.Money, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockPaymentRepository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindPendingByCustomer(ctx context.Context, customerID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[order.Status]int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordPayment(ctx context.Context, method string, amount valueobject.Money) {
	m.Called(ctx, method, amount)
}

func orderTotaling(t *testing.T, cents int64) *order.Order {
	t.Helper()
	o, err := order.NewCart(uuid.New())
	require.NoError(t, err)
	_, err = o.AddItem(order.ProductSnapshot{
		ID:            uuid.New(),
		Name:          "Running Shoes",
		Price:         valueobject.NewMoneyFromCents(cents),
		StockQuantity: 5,
		IsActive:      true,
	}, 1)
	require.NoError(t, err)
	require.NoError(t, o.Checkout())
	return o
}

func setupService() (*Service, *MockPaymentRepository, *MockOrderRepository, *MockEventPublisher) {
	payments := new(MockPaymentRepository)
	orders := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	service := NewService(passthroughTx{}, payments, orders, nil)
	service.SetEventPublisher(publisher)
	return service, payments, orders, publisher
}

func TestService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to the order total", func(t *testing.T) {
		service, payments, orders, publisher := setupService()
		metrics := new(MockMetrics)
		service.SetMetrics(metrics)
		o := orderTotaling(t, 2500)
		orders.On("FindByID", ctx, o.ID).Return(o, nil)
		payments.On("ExistsByTransactionID", ctx, "TXN-42").Return(false, nil)
		payments.On("Save", ctx, mock.AnythingOfType("*payment.Payment")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()
		metrics.On("RecordPayment", ctx, "credit_card", mock.AnythingOfType("valueobject.Money")).Return()

		result, err := service.Record(ctx, RecordPaymentRequest{
			OrderID:       o.ID,
			PaymentMethod: "credit_card",
			TransactionID: " TXN-42 ",
		})
		require.NoError(t, err)
		assert.Equal(t, "25.00", result.Amount.String())
		assert.Equal(t, "pending", result.Status)
		assert.Equal(t, "TXN-42", result.TransactionID)
		assert.Equal(t, "Credit Card", result.MethodLabel)
		require.NotNil(t, result.MatchesOrder)
		assert.True(t, *result.MatchesOrder)
		metrics.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("operator override is kept as entered", func(t *testing.T) {
		service, payments, orders, publisher := setupService()
		o := orderTotaling(t, 2500)
		orders.On("FindByID", ctx, o.ID).Return(o, nil)
		payments.On("Save", ctx, mock.Anything).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		amount := decimal.RequireFromString("10.00")
		result, err := service.Record(ctx, RecordPaymentRequest{
			OrderID:       o.ID,
			PaymentMethod: "bank_transfer",
			Amount:        &amount,
			Status:        "completed",
		})
		require.NoError(t, err)
		assert.Equal(t, "10.00", result.Amount.String())
		assert.Equal(t, "completed", result.Status)
		assert.False(t, *result.MatchesOrder)
		payments.AssertNotCalled(t, "ExistsByTransactionID", mock.Anything, mock.Anything)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		service, payments, orders, _ := setupService()
		o := orderTotaling(t, 2500)
		orders.On("FindByID", ctx, o.ID).Return(o, nil)

		zero := decimal.Zero
		_, err := service.Record(ctx, RecordPaymentRequest{OrderID: o.ID, PaymentMethod: "paypal", Amount: &zero})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
		assert.Equal(t, "amount", domainErr.Field)
		payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate transaction id", func(t *testing.T) {
		service, payments, orders, publisher := setupService()
		o := orderTotaling(t, 2500)
		orders.On("FindByID", ctx, o.ID).Return(o, nil)
		payments.On("ExistsByTransactionID", ctx, "TXN-1").Return(true, nil)

		_, err := service.Record(ctx, RecordPaymentRequest{OrderID: o.ID, PaymentMethod: "paypal", TransactionID: "TXN-1"})
		require.Error(t, err)
		assert.True(t, shared.IsConflict(err))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "transaction_id", domainErr.Field)
		payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("unknown order", func(t *testing.T) {
		service, _, orders, _ := setupService()
		id := uuid.New()
		orders.On("FindByID", ctx, id).Return(nil, shared.NewNotFoundError("order", id))

		_, err := service.Record(ctx, RecordPaymentRequest{OrderID: id, PaymentMethod: "paypal"})
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("unknown method is rejected before loading", func(t *testing.T) {
		service, _, orders, _ := setupService()

		_, err := service.Record(ctx, RecordPaymentRequest{OrderID: uuid.New(), PaymentMethod: "cash"})
		assert.True(t, shared.IsValidation(err))
		orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	newPayment := func(t *testing.T, status payment.Status) *payment.Payment {
		p, err := payment.Record(payment.RecordInput{
			OrderID: uuid.New(),
			Method:  payment.MethodPayPal,
			Status:  status,
		}, valueobject.NewMoneyFromCents(1000))
		require.NoError(t, err)
		p.ClearDomainEvents()
		return p
	}

	t.Run("any status may follow any other", func(t *testing.T) {
		service, payments, _, publisher := setupService()
		p := newPayment(t, payment.StatusRefunded)
		payments.On("FindByID", ctx, p.ID).Return(p, nil)
		payments.On("Save", ctx, p).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		result, err := service.UpdateStatus(ctx, p.ID, UpdatePaymentStatusRequest{Status: "pending"})
		require.NoError(t, err)
		assert.Equal(t, "pending", result.Status)
		assert.Equal(t, "refunded", result.PreviousStatus)
		assert.Equal(t, 2, result.Version)
	})

	t.Run("unknown literal", func(t *testing.T) {
		service, payments, _, _ := setupService()

		_, err := service.UpdateStatus(ctx, uuid.New(), UpdatePaymentStatusRequest{Status: "chargeback"})
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
		payments.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	service, payments, _, _ := setupService()

	p, err := payment.Record(payment.RecordInput{OrderID: uuid.New(), Method: payment.MethodCreditCard}, valueobject.NewMoneyFromCents(4999))
	require.NoError(t, err)

	byStatus := mock.MatchedBy(func(f shared.Filter) bool { return f.Filters["status"] == "pending" })
	payments.On("FindAll", ctx, byStatus).Return([]payment.Payment{*p}, nil)
	payments.On("Count", ctx, byStatus).Return(int64(1), nil)
	payments.On("SumAmount", ctx, byStatus).Return(valueobject.NewMoneyFromCents(4999), nil)

	result, err := service.List(ctx, PaymentListFilter{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, "49.99", result.TotalAmount.String())
	require.Len(t, result.Payments, 1)
	assert.Equal(t, "credit_card", result.Payments[0].PaymentMethod)
}

func TestService_ListByOrder(t *testing.T) {
	ctx := context.Background()
	service, payments, orders, _ := setupService()

	o := orderTotaling(t, 1000)
	orders.On("FindByID", ctx, o.ID).Return(o, nil)
	payments.On("FindByOrder", ctx, o.ID).Return([]payment.Payment{}, nil)

	result, err := service.ListByOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, result)

	missing := uuid.New()
	orders.On("FindByID", ctx, missing).Return(nil, shared.NewNotFoundError("order", missing))
	_, err = service.ListByOrder(ctx, missing)
	assert.True(t, shared.IsNotFound(err))
}
