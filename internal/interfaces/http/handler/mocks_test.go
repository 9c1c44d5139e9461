package handler

import (
	"context"

	"github.com/google/uuid"
	catalogapp "github.com/shopdesk/backend/internal/application/catalog"
	customerapp "github.com/shopdesk/backend/internal/application/customer"
	"github.com/shopdesk/backend/internal/application/identity"
	orderapp "github.com/shopdesk/backend/internal/application/order"
	paymentapp "github.com/shopdesk/backend/internal/application/payment"
	reportapp "github.com/shopdesk/backend/internal/application/report"
	reviewapp "github.com/shopdesk/backend/internal/application/review"
	"github.com/stretchr/testify/mock"
)

// firstAs returns the first mocked return value as T, or the zero value
func firstAs[T any](args mock.Arguments) T {
	var zero T
	if v, ok := args.Get(0).(T); ok {
		return v
	}
	return zero
}

type MockAuthUseCase struct{ mock.Mock }

func (m *MockAuthUseCase) StaffLogin(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error) {
	args := m.Called(ctx, input)
	return firstAs[*identity.LoginResult](args), args.Error(1)
}

func (m *MockAuthUseCase) CustomerLogin(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error) {
	args := m.Called(ctx, input)
	return firstAs[*identity.LoginResult](args), args.Error(1)
}

func (m *MockAuthUseCase) CustomerSignup(ctx context.Context, req customerapp.CreateCustomerRequest) (*identity.LoginResult, error) {
	args := m.Called(ctx, req)
	return firstAs[*identity.LoginResult](args), args.Error(1)
}

func (m *MockAuthUseCase) RefreshToken(ctx context.Context, input identity.RefreshTokenInput) (*identity.LoginResult, error) {
	args := m.Called(ctx, input)
	return firstAs[*identity.LoginResult](args), args.Error(1)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, input identity.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthUseCase) ChangePassword(ctx context.Context, input identity.ChangePasswordInput) error {
	return m.Called(ctx, input).Error(0)
}

type MockCategoryUseCase struct{ mock.Mock }

func (m *MockCategoryUseCase) Create(ctx context.Context, req catalogapp.CreateCategoryRequest) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, req)
	return firstAs[*catalogapp.CategoryResponse](args), args.Error(1)
}

func (m *MockCategoryUseCase) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, id)
	return firstAs[*catalogapp.CategoryResponse](args), args.Error(1)
}

func (m *MockCategoryUseCase) List(ctx context.Context, filter catalogapp.CategoryListFilter) ([]catalogapp.CategoryResponse, int64, error) {
	args := m.Called(ctx, filter)
	return firstAs[[]catalogapp.CategoryResponse](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryUseCase) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateCategoryRequest) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, id, req)
	return firstAs[*catalogapp.CategoryResponse](args), args.Error(1)
}

func (m *MockCategoryUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockProductUseCase struct{ mock.Mock }

func (m *MockProductUseCase) Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, req)
	return firstAs[*catalogapp.ProductResponse](args), args.Error(1)
}

func (m *MockProductUseCase) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id)
	return firstAs[*catalogapp.ProductResponse](args), args.Error(1)
}

func (m *MockProductUseCase) GetActiveByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id)
	return firstAs[*catalogapp.ProductResponse](args), args.Error(1)
}

func (m *MockProductUseCase) List(ctx context.Context, filter catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error) {
	args := m.Called(ctx, filter)
	return firstAs[[]catalogapp.ProductResponse](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductUseCase) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id, req)
	return firstAs[*catalogapp.ProductResponse](args), args.Error(1)
}

func (m *MockProductUseCase) UpdateStock(ctx context.Context, id uuid.UUID, req catalogapp.UpdateStockRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id, req)
	return firstAs[*catalogapp.ProductResponse](args), args.Error(1)
}

func (m *MockProductUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCustomerUseCase struct{ mock.Mock }

func (m *MockCustomerUseCase) Register(ctx context.Context, req customerapp.CreateCustomerRequest) (*customerapp.CustomerResponse, error) {
	args := m.Called(ctx, req)
	return firstAs[*customerapp.CustomerResponse](args), args.Error(1)
}

func (m *MockCustomerUseCase) GetByID(ctx context.Context, id uuid.UUID) (*customerapp.CustomerResponse, error) {
	args := m.Called(ctx, id)
	return firstAs[*customerapp.CustomerResponse](args), args.Error(1)
}

func (m *MockCustomerUseCase) List(ctx context.Context, filter customerapp.CustomerListFilter) ([]customerapp.CustomerResponse, int64, error) {
	args := m.Called(ctx, filter)
	return firstAs[[]customerapp.CustomerResponse](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerUseCase) Update(ctx context.Context, id uuid.UUID, req customerapp.UpdateCustomerRequest) (*customerapp.CustomerResponse, error) {
	args := m.Called(ctx, id, req)
	return firstAs[*customerapp.CustomerResponse](args), args.Error(1)
}

func (m *MockCustomerUseCase) SetActive(ctx context.Context, id uuid.UUID, active bool) (*customerapp.CustomerResponse, error) {
	args := m.Called(ctx, id, active)
	return firstAs[*customerapp.CustomerResponse](args), args.Error(1)
}

func (m *MockCustomerUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCartUseCase struct{ mock.Mock }

func (m *MockCartUseCase) GetCart(ctx context.Context, customerID uuid.UUID) (*orderapp.CartResponse, error) {
	args := m.Called(ctx, customerID)
	return firstAs[*orderapp.CartResponse](args), args.Error(1)
}

func (m *MockCartUseCase) AddItem(ctx context.Context, customerID uuid.UUID, req orderapp.AddItemRequest) (*orderapp.CartResponse, error) {
	args := m.Called(ctx, customerID, req)
	return firstAs[*orderapp.CartResponse](args), args.Error(1)
}

func (m *MockCartUseCase) UpdateItem(ctx context.Context, customerID, itemID uuid.UUID, req orderapp.UpdateItemRequest) (*orderapp.CartResponse, error) {
	args := m.Called(ctx, customerID, itemID, req)
	return firstAs[*orderapp.CartResponse](args), args.Error(1)
}

func (m *MockCartUseCase) RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) (*orderapp.CartResponse, error) {
	args := m.Called(ctx, customerID, itemID)
	return firstAs[*orderapp.CartResponse](args), args.Error(1)
}

func (m *MockCartUseCase) Checkout(ctx context.Context, customerID uuid.UUID, req orderapp.CheckoutRequest) (*orderapp.CheckoutResponse, error) {
	args := m.Called(ctx, customerID, req)
	return firstAs[*orderapp.CheckoutResponse](args), args.Error(1)
}

type MockOrderUseCase struct{ mock.Mock }

func (m *MockOrderUseCase) GetByID(ctx context.Context, id uuid.UUID) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, id)
	return firstAs[*orderapp.OrderResponse](args), args.Error(1)
}

func (m *MockOrderUseCase) GetForCustomer(ctx context.Context, customerID, id uuid.UUID) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, customerID, id)
	return firstAs[*orderapp.OrderResponse](args), args.Error(1)
}

func (m *MockOrderUseCase) List(ctx context.Context, filter orderapp.OrderListFilter) ([]orderapp.OrderResponse, int64, error) {
	args := m.Called(ctx, filter)
	return firstAs[[]orderapp.OrderResponse](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderUseCase) ListForCustomer(ctx context.Context, customerID uuid.UUID, filter orderapp.OrderListFilter) ([]orderapp.OrderResponse, int64, error) {
	args := m.Called(ctx, customerID, filter)
	return firstAs[[]orderapp.OrderResponse](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderUseCase) StatusSummary(ctx context.Context) (*orderapp.StatusSummaryResponse, error) {
	args := m.Called(ctx)
	return firstAs[*orderapp.StatusSummaryResponse](args), args.Error(1)
}

func (m *MockOrderUseCase) Create(ctx context.Context, req orderapp.CreateOrderRequest) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, req)
	return firstAs[*orderapp.OrderResponse](args), args.Error(1)
}

func (m *MockOrderUseCase) UpdateStatus(ctx context.Context, id uuid.UUID, req orderapp.UpdateStatusRequest) (*orderapp.StatusUpdateResponse, error) {
	args := m.Called(ctx, id, req)
	return firstAs[*orderapp.StatusUpdateResponse](args), args.Error(1)
}

type MockPaymentUseCase struct{ mock.Mock }

func (m *MockPaymentUseCase) Record(ctx context.Context, req paymentapp.RecordPaymentRequest) (*paymentapp.PaymentResponse, error) {
	args := m.Called(ctx, req)
	return firstAs[*paymentapp.PaymentResponse](args), args.Error(1)
}

func (m *MockPaymentUseCase) UpdateStatus(ctx context.Context, id uuid.UUID, req paymentapp.UpdatePaymentStatusRequest) (*paymentapp.PaymentResponse, error) {
	args := m.Called(ctx, id, req)
	return firstAs[*paymentapp.PaymentResponse](args), args.Error(1)
}

func (m *MockPaymentUseCase) GetByID(ctx context.Context, id uuid.UUID) (*paymentapp.PaymentResponse, error) {
	args := m.Called(ctx, id)
	return firstAs[*paymentapp.PaymentResponse](args), args.Error(1)
}

func (m *MockPaymentUseCase) List(ctx context.Context, filter paymentapp.PaymentListFilter) (*paymentapp.PaymentListResponse, error) {
	args := m.Called(ctx, filter)
	return firstAs[*paymentapp.PaymentListResponse](args), args.Error(1)
}

func (m *MockPaymentUseCase) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]paymentapp.PaymentResponse, error) {
	args := m.Called(ctx, orderID)
	return firstAs[[]paymentapp.PaymentResponse](args), args.Error(1)
}

type MockReviewUseCase struct{ mock.Mock }

func (m *MockReviewUseCase) Submit(ctx context.Context, customerID, productID uuid.UUID, req reviewapp.SubmitReviewRequest) (*reviewapp.ReviewResponse, error) {
	args := m.Called(ctx, customerID, productID, req)
	return firstAs[*reviewapp.ReviewResponse](args), args.Error(1)
}

func (m *MockReviewUseCase) ListByProduct(ctx context.Context, productID uuid.UUID, filter reviewapp.ReviewListFilter) (*reviewapp.ProductReviewsResponse, error) {
	args := m.Called(ctx, productID, filter)
	return firstAs[*reviewapp.ProductReviewsResponse](args), args.Error(1)
}

type MockDashboardUseCase struct{ mock.Mock }

func (m *MockDashboardUseCase) Overview(ctx context.Context) (*reportapp.OverviewResponse, error) {
	args := m.Called(ctx)
	return firstAs[*reportapp.OverviewResponse](args), args.Error(1)
}

func (m *MockDashboardUseCase) Analytics(ctx context.Context) (*reportapp.AnalyticsResponse, error) {
	args := m.Called(ctx)
	return firstAs[*reportapp.AnalyticsResponse](args), args.Error(1)
}

func (m *MockDashboardUseCase) Inventory(ctx context.Context) (*reportapp.InventoryResponse, error) {
	args := m.Called(ctx)
	return firstAs[*reportapp.InventoryResponse](args), args.Error(1)
}

type MockExportUseCase struct{ mock.Mock }

func (m *MockExportUseCase) ExportOrders(ctx context.Context, filter orderapp.OrderListFilter, req reportapp.ExportRequest) (*reportapp.ExportResult, error) {
	args := m.Called(ctx, filter, req)
	return firstAs[*reportapp.ExportResult](args), args.Error(1)
}

func (m *MockExportUseCase) ExportPayments(ctx context.Context, filter paymentapp.PaymentListFilter, req reportapp.ExportRequest) (*reportapp.ExportResult, error) {
	args := m.Called(ctx, filter, req)
	return firstAs[*reportapp.ExportResult](args), args.Error(1)
}
