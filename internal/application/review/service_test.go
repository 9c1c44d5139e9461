package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/review"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]review.Review, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) Summarize(ctx context.Context, productID uuid.UUID) (review.Summary, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(review.Summary), args.Error(1)
}

func (m *MockReviewRepository) ExistsForCustomer(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, customerID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Coffee Maker", "", valueobject.NewMoneyFromCents(8999), 10, uuid.New())
	require.NoError(t, err)
	return p
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	t.Run("first review is saved", func(t *testing.T) {
		reviews, products := new(MockReviewRepository), new(MockProductRepository)
		service := NewService(reviews, products, nil)
		p := newProduct(t)
		products.On("FindByID", ctx, p.ID).Return(p, nil)
		reviews.On("ExistsForCustomer", ctx, customerID, p.ID).Return(false, nil)
		reviews.On("Save", ctx, mock.AnythingOfType("*review.Review")).Return(nil)

		result, err := service.Submit(ctx, customerID, p.ID, SubmitReviewRequest{Rating: 4, Comment: " Solid machine "})
		require.NoError(t, err)
		assert.Equal(t, 4, result.Rating)
		assert.Equal(t, "Solid machine", result.Comment)
		reviews.AssertExpectations(t)
	})

	t.Run("second review conflicts", func(t *testing.T) {
		reviews, products := new(MockReviewRepository), new(MockProductRepository)
		service := NewService(reviews, products, nil)
		p := newProduct(t)
		products.On("FindByID", ctx, p.ID).Return(p, nil)
		reviews.On("ExistsForCustomer", ctx, customerID, p.ID).Return(true, nil)

		_, err := service.Submit(ctx, customerID, p.ID, SubmitReviewRequest{Rating: 5})
		assert.True(t, shared.IsConflict(err))
		reviews.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("inactive product is hidden", func(t *testing.T) {
		reviews, products := new(MockReviewRepository), new(MockProductRepository)
		service := NewService(reviews, products, nil)
		p := newProduct(t)
		p.Deactivate()
		products.On("FindByID", ctx, p.ID).Return(p, nil)

		_, err := service.Submit(ctx, customerID, p.ID, SubmitReviewRequest{Rating: 5})
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("rating out of range", func(t *testing.T) {
		reviews, products := new(MockReviewRepository), new(MockProductRepository)
		service := NewService(reviews, products, nil)
		p := newProduct(t)
		products.On("FindByID", ctx, p.ID).Return(p, nil)
		reviews.On("ExistsForCustomer", ctx, customerID, p.ID).Return(false, nil)

		_, err := service.Submit(ctx, customerID, p.ID, SubmitReviewRequest{Rating: 6})
		assert.True(t, shared.IsValidation(err))
	})
}

func TestService_ListByProduct(t *testing.T) {
	ctx := context.Background()
	reviews, products := new(MockReviewRepository), new(MockProductRepository)
	service := NewService(reviews, products, nil)
	p := newProduct(t)

	r1, err := review.NewReview(uuid.New(), p.ID, 5, "Great")
	require.NoError(t, err)
	r2, err := review.NewReview(uuid.New(), p.ID, 4, "")
	require.NoError(t, err)

	products.On("FindByID", ctx, p.ID).Return(p, nil)
	reviews.On("FindByProduct", ctx, p.ID, mock.MatchedBy(func(f shared.Filter) bool { return f.Page == 1 })).
		Return([]review.Review{*r1, *r2}, nil)
	reviews.On("Summarize", ctx, p.ID).Return(review.Summary{ProductID: p.ID, ReviewCount: 3, AverageRating: 4.3333}, nil)

	result, err := service.ListByProduct(ctx, p.ID, ReviewListFilter{})
	require.NoError(t, err)
	assert.Len(t, result.Reviews, 2)
	assert.Equal(t, int64(3), result.ReviewCount)
	assert.InDelta(t, 4.33, result.AverageRating, 0.0001)
}
