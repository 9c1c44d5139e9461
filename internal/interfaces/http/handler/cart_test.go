package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/shopdesk/backend/internal/application/order"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopdesk/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartRouter(cart *MockCartUseCase, customerID uuid.UUID) *gin.Engine {
	h := NewCartHandler(cart)
	r := gin.New()
	g := r.Group("/cart", asPrincipal(customerID, auth.RoleCustomer))
	g.GET("", h.Get)
	g.POST("/items", h.AddItem)
	g.PUT("/items/:item_id", h.UpdateItem)
	g.DELETE("/items/:item_id", h.RemoveItem)
	g.POST("/checkout", h.Checkout)
	return r
}

func TestCartHandler_GetEmptyCart(t *testing.T) {
	cart := new(MockCartUseCase)
	customerID := uuid.New()
	empty := orderapp.CartResponse{Items: []orderapp.OrderItemResponse{}, TotalAmount: valueobject.Zero()}
	cart.On("GetCart", mock.Anything, customerID).Return(&empty, nil)

	w := performRequest(newCartRouter(cart, customerID), http.MethodGet, "/cart", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"order_id":null`)
	cart.AssertExpectations(t)
}

func TestCartHandler_AddItem(t *testing.T) {
	cart := new(MockCartUseCase)
	customerID, productID := uuid.New(), uuid.New()
	cart.On("AddItem", mock.Anything, customerID, orderapp.AddItemRequest{ProductID: productID, Quantity: 2}).
		Return(&orderapp.CartResponse{ItemCount: 1, TotalQuantity: 2}, nil)
	router := newCartRouter(cart, customerID)

	w := performRequest(router, http.MethodPost, "/cart/items", map[string]any{"product_id": productID, "quantity": 2})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodPost, "/cart/items", map[string]any{"product_id": productID, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "quantity", decodeResponse(t, w).Error.Field)

	cart.AssertNumberOfCalls(t, "AddItem", 1)
}

func TestCartHandler_AddItem_StockExceeded(t *testing.T) {
	cart := new(MockCartUseCase)
	customerID, productID := uuid.New(), uuid.New()
	cart.On("AddItem", mock.Anything, customerID, mock.Anything).
		Return(nil, shared.NewStockInsufficientError("Lamp", 12, 3))

	w := performRequest(newCartRouter(cart, customerID), http.MethodPost, "/cart/items",
		map[string]any{"product_id": productID, "quantity": 12})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decodeResponse(t, w).Error.Message, "requested 12")
}

func TestCartHandler_UpdateAndRemoveItem(t *testing.T) {
	cart := new(MockCartUseCase)
	customerID, itemID := uuid.New(), uuid.New()
	cart.On("UpdateItem", mock.Anything, customerID, itemID, orderapp.UpdateItemRequest{Quantity: 4}).
		Return(&orderapp.CartResponse{TotalQuantity: 4}, nil)
	cart.On("RemoveItem", mock.Anything, customerID, itemID).
		Return(nil, shared.NewNotFoundError("Cart item", itemID))
	router := newCartRouter(cart, customerID)

	w := performRequest(router, http.MethodPut, "/cart/items/"+itemID.String(), map[string]any{"quantity": 4})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodDelete, "/cart/items/"+itemID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, http.MethodDelete, "/cart/items/nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	cart.AssertExpectations(t)
}

func TestCartHandler_Checkout(t *testing.T) {
	t.Run("without body", func(t *testing.T) {
		cart := new(MockCartUseCase)
		customerID := uuid.New()
		cart.On("Checkout", mock.Anything, customerID, orderapp.CheckoutRequest{}).
			Return(&orderapp.CheckoutResponse{Order: orderapp.OrderResponse{Status: "processing"}}, nil)

		w := performRequest(newCartRouter(cart, customerID), http.MethodPost, "/cart/checkout", nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"processing"`)
	})

	t.Run("with payment", func(t *testing.T) {
		cart := new(MockCartUseCase)
		customerID := uuid.New()
		req := orderapp.CheckoutRequest{PaymentMethod: "paypal", TransactionID: "PP-1"}
		cart.On("Checkout", mock.Anything, customerID, req).
			Return(&orderapp.CheckoutResponse{Payment: &orderapp.PaymentSummary{Method: "paypal"}}, nil)

		w := performRequest(newCartRouter(cart, customerID), http.MethodPost, "/cart/checkout",
			map[string]any{"payment_method": "paypal", "transaction_id": "PP-1"})

		assert.Equal(t, http.StatusCreated, w.Code)
		cart.AssertExpectations(t)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		cart := new(MockCartUseCase)
		w := performRequest(newCartRouter(cart, uuid.New()), http.MethodPost, "/cart/checkout",
			map[string]any{"payment_method": "barter"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "payment_method", decodeResponse(t, w).Error.Field)
	})

	t.Run("empty cart", func(t *testing.T) {
		cart := new(MockCartUseCase)
		customerID := uuid.New()
		cart.On("Checkout", mock.Anything, customerID, orderapp.CheckoutRequest{}).
			Return(nil, shared.NewValidationError("EMPTY_CART", "Cart is empty"))

		w := performRequest(newCartRouter(cart, customerID), http.MethodPost, "/cart/checkout", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "EMPTY_CART", decodeResponse(t, w).Error.Code)
	})
}
