package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// AddItemRequest adds quantity units of a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest sets the quantity of a cart line
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest places the cart. When PaymentMethod is set a pending
// payment for the order total is recorded with the order.
type CheckoutRequest struct {
	OrderID       *uuid.UUID `json:"order_id"`
	PaymentMethod string     `json:"payment_method" binding:"omitempty,payment_method"`
	TransactionID string     `json:"transaction_id" binding:"omitempty,max=100"`
}

// CreateOrderItemRequest is one line of a staff-created order
type CreateOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest is a staff-entered order
type CreateOrderRequest struct {
	CustomerID uuid.UUID                `json:"customer_id" binding:"required"`
	Items      []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Status     string                   `json:"status" binding:"omitempty,order_status"`
}

// UpdateStatusRequest sets an order status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,order_status"`
	CustomerID *uuid.UUID `form:"-"`
	ProductID  *uuid.UUID `form:"-"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by" binding:"omitempty,oneof=created_at total_amount status"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID         `json:"id"`
	ProductID   uuid.UUID         `json:"product_id"`
	ProductName string            `json:"product_name"`
	Quantity    int               `json:"quantity"`
	Price       valueobject.Money `json:"price"`
	Subtotal    valueobject.Money `json:"subtotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	CustomerID    uuid.UUID           `json:"customer_id"`
	Status        string              `json:"status"`
	TotalAmount   valueobject.Money   `json:"total_amount"`
	Items         []OrderItemResponse `json:"items"`
	ItemCount     int                 `json:"item_count"`
	TotalQuantity int                 `json:"total_quantity"`
	PlacedAt      *time.Time          `json:"placed_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Version       int                 `json:"version"`
}

// CartResponse is the customer's pending order. OrderID is nil while no
// cart has been created yet.
type CartResponse struct {
	OrderID       *uuid.UUID          `json:"order_id"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   valueobject.Money   `json:"total_amount"`
	ItemCount     int                 `json:"item_count"`
	TotalQuantity int                 `json:"total_quantity"`
}

// PaymentSummary describes a payment recorded at checkout
type PaymentSummary struct {
	ID            uuid.UUID         `json:"id"`
	Method        string            `json:"payment_method"`
	Amount        valueobject.Money `json:"amount"`
	Status        string            `json:"status"`
	TransactionID string            `json:"transaction_id,omitempty"`
}

// CheckoutResponse is the placed order and the optional payment
type CheckoutResponse struct {
	Order   OrderResponse   `json:"order"`
	Payment *PaymentSummary `json:"payment,omitempty"`
}

// StatusUpdateResponse reports the new status and whether the move
// followed the forward lifecycle
type StatusUpdateResponse struct {
	Order            OrderResponse `json:"order"`
	PreviousStatus   string        `json:"previous_status"`
	FollowsLifecycle bool          `json:"follows_lifecycle"`
}

// StatusSummaryResponse counts orders per status
type StatusSummaryResponse struct {
	Counts map[string]int64 `json:"counts"`
	Total  int64            `json:"total"`
}

func toItemResponses(items []order.Item) []OrderItemResponse {
	responses := make([]OrderItemResponse, len(items))
	for i, item := range items {
		responses[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal(),
		}
	}
	return responses
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		Status:        o.Status.String(),
		TotalAmount:   o.TotalAmount,
		Items:         toItemResponses(o.Items),
		ItemCount:     o.ItemCount(),
		TotalQuantity: o.TotalQuantity(),
		PlacedAt:      o.PlacedAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Version:       o.Version,
	}
}

// ToCartResponse converts a pending order to CartResponse; nil gives an
// empty cart
func ToCartResponse(o *order.Order) CartResponse {
	if o == nil {
		return CartResponse{
			Items:       []OrderItemResponse{},
			TotalAmount: valueobject.Zero(),
		}
	}
	id := o.ID
	return CartResponse{
		OrderID:       &id,
		Items:         toItemResponses(o.Items),
		TotalAmount:   o.TotalAmount,
		ItemCount:     o.ItemCount(),
		TotalQuantity: o.TotalQuantity(),
	}
}

func toPaymentSummary(p *payment.Payment) *PaymentSummary {
	if p == nil {
		return nil
	}
	return &PaymentSummary{
		ID:            p.ID,
		Method:        string(p.Method),
		Amount:        p.Amount,
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
	}
}
