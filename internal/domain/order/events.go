package order

import (
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// AggregateTypeOrder names the order aggregate in events
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCheckedOut    = "OrderCheckedOut"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// OrderCheckedOutEvent is published when a cart becomes a placed order
type OrderCheckedOutEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID         `json:"order_id"`
	CustomerID  uuid.UUID         `json:"customer_id"`
	TotalAmount valueobject.Money `json:"total_amount"`
	ItemCount   int               `json:"item_count"`
}

// NewOrderCheckedOutEvent creates a new OrderCheckedOutEvent
func NewOrderCheckedOutEvent(o *Order) *OrderCheckedOutEvent {
	return &OrderCheckedOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCheckedOut, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		TotalAmount:     o.TotalAmount,
		ItemCount:       len(o.Items),
	}
}

// OrderStatusChangedEvent is published when staff change an order's status
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID          uuid.UUID `json:"order_id"`
	OldStatus        Status    `json:"old_status"`
	NewStatus        Status    `json:"new_status"`
	FollowsLifecycle bool      `json:"follows_lifecycle"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, old Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:          o.ID,
		OldStatus:        old,
		NewStatus:        o.Status,
		FollowsLifecycle: old.CanTransitionTo(o.Status),
	}
}
