package payment

import (
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// AggregateTypePayment names the payment aggregate in events
const AggregateTypePayment = "Payment"

// Event type constants
const (
	EventTypePaymentRecorded      = "PaymentRecorded"
	EventTypePaymentStatusChanged = "PaymentStatusChanged"
)

// PaymentRecordedEvent is published when a payment row is created
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID         `json:"payment_id"`
	OrderID   uuid.UUID         `json:"order_id"`
	Method    Method            `json:"payment_method"`
	Amount    valueobject.Money `json:"amount"`
	Status    Status            `json:"status"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, AggregateTypePayment, p.ID),
		PaymentID:       p.ID,
		OrderID:         p.OrderID,
		Method:          p.Method,
		Amount:          p.Amount,
		Status:          p.Status,
	}
}

// PaymentStatusChangedEvent is published when staff change a payment status
type PaymentStatusChangedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID `json:"payment_id"`
	OrderID   uuid.UUID `json:"order_id"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
}

// NewPaymentStatusChangedEvent creates a new PaymentStatusChangedEvent
func NewPaymentStatusChangedEvent(p *Payment, old Status) *PaymentStatusChangedEvent {
	return &PaymentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentStatusChanged, AggregateTypePayment, p.ID),
		PaymentID:       p.ID,
		OrderID:         p.OrderID,
		OldStatus:       old,
		NewStatus:       p.Status,
	}
}
