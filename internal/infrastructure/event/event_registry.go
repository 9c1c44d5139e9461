package event

import (
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/payment"
)

// FeedEventTypes lists the events pushed to dashboard subscribers
var FeedEventTypes = []string{
	order.EventTypeOrderCheckedOut,
	order.EventTypeOrderStatusChanged,
	payment.EventTypePaymentRecorded,
	payment.EventTypePaymentStatusChanged,
	catalog.EventTypeProductCreated,
	catalog.EventTypeProductPriceChanged,
	catalog.EventTypeProductStockChanged,
}

// RegisterAllEvents registers every domain event type with serializer
func RegisterAllEvents(serializer *EventSerializer) {
	serializer.Register(order.EventTypeOrderCheckedOut, &order.OrderCheckedOutEvent{})
	serializer.Register(order.EventTypeOrderStatusChanged, &order.OrderStatusChangedEvent{})

	serializer.Register(payment.EventTypePaymentRecorded, &payment.PaymentRecordedEvent{})
	serializer.Register(payment.EventTypePaymentStatusChanged, &payment.PaymentStatusChangedEvent{})

	serializer.Register(catalog.EventTypeProductCreated, &catalog.ProductCreatedEvent{})
	serializer.Register(catalog.EventTypeProductPriceChanged, &catalog.ProductPriceChangedEvent{})
	serializer.Register(catalog.EventTypeProductStockChanged, &catalog.ProductStockChangedEvent{})
}
