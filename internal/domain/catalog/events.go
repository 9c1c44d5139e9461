package catalog

import (
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// AggregateTypeProduct names the product aggregate in events
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated      = "ProductCreated"
	EventTypeProductPriceChanged = "ProductPriceChanged"
	EventTypeProductStockChanged = "ProductStockChanged"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID         `json:"product_id"`
	Name       string            `json:"name"`
	Price      valueobject.Money `json:"price"`
	CategoryID uuid.UUID         `json:"category_id"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Name:            p.Name,
		Price:           p.Price,
		CategoryID:      p.CategoryID,
	}
}

// ProductPriceChangedEvent is published when the list price changes
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID         `json:"product_id"`
	OldPrice  valueobject.Money `json:"old_price"`
	NewPrice  valueobject.Money `json:"new_price"`
}

// NewProductPriceChangedEvent creates a new ProductPriceChangedEvent
func NewProductPriceChangedEvent(p *Product, old valueobject.Money) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		OldPrice:        old,
		NewPrice:        p.Price,
	}
}

// ProductStockChangedEvent is published when the recorded stock changes
type ProductStockChangedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
}

// NewProductStockChangedEvent creates a new ProductStockChangedEvent
func NewProductStockChangedEvent(p *Product, old int) *ProductStockChangedEvent {
	return &ProductStockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStockChanged, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		OldQuantity:     old,
		NewQuantity:     p.StockQuantity,
	}
}
