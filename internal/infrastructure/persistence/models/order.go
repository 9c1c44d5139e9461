package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	VersionedColumns
	CustomerID  uuid.UUID         `gorm:"type:uuid;not null;index:idx_orders_customer_status,priority:1"`
	Customer    *CustomerModel    `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	TotalAmount valueobject.Money `gorm:"type:decimal(10,2);not null"`
	Status      order.Status      `gorm:"type:varchar(20);not null;default:'pending';index:idx_orders_customer_status,priority:2"`
	PlacedAt    *time.Time
	Items       []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.Item, len(m.Items))
	for i := range m.Items {
		items[i] = m.Items[i].ToDomain()
	}
	return &order.Order{
		BaseAggregateRoot: m.Root(),
		CustomerID:        m.CustomerID,
		Items:             items,
		TotalAmount:       m.TotalAmount,
		Status:            m.Status,
		PlacedAt:          m.PlacedAt,
	}
}

// OrderModelFromDomain creates a persistence model, items included, from
// a domain Order aggregate.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		CustomerID:  o.CustomerID,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		PlacedAt:    o.PlacedAt,
		Items:       make([]OrderItemModel, len(o.Items)),
	}
	m.SetRoot(o.BaseAggregateRoot)
	for i, item := range o.Items {
		m.Items[i] = OrderItemModelFromDomain(o.ID, item)
	}
	return m
}

// OrderItemModel is the persistence model for an order line.
type OrderItemModel struct {
	EntityColumns
	OrderID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_product,priority:1"`
	ProductID   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_product,priority:2;index"`
	Product     *ProductModel     `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	ProductName string            `gorm:"type:varchar(200);not null"`
	Quantity    int               `gorm:"not null"`
	Price       valueobject.Money `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain order line.
func (m *OrderItemModel) ToDomain() order.Item {
	return order.Item{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// OrderItemModelFromDomain creates a persistence model for an order line
func OrderItemModelFromDomain(orderID uuid.UUID, item order.Item) OrderItemModel {
	m := OrderItemModel{
		OrderID:     orderID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		Price:       item.Price,
	}
	m.ID = item.ID
	m.CreatedAt = item.CreatedAt
	m.UpdatedAt = item.UpdatedAt
	return m
}
