package models

import (
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// PaymentModel is the persistence model for the Payment aggregate root.
// An empty transaction id is stored as NULL so the unique index only
// applies to real ids.
type PaymentModel struct {
	VersionedColumns
	OrderID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	Order         *OrderModel       `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
	PaymentMethod payment.Method    `gorm:"type:varchar(20);not null"`
	Amount        valueobject.Money `gorm:"type:decimal(10,2);not null"`
	TransactionID *string           `gorm:"type:varchar(100);uniqueIndex:idx_payments_transaction_id"`
	Status        payment.Status    `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes         string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment aggregate.
func (m *PaymentModel) ToDomain() *payment.Payment {
	p := &payment.Payment{
		BaseAggregateRoot: m.Root(),
		OrderID:           m.OrderID,
		Method:            m.PaymentMethod,
		Amount:            m.Amount,
		Status:            m.Status,
		Notes:             m.Notes,
	}
	if m.TransactionID != nil {
		p.TransactionID = *m.TransactionID
	}
	return p
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment aggregate.
func PaymentModelFromDomain(p *payment.Payment) *PaymentModel {
	m := &PaymentModel{
		OrderID:       p.OrderID,
		PaymentMethod: p.Method,
		Amount:        p.Amount,
		Status:        p.Status,
		Notes:         p.Notes,
	}
	if p.TransactionID != "" {
		txID := p.TransactionID
		m.TransactionID = &txID
	}
	m.SetRoot(p.BaseAggregateRoot)
	return m
}
