package models

import (
	"time"

	"github.com/shopdesk/backend/internal/domain/customer"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	VersionedColumns
	Username     string    `gorm:"type:varchar(150);not null;uniqueIndex:idx_customers_username"`
	Email        string    `gorm:"type:varchar(254);not null;uniqueIndex:idx_customers_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FirstName    string    `gorm:"type:varchar(150)"`
	LastName     string    `gorm:"type:varchar(150)"`
	PhoneNumber  string    `gorm:"type:varchar(20)"`
	Address      string    `gorm:"type:text"`
	IsActive     bool      `gorm:"not null"`
	DateJoined   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *customer.Customer {
	return &customer.Customer{
		BaseAggregateRoot: m.Root(),
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      valueobject.PasswordHash(m.PasswordHash),
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		PhoneNumber:       m.PhoneNumber,
		Address:           m.Address,
		IsActive:          m.IsActive,
		DateJoined:        m.DateJoined,
	}
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *customer.Customer) *CustomerModel {
	m := &CustomerModel{
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: string(c.PasswordHash),
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		PhoneNumber:  c.PhoneNumber,
		Address:      c.Address,
		IsActive:     c.IsActive,
		DateJoined:   c.DateJoined,
	}
	m.SetRoot(c.BaseAggregateRoot)
	return m
}
