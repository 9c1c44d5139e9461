package models

import (
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/review"
)

// ReviewModel is the persistence model for the Review entity.
type ReviewModel struct {
	EntityColumns
	CustomerID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_customer_product,priority:1"`
	Customer   *CustomerModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_customer_product,priority:2;index"`
	Product    *ProductModel  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Rating     int            `gorm:"not null"`
	Comment    string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review entity.
func (m *ReviewModel) ToDomain() *review.Review {
	return &review.Review{
		BaseEntity: m.Entity(),
		CustomerID: m.CustomerID,
		ProductID:  m.ProductID,
		Rating:     m.Rating,
		Comment:    m.Comment,
	}
}

// ReviewModelFromDomain creates a new persistence model from a domain Review entity.
func ReviewModelFromDomain(r *review.Review) *ReviewModel {
	m := &ReviewModel{
		CustomerID: r.CustomerID,
		ProductID:  r.ProductID,
		Rating:     r.Rating,
		Comment:    r.Comment,
	}
	m.SetEntity(r.BaseEntity)
	return m
}
