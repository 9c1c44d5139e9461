package models

import (
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	VersionedColumns
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_name"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseAggregateRoot: m.Root(),
		Name:              m.Name,
		Description:       m.Description,
	}
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{
		Name:        c.Name,
		Description: c.Description,
	}
	m.SetRoot(c.BaseAggregateRoot)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	VersionedColumns
	Name          string            `gorm:"type:varchar(200);not null;index"`
	Description   string            `gorm:"type:text"`
	Price         valueobject.Money `gorm:"type:decimal(10,2);not null"`
	StockQuantity int               `gorm:"not null;default:0;index"`
	CategoryID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	Category      *CategoryModel    `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	ImageURL      string            `gorm:"type:varchar(500)"`
	IsActive      bool              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.Root(),
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		StockQuantity:     m.StockQuantity,
		CategoryID:        m.CategoryID,
		ImageURL:          m.ImageURL,
		IsActive:          m.IsActive,
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		ImageURL:      p.ImageURL,
		IsActive:      p.IsActive,
	}
	m.SetRoot(p.BaseAggregateRoot)
	return m
}
