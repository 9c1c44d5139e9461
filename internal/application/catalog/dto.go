package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListFilter represents filter options for category list
type CategoryListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	Description   string          `json:"description" binding:"max=5000"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	StockQuantity int             `json:"stock_quantity" binding:"min=0"`
	CategoryID    uuid.UUID       `json:"category_id" binding:"required"`
	ImageURL      string          `json:"image_url" binding:"omitempty,max=500"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,max=500"`
	IsActive    *bool            `json:"is_active"`
}

// UpdateStockRequest sets the recorded stock, or adjusts it by Delta
type UpdateStockRequest struct {
	StockQuantity *int `json:"stock_quantity" binding:"omitempty,min=0"`
	Delta         *int `json:"delta"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         valueobject.Money `json:"price"`
	StockQuantity int               `json:"stock_quantity"`
	CategoryID    uuid.UUID         `json:"category_id"`
	ImageURL      string            `json:"image_url,omitempty"`
	IsActive      bool              `json:"is_active"`
	InStock       bool              `json:"in_stock"`
	LowStock      bool              `json:"low_stock"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Version       int               `json:"version"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"-"`
	InStock    *bool      `form:"in_stock"`
	LowStock   *bool      `form:"low_stock"`
	MinPrice   *float64   `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice   *float64   `form:"max_price" binding:"omitempty,min=0"`
	ActiveOnly bool       `form:"-"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by" binding:"omitempty,oneof=name price stock_quantity created_at"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		ImageURL:      p.ImageURL,
		IsActive:      p.IsActive,
		InStock:       !p.IsOutOfStock(),
		LowStock:      p.IsLowStock(catalog.DefaultLowStockThreshold),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

func pageFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	filter.Search = search
	return filter
}
