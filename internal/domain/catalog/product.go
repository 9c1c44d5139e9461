package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// DefaultLowStockThreshold is the stock level below which a product is
// reported as running low.
const DefaultLowStockThreshold = 10

// Product represents a sellable item in the catalog.
// Price and StockQuantity are never negative.
type Product struct {
	shared.BaseAggregateRoot
	Name          string
	Description   string
	Price         valueobject.Money
	StockQuantity int
	CategoryID    uuid.UUID
	ImageURL      string
	IsActive      bool
}

// NewProduct creates a new active product
func NewProduct(name, description string, price valueobject.Money, stock int, categoryID uuid.UUID) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateStock(stock); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewFieldValidationError("category_id", "Product category is required")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Price:             price,
		StockQuantity:     stock,
		CategoryID:        categoryID,
		IsActive:          true,
	}
	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, description, imageURL string, categoryID uuid.UUID) error {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return err
	}
	if categoryID == uuid.Nil {
		return shared.NewFieldValidationError("category_id", "Product category is required")
	}

	p.Name = name
	p.Description = description
	p.ImageURL = imageURL
	p.CategoryID = categoryID
	p.Touch()
	return nil
}

// SetPrice changes the list price. Existing order lines keep their snapshot.
func (p *Product) SetPrice(price valueobject.Money) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	if p.Price.Equals(price) {
		return nil
	}

	old := p.Price
	p.Price = price
	p.Touch()
	p.AddDomainEvent(NewProductPriceChangedEvent(p, old))
	return nil
}

// SetStock overwrites the recorded stock quantity
func (p *Product) SetStock(quantity int) error {
	if err := validateStock(quantity); err != nil {
		return err
	}

	old := p.StockQuantity
	p.StockQuantity = quantity
	p.Touch()
	p.AddDomainEvent(NewProductStockChangedEvent(p, old))
	return nil
}

// AdjustStock adds delta (which may be negative) to the stock quantity
func (p *Product) AdjustStock(delta int) error {
	if p.StockQuantity+delta < 0 {
		return shared.NewStockInsufficientError(p.Name, -delta, p.StockQuantity)
	}
	return p.SetStock(p.StockQuantity + delta)
}

// HasStock reports whether quantity units are recorded as available.
// The check is advisory; nothing is reserved.
func (p *Product) HasStock(quantity int) bool {
	return quantity <= p.StockQuantity
}

// IsOutOfStock returns true when no units are recorded
func (p *Product) IsOutOfStock() bool {
	return p.StockQuantity == 0
}

// IsLowStock returns true when 0 < stock < threshold
func (p *Product) IsLowStock(threshold int) bool {
	return p.StockQuantity > 0 && p.StockQuantity < threshold
}

// Activate makes the product available for carts
func (p *Product) Activate() {
	if p.IsActive {
		return
	}
	p.IsActive = true
	p.Touch()
}

// Deactivate hides the product from new carts
func (p *Product) Deactivate() {
	if !p.IsActive {
		return
	}
	p.IsActive = false
	p.Touch()
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewFieldValidationError("name", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewFieldValidationError("name", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewValidationError("INVALID_PRICE", "Price cannot be negative").WithField("price")
	}
	return nil
}

func validateStock(quantity int) error {
	if quantity < 0 {
		return shared.NewValidationError("INVALID_STOCK", "Stock quantity cannot be negative").WithField("stock_quantity")
	}
	return nil
}
