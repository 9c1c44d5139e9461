package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// Item is an order line: a product, a quantity and the price captured when
// the line was created.
type Item struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Price       valueobject.Money
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Subtotal returns price × quantity
func (i Item) Subtotal() valueobject.Money {
	return i.Price.MultiplyByInt(int64(i.Quantity))
}

// ProductSnapshot is the catalog data the aggregate needs to add a line
type ProductSnapshot struct {
	ID            uuid.UUID
	Name          string
	Price         valueobject.Money
	StockQuantity int
	IsActive      bool
}

// Order is the aggregate root for an order and its lines.
// TotalAmount always equals CalculateTotal(Items) after any mutation.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID  uuid.UUID
	Items       []Item
	TotalAmount valueobject.Money
	Status      Status
	PlacedAt    *time.Time
}

// NewCart creates an empty pending order for the customer
func NewCart(customerID uuid.UUID) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewFieldValidationError("customer_id", "Customer is required")
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Items:             make([]Item, 0),
		TotalAmount:       valueobject.Zero(),
		Status:            StatusPending,
	}, nil
}

// CalculateTotal sums price × quantity over the given lines
func CalculateTotal(items []Item) valueobject.Money {
	subtotals := make([]valueobject.Money, 0, len(items))
	for _, item := range items {
		subtotals = append(subtotals, item.Subtotal())
	}
	return valueobject.Sum(subtotals...)
}

// AddItem adds quantity units of a product. An existing line for the product
// is incremented instead of duplicated. The resulting line quantity must not
// exceed the product's recorded stock.
func (o *Order) AddItem(product ProductSnapshot, quantity int) (*Item, error) {
	if err := o.requireEditable(); err != nil {
		return nil, err
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.NewValidationError("PRODUCT_UNAVAILABLE", "Product "+product.Name+" is not available").WithField("product_id")
	}

	if idx := o.indexOfProduct(product.ID); idx >= 0 {
		line := &o.Items[idx]
		newQuantity := line.Quantity + quantity
		if newQuantity > product.StockQuantity {
			return nil, shared.NewStockInsufficientError(product.Name, newQuantity, product.StockQuantity)
		}
		line.Quantity = newQuantity
		line.UpdatedAt = time.Now()
		o.recalculateTotal()
		return line, nil
	}

	if quantity > product.StockQuantity {
		return nil, shared.NewStockInsufficientError(product.Name, quantity, product.StockQuantity)
	}

	now := time.Now()
	o.Items = append(o.Items, Item{
		ID:          uuid.New(),
		OrderID:     o.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		Price:       product.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	o.recalculateTotal()
	return &o.Items[len(o.Items)-1], nil
}

// UpdateItemQuantity sets a line's quantity, checked against stock
func (o *Order) UpdateItemQuantity(itemID uuid.UUID, quantity, stock int) error {
	if err := o.requireEditable(); err != nil {
		return err
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	idx := o.indexOfItem(itemID)
	if idx < 0 {
		return shared.NewNotFoundError("order item", itemID)
	}

	line := &o.Items[idx]
	if quantity > stock {
		return shared.NewStockInsufficientError(line.ProductName, quantity, stock)
	}
	line.Quantity = quantity
	line.UpdatedAt = time.Now()
	o.recalculateTotal()
	return nil
}

// RemoveItem deletes a line. Removing the last line leaves a zero total.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if err := o.requireEditable(); err != nil {
		return err
	}
	idx := o.indexOfItem(itemID)
	if idx < 0 {
		return shared.NewNotFoundError("order item", itemID)
	}

	o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
	o.recalculateTotal()
	return nil
}

// Checkout moves a non-empty cart from pending to processing
func (o *Order) Checkout() error {
	if o.Status != StatusPending {
		return shared.NewInvalidStateError("ORDER_NOT_PENDING",
			"Order has already been checked out (status: "+o.Status.String()+")")
	}
	if len(o.Items) == 0 {
		return shared.NewValidationError("EMPTY_CART", "Cannot check out an empty cart")
	}

	now := time.Now()
	o.Status = StatusProcessing
	o.PlacedAt = &now
	o.MarkUpdated()
	o.AddDomainEvent(NewOrderCheckedOutEvent(o))
	return nil
}

// ChangeStatus sets the status on behalf of staff. Any of the five literal
// values is accepted; FollowsLifecycle on the emitted event tells whether the
// move matched the forward graph. Setting the current status is a no-op.
func (o *Order) ChangeStatus(target Status) error {
	if !target.IsValid() {
		_, err := ParseStatus(string(target))
		return err
	}
	if target == o.Status {
		return nil
	}

	old := o.Status
	o.Status = target
	if target != StatusPending && target != StatusCancelled && o.PlacedAt == nil {
		now := time.Now()
		o.PlacedAt = &now
	}
	o.MarkUpdated()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old))
	return nil
}

// IsCart reports whether the order is still a pending cart
func (o *Order) IsCart() bool {
	return o.Status == StatusPending
}

// ItemCount returns the number of lines
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the number of units across all lines
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// GetItemByProduct returns the line for productID, or nil
func (o *Order) GetItemByProduct(productID uuid.UUID) *Item {
	if idx := o.indexOfProduct(productID); idx >= 0 {
		return &o.Items[idx]
	}
	return nil
}

// GetItem returns the line with itemID, or nil
func (o *Order) GetItem(itemID uuid.UUID) *Item {
	if idx := o.indexOfItem(itemID); idx >= 0 {
		return &o.Items[idx]
	}
	return nil
}

// IsTotalConsistent checks the stored total against the lines
func (o *Order) IsTotalConsistent() bool {
	return o.TotalAmount.Equals(CalculateTotal(o.Items))
}

// recalculateTotal re-sums every line; no running total is trusted
func (o *Order) recalculateTotal() {
	o.TotalAmount = CalculateTotal(o.Items)
	o.MarkUpdated()
}

func (o *Order) requireEditable() error {
	if o.Status != StatusPending {
		return shared.NewInvalidStateError("ORDER_NOT_EDITABLE",
			"Items can only be changed while the order is pending (status: "+o.Status.String()+")")
	}
	return nil
}

func (o *Order) indexOfProduct(productID uuid.UUID) int {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (o *Order) indexOfItem(itemID uuid.UUID) int {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewValidationError("INVALID_QUANTITY", "Quantity must be at least 1").WithField("quantity")
	}
	return nil
}
