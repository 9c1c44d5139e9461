package catalog

import (
	"strings"

	"github.com/shopdesk/backend/internal/domain/shared"
)

// Category groups products in the catalog. Names are unique store-wide.
type Category struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       strings.TrimSpace(description),
	}, nil
}

// Update changes the category's name and description
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.Touch()
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewFieldValidationError("name", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewFieldValidationError("name", "Category name cannot exceed 100 characters")
	}
	return nil
}
