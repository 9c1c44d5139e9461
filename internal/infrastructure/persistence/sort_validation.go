package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CategorySortFields contains allowed sort fields for categories
var CategorySortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"price":          true,
	"stock_quantity": true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"created_at":  true,
	"date_joined": true,
	"username":    true,
	"email":       true,
	"last_name":   true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"placed_at":    true,
	"total_amount": true,
	"status":       true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"created_at": true,
	"amount":     true,
	"status":     true,
}

// ReviewSortFields contains allowed sort fields for reviews
var ReviewSortFields = map[string]bool{
	"created_at": true,
	"rating":     true,
}
