package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"desc lowercase returns DESC", "DESC", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE users;--", "DESC"},
		{"whitespace only returns DESC", "   ", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSortOrder(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidateSortField(t *testing.T) {
	allowedFields := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
		"name":       true,
	}

	tests := []struct {
		name         string
		input        string
		allowedMap   map[string]bool
		defaultField string
		expected     string
	}{
		{"empty string returns default", "", allowedFields, "created_at", "created_at"},
		{"valid field returns field", "name", allowedFields, "created_at", "name"},
		{"valid field id returns field", "id", allowedFields, "created_at", "id"},
		{"invalid field returns default", "invalid_field", allowedFields, "created_at", "created_at"},
		{"sql injection attempt returns default", "id; DROP TABLE users;--", allowedFields, "created_at", "created_at"},
		{"case sensitive - uppercase invalid", "NAME", allowedFields, "created_at", "created_at"},
		{"whitespace only returns default", "   ", allowedFields, "created_at", "created_at"},
		{"whitespace around valid field returns field", "  name  ", allowedFields, "created_at", "name"},
		{"field with spaces injection returns default", "name users", allowedFields, "created_at", "created_at"},
		{"field with quotes injection returns default", "name'--", allowedFields, "created_at", "created_at"},
		{"empty default with valid field", "name", allowedFields, "", "name"},
		{"empty default with invalid field", "invalid", allowedFields, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSortField(tt.input, tt.allowedMap, tt.defaultField)
			assert.Equal(t, tt.expected, result)
		})
	}
}


func TestSortFieldsWhitelists(t *testing.T) {
	whitelists := map[string]map[string]bool{
		"categories": CategorySortFields,
		"products":   ProductSortFields,
		"customers":  CustomerSortFields,
		"orders":     OrderSortFields,
		"payments":   PaymentSortFields,
		"reviews":    ReviewSortFields,
	}

	for name, fields := range whitelists {
		t.Run(name+" allows created_at", func(t *testing.T) {
			if name == "customers" {
				assert.True(t, fields["date_joined"])
			}
			assert.True(t, fields["created_at"])
		})
		t.Run(name+" rejects unknown columns", func(t *testing.T) {
			assert.False(t, fields["password_hash"])
			assert.False(t, fields["1=1"])
		})
	}

	t.Run("orders sort by money and status", func(t *testing.T) {
		assert.True(t, OrderSortFields["total_amount"])
		assert.True(t, OrderSortFields["status"])
	})

	t.Run("products sort by price and stock", func(t *testing.T) {
		assert.True(t, ProductSortFields["price"])
		assert.True(t, ProductSortFields["stock_quantity"])
	})
}

func TestSQLInjectionPrevention(t *testing.T) {
	injections := []string{
		"created_at; DROP TABLE orders;--",
		"created_at DESC, (SELECT 1)",
		"status' OR '1'='1",
		"total_amount/**/",
	}

	for _, input := range injections {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, "created_at", ValidateSortField(input, OrderSortFields, "created_at"))
			assert.Equal(t, "DESC", ValidateSortOrder(input))
		})
	}
}
