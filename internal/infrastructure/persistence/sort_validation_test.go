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
		{"empty string returns ASC", "", "ASC"},
		{"desc lowercase returns DESC", "desc", "DESC"},
		{"whitespace around DESC returns DESC", "  DESC ", "DESC"},
		{"invalid value returns ASC", "sideways", "ASC"},
		{"sql injection attempt returns ASC", "DESC; DROP TABLE sales;--", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty returns default", "", "name"},
		{"allowed field is kept", "price", "price"},
		{"whitespace is trimmed", " stock ", "stock"},
		{"unknown field returns default", "password_hash", "name"},
		{"injection attempt returns default", "price; DELETE FROM products", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, ProductSortFields, "name"))
		})
	}
}

func TestInventoryItemSortFields(t *testing.T) {
	assert.True(t, InventoryItemSortFields["unit_cost"])
	assert.False(t, InventoryItemSortFields["price"])
}
