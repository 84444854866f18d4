package persistence

import (
	"strings"

	"gorm.io/gorm"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Returns "ASC" when the input is empty or invalid.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "DESC" {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField checks the sort field against a whitelist of columns.
// Returns defaultField when the input is empty or not allowed.
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

// orderBy applies a whitelisted ordering with id as the tie breaker so pages are stable
func orderBy(query *gorm.DB, field, dir string, allowed map[string]bool, defaultField string) *gorm.DB {
	column := ValidateSortField(field, allowed, defaultField)
	return query.Order(column + " " + ValidateSortOrder(dir)).Order("id ASC")
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"name":       true,
	"code":       true,
	"price":      true,
	"cost":       true,
	"stock":      true,
	"created_at": true,
	"updated_at": true,
}

// InventoryItemSortFields contains allowed sort fields for inventory items
var InventoryItemSortFields = map[string]bool{
	"name":       true,
	"stock":      true,
	"min_stock":  true,
	"unit_cost":  true,
	"created_at": true,
	"updated_at": true,
}
