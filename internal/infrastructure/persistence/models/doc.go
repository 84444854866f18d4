// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Each model has a ToDomain method and a XModelFromDomain constructor; repositories only
// ever hand domain types to their callers. The authoritative schema lives in the SQL
// migrations; the gorm tags mirror it closely enough for AutoMigrate in tests.
//
// Files follow the bounded contexts:
//   - identity.go: users
//   - settings.go: config key/value pairs
//   - catalog.go: categories, products, modifier groups and options
//   - floor.go: zones and tables
//   - sales.go: sales, sale items, invoices
//   - kitchen.go: kitchen orders and their items
//   - inventory.go: inventory items, purchases, recipe lines
//   - cashier.go: sales periods and cash withdrawals
//   - payroll.go: employees and payroll entries
//   - finance.go: investments
package models
