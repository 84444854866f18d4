// Package floor models the dining room: zones and the tables inside them.
package floor

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
)

// TableStatus represents the occupancy of a table
type TableStatus string

const (
	TableStatusFree     TableStatus = "free"
	TableStatusOccupied TableStatus = "occupied"
	TableStatusReserved TableStatus = "reserved"
)

// IsValid checks if the status is a known value
func (s TableStatus) IsValid() bool {
	switch s {
	case TableStatusFree, TableStatusOccupied, TableStatusReserved:
		return true
	}
	return false
}

// Zone is an area of the restaurant (terrace, main hall, bar)
type Zone struct {
	shared.BaseEntity
	Name      string
	SortOrder int
	Active    bool
}

// NewZone creates an active zone
func NewZone(name string, sortOrder int) (*Zone, error) {
	z := &Zone{BaseEntity: shared.NewBaseEntity(), Active: true}
	if err := z.Update(name, sortOrder, true); err != nil {
		return nil, err
	}
	return z, nil
}

// Update changes the editable fields
func (z *Zone) Update(name string, sortOrder int, active bool) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return shared.NewValidationError("Zone name must have between 1 and 100 characters")
	}
	z.Name = name
	z.SortOrder = sortOrder
	z.Active = active
	z.Touch()
	return nil
}

// Table is a dining table. CurrentSaleID points at the open sale seated there.
type Table struct {
	shared.BaseEntity
	ZoneID        uuid.UUID
	Name          string
	Capacity      int
	Status        TableStatus
	CurrentSaleID *uuid.UUID
}

// NewTable creates a free table
func NewTable(zoneID uuid.UUID, name string, capacity int) (*Table, error) {
	t := &Table{BaseEntity: shared.NewBaseEntity(), Status: TableStatusFree}
	if err := t.Update(zoneID, name, capacity); err != nil {
		return nil, err
	}
	return t, nil
}

// Update changes the editable fields
func (t *Table) Update(zoneID uuid.UUID, name string, capacity int) error {
	if zoneID == uuid.Nil {
		return shared.NewValidationError("Table zone is required")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 50 {
		return shared.NewValidationError("Table name must have between 1 and 50 characters")
	}
	if capacity < 1 {
		return shared.NewValidationError("Table capacity must be at least 1")
	}
	t.ZoneID = zoneID
	t.Name = name
	t.Capacity = capacity
	t.Touch()
	return nil
}

// Occupy seats an open sale at the table
func (t *Table) Occupy(saleID uuid.UUID) error {
	if t.Status == TableStatusOccupied && t.CurrentSaleID != nil && *t.CurrentSaleID != saleID {
		return shared.NewConflictError("Table " + t.Name + " already has an open order")
	}
	t.Status = TableStatusOccupied
	t.CurrentSaleID = &saleID
	t.Touch()
	return nil
}

// Release frees the table after its sale is closed or cancelled
func (t *Table) Release() {
	t.Status = TableStatusFree
	t.CurrentSaleID = nil
	t.Touch()
}

// SetStatus is the manual status change; occupancy is driven by sales only
func (t *Table) SetStatus(status TableStatus) error {
	if status != TableStatusFree && status != TableStatusReserved {
		return shared.NewValidationError("Table status can only be set to free or reserved")
	}
	if t.HasOpenSale() {
		return shared.NewConflictError("Table " + t.Name + " has an open order")
	}
	t.Status = status
	t.Touch()
	return nil
}

// HasOpenSale reports whether a sale is seated at the table
func (t *Table) HasOpenSale() bool {
	return t.CurrentSaleID != nil
}

// ZoneRepository persists zones
type ZoneRepository interface {
	Create(ctx context.Context, zone *Zone) error
	Update(ctx context.Context, zone *Zone) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Zone, error)
	FindAll(ctx context.Context) ([]*Zone, error)
	CountTables(ctx context.Context, id uuid.UUID) (int64, error)
}

// TableRepository persists tables
type TableRepository interface {
	Create(ctx context.Context, table *Table) error
	Update(ctx context.Context, table *Table) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Table, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Table, error)
	FindAll(ctx context.Context, zoneID *uuid.UUID) ([]*Table, error)
	ExistsByName(ctx context.Context, zoneID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
}
