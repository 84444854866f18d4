package floor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/floor"
	"github.com/restopos/backend/internal/domain/shared"
)

// FloorService manages zones and the tables inside them
type FloorService struct {
	zoneRepo  floor.ZoneRepository
	tableRepo floor.TableRepository
}

// NewFloorService creates a new FloorService
func NewFloorService(zoneRepo floor.ZoneRepository, tableRepo floor.TableRepository) *FloorService {
	return &FloorService{zoneRepo: zoneRepo, tableRepo: tableRepo}
}

// CreateZone creates a zone
func (s *FloorService) CreateZone(ctx context.Context, req CreateZoneRequest) (*ZoneResponse, error) {
	zone, err := floor.NewZone(req.Name, req.SortOrder)
	if err != nil {
		return nil, err
	}
	if err := s.zoneRepo.Create(ctx, zone); err != nil {
		return nil, err
	}
	response := ToZoneResponse(zone)
	return &response, nil
}

// ListZones returns every zone in display order
func (s *FloorService) ListZones(ctx context.Context) ([]ZoneResponse, error) {
	zones, err := s.zoneRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ZoneResponse, len(zones))
	for i, z := range zones {
		out[i] = ToZoneResponse(z)
	}
	return out, nil
}

// GetZone retrieves a zone by ID
func (s *FloorService) GetZone(ctx context.Context, id uuid.UUID) (*ZoneResponse, error) {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToZoneResponse(zone)
	return &response, nil
}

// UpdateZone updates a zone
func (s *FloorService) UpdateZone(ctx context.Context, id uuid.UUID, req UpdateZoneRequest) (*ZoneResponse, error) {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	active := zone.Active
	if req.Active != nil {
		active = *req.Active
	}
	if err := zone.Update(req.Name, req.SortOrder, active); err != nil {
		return nil, err
	}
	if err := s.zoneRepo.Update(ctx, zone); err != nil {
		return nil, err
	}
	response := ToZoneResponse(zone)
	return &response, nil
}

// DeleteZone removes an empty zone
func (s *FloorService) DeleteZone(ctx context.Context, id uuid.UUID) error {
	if _, err := s.zoneRepo.FindByID(ctx, id); err != nil {
		return err
	}
	count, err := s.zoneRepo.CountTables(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewConflictError("Zone still has tables")
	}
	return s.zoneRepo.Delete(ctx, id)
}

// CreateTable creates a table inside a zone
func (s *FloorService) CreateTable(ctx context.Context, req CreateTableRequest) (*TableResponse, error) {
	if err := s.checkTable(ctx, req.ZoneID, req.Name, nil); err != nil {
		return nil, err
	}
	table, err := floor.NewTable(req.ZoneID, req.Name, req.Capacity)
	if err != nil {
		return nil, err
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}
	response := ToTableResponse(table)
	return &response, nil
}

// ListTables returns tables with their current status, optionally for one zone
func (s *FloorService) ListTables(ctx context.Context, filter TableListFilter) ([]TableResponse, error) {
	tables, err := s.tableRepo.FindAll(ctx, filter.ZoneID)
	if err != nil {
		return nil, err
	}
	out := make([]TableResponse, len(tables))
	for i, t := range tables {
		out[i] = ToTableResponse(t)
	}
	return out, nil
}

// GetTable retrieves a table by ID
func (s *FloorService) GetTable(ctx context.Context, id uuid.UUID) (*TableResponse, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTableResponse(table)
	return &response, nil
}

// UpdateTable updates a table
func (s *FloorService) UpdateTable(ctx context.Context, id uuid.UUID, req UpdateTableRequest) (*TableResponse, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkTable(ctx, req.ZoneID, req.Name, &id); err != nil {
		return nil, err
	}
	if err := table.Update(req.ZoneID, req.Name, req.Capacity); err != nil {
		return nil, err
	}
	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, err
	}
	response := ToTableResponse(table)
	return &response, nil
}

// DeleteTable removes a table without an open sale
func (s *FloorService) DeleteTable(ctx context.Context, id uuid.UUID) error {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if table.HasOpenSale() {
		return shared.NewConflictError("Table " + table.Name + " has an open order")
	}
	return s.tableRepo.Delete(ctx, id)
}

// SetTableStatus frees or reserves a table by hand
func (s *FloorService) SetTableStatus(ctx context.Context, id uuid.UUID, req SetTableStatusRequest) (*TableResponse, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := table.SetStatus(floor.TableStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, err
	}
	response := ToTableResponse(table)
	return &response, nil
}

func (s *FloorService) checkTable(ctx context.Context, zoneID uuid.UUID, name string, excludeID *uuid.UUID) error {
	if _, err := s.zoneRepo.FindByID(ctx, zoneID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewValidationError("Zone does not exist")
		}
		return err
	}
	exists, err := s.tableRepo.ExistsByName(ctx, zoneID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "A table named "+name+" already exists in this zone")
	}
	return nil
}
