package floor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/floor"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockZoneRepository is a mock implementation of floor.ZoneRepository
type MockZoneRepository struct {
	mock.Mock
}

func (m *MockZoneRepository) Create(ctx context.Context, zone *floor.Zone) error {
	return m.Called(ctx, zone).Error(0)
}

func (m *MockZoneRepository) Update(ctx context.Context, zone *floor.Zone) error {
	return m.Called(ctx, zone).Error(0)
}

func (m *MockZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockZoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*floor.Zone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*floor.Zone), args.Error(1)
}

func (m *MockZoneRepository) FindAll(ctx context.Context) ([]*floor.Zone, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*floor.Zone), args.Error(1)
}

func (m *MockZoneRepository) CountTables(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockTableRepository is a mock implementation of floor.TableRepository
type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) Create(ctx context.Context, table *floor.Table) error {
	return m.Called(ctx, table).Error(0)
}

func (m *MockTableRepository) Update(ctx context.Context, table *floor.Table) error {
	return m.Called(ctx, table).Error(0)
}

func (m *MockTableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTableRepository) FindByID(ctx context.Context, id uuid.UUID) (*floor.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*floor.Table), args.Error(1)
}

func (m *MockTableRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*floor.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*floor.Table), args.Error(1)
}

func (m *MockTableRepository) FindAll(ctx context.Context, zoneID *uuid.UUID) ([]*floor.Table, error) {
	args := m.Called(ctx, zoneID)
	return args.Get(0).([]*floor.Table), args.Error(1)
}

func (m *MockTableRepository) ExistsByName(ctx context.Context, zoneID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, zoneID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestFloorService_CreateTable(t *testing.T) {
	ctx := context.Background()
	zone, err := floor.NewZone("Terraza", 1)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		zones, tables := new(MockZoneRepository), new(MockTableRepository)
		svc := NewFloorService(zones, tables)
		zones.On("FindByID", ctx, zone.ID).Return(zone, nil)
		tables.On("ExistsByName", ctx, zone.ID, "T1", (*uuid.UUID)(nil)).Return(false, nil)
		tables.On("Create", ctx, mock.AnythingOfType("*floor.Table")).Return(nil)

		resp, err := svc.CreateTable(ctx, CreateTableRequest{ZoneID: zone.ID, Name: "T1", Capacity: 4})
		require.NoError(t, err)
		assert.Equal(t, "free", resp.Status)
		assert.Nil(t, resp.CurrentSaleID)
	})

	t.Run("duplicate name in zone", func(t *testing.T) {
		zones, tables := new(MockZoneRepository), new(MockTableRepository)
		svc := NewFloorService(zones, tables)
		zones.On("FindByID", ctx, zone.ID).Return(zone, nil)
		tables.On("ExistsByName", ctx, zone.ID, "T1", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.CreateTable(ctx, CreateTableRequest{ZoneID: zone.ID, Name: "T1", Capacity: 4})
		assert.Equal(t, shared.CodeAlreadyExists, domainCode(t, err))
	})

	t.Run("unknown zone", func(t *testing.T) {
		zones, tables := new(MockZoneRepository), new(MockTableRepository)
		svc := NewFloorService(zones, tables)
		missing := uuid.New()
		zones.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		_, err := svc.CreateTable(ctx, CreateTableRequest{ZoneID: missing, Name: "T1", Capacity: 4})
		assert.Equal(t, shared.CodeValidation, domainCode(t, err))
	})
}

func TestFloorService_TableWithOpenSale(t *testing.T) {
	ctx := context.Background()
	zones, tables := new(MockZoneRepository), new(MockTableRepository)
	svc := NewFloorService(zones, tables)
	table, err := floor.NewTable(uuid.New(), "Barra 2", 2)
	require.NoError(t, err)
	require.NoError(t, table.Occupy(uuid.New()))
	tables.On("FindByID", ctx, table.ID).Return(table, nil)

	err = svc.DeleteTable(ctx, table.ID)
	assert.Equal(t, shared.CodeConflict, domainCode(t, err))

	_, err = svc.SetTableStatus(ctx, table.ID, SetTableStatusRequest{Status: "free"})
	assert.Equal(t, shared.CodeConflict, domainCode(t, err))
	tables.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	tables.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFloorService_ReserveTable(t *testing.T) {
	ctx := context.Background()
	zones, tables := new(MockZoneRepository), new(MockTableRepository)
	svc := NewFloorService(zones, tables)
	table, err := floor.NewTable(uuid.New(), "5", 6)
	require.NoError(t, err)
	tables.On("FindByID", ctx, table.ID).Return(table, nil)
	tables.On("Update", ctx, table).Return(nil)

	resp, err := svc.SetTableStatus(ctx, table.ID, SetTableStatusRequest{Status: "reserved"})
	require.NoError(t, err)
	assert.Equal(t, "reserved", resp.Status)
}

func TestFloorService_DeleteZone(t *testing.T) {
	ctx := context.Background()
	zones, tables := new(MockZoneRepository), new(MockTableRepository)
	svc := NewFloorService(zones, tables)
	zone, err := floor.NewZone("Salón", 0)
	require.NoError(t, err)
	zones.On("FindByID", ctx, zone.ID).Return(zone, nil)
	zones.On("CountTables", ctx, zone.ID).Return(int64(2), nil).Once()

	err = svc.DeleteZone(ctx, zone.ID)
	assert.Equal(t, shared.CodeConflict, domainCode(t, err))

	zones.On("CountTables", ctx, zone.ID).Return(int64(0), nil).Once()
	zones.On("Delete", ctx, zone.ID).Return(nil)
	require.NoError(t, svc.DeleteZone(ctx, zone.ID))
}

func TestFloorService_UpdateZoneKeepsActive(t *testing.T) {
	ctx := context.Background()
	zones := new(MockZoneRepository)
	svc := NewFloorService(zones, new(MockTableRepository))
	zone, err := floor.NewZone("Patio", 0)
	require.NoError(t, err)
	zones.On("FindByID", ctx, zone.ID).Return(zone, nil)
	zones.On("Update", ctx, zone).Return(nil)

	resp, err := svc.UpdateZone(ctx, zone.ID, UpdateZoneRequest{Name: "Patio interior", SortOrder: 2})
	require.NoError(t, err)
	assert.True(t, resp.Active)
	assert.Equal(t, 2, resp.SortOrder)
}
