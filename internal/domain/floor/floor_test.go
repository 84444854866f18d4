package floor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	table, err := NewTable(uuid.New(), " Mesa 1 ", 4)
	require.NoError(t, err)
	assert.Equal(t, "Mesa 1", table.Name)
	assert.Equal(t, TableStatusFree, table.Status)

	_, err = NewTable(uuid.Nil, "Mesa 2", 4)
	require.Error(t, err)
	_, err = NewTable(uuid.New(), "Mesa 2", 0)
	require.Error(t, err)
}

func TestTable_OccupyAndRelease(t *testing.T) {
	table, err := NewTable(uuid.New(), "Mesa 1", 4)
	require.NoError(t, err)

	sale := uuid.New()
	require.NoError(t, table.Occupy(sale))
	assert.Equal(t, TableStatusOccupied, table.Status)
	assert.True(t, table.HasOpenSale())

	// same sale adding items keeps the table
	require.NoError(t, table.Occupy(sale))

	err = table.Occupy(uuid.New())
	assert.ErrorIs(t, err, shared.ErrConflict)

	err = table.SetStatus(TableStatusFree)
	assert.ErrorIs(t, err, shared.ErrConflict)

	table.Release()
	assert.Equal(t, TableStatusFree, table.Status)
	assert.Nil(t, table.CurrentSaleID)
}

func TestTable_SetStatus(t *testing.T) {
	table, err := NewTable(uuid.New(), "Barra", 2)
	require.NoError(t, err)

	require.NoError(t, table.SetStatus(TableStatusReserved))
	assert.Equal(t, TableStatusReserved, table.Status)
	require.Error(t, table.SetStatus(TableStatusOccupied))
	require.Error(t, table.SetStatus(TableStatus("broken")))

	// a reserved table can still be seated
	require.NoError(t, table.Occupy(uuid.New()))
}

func TestNewZone(t *testing.T) {
	z, err := NewZone("Terraza", 1)
	require.NoError(t, err)
	assert.True(t, z.Active)

	_, err = NewZone(" ", 1)
	require.Error(t, err)
}
