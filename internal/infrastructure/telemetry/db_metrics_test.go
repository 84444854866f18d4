package telemetry

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRegisterPoolMetrics(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	sqlDB.SetMaxOpenConns(7)

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	reg, err := RegisterPoolMetrics(provider.Meter("test"), sqlDB)
	require.NoError(t, err)
	defer func() { _ = reg.Unregister() }()

	data := collect(t, reader)
	gauge, ok := data["db_pool_connections_max"].(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(7), gauge.DataPoints[0].Value)

	states, ok := data["db_pool_connections"].(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.Len(t, states.DataPoints, 2)
}

func TestDBTracer_Register(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	tracer := NewDBTracer(0, zaptest.NewLogger(t))
	assert.Equal(t, "200ms", tracer.slowThreshold.String())
	require.NoError(t, tracer.Register(db))

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}
