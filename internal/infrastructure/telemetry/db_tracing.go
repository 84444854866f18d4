package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// DBTracer registers otelgorm and marks slow or failed statements on their spans
type DBTracer struct {
	slowThreshold time.Duration
	logger        *zap.Logger
}

// NewDBTracer creates a DBTracer. A zero threshold defaults to 200ms.
func NewDBTracer(slowThreshold time.Duration, logger *zap.Logger) *DBTracer {
	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}
	return &DBTracer{slowThreshold: slowThreshold, logger: logger}
}

// Register installs the otelgorm plugin and the timing callbacks on db.
// Query variables never reach span attributes.
func (t *DBTracer) Register(db *gorm.DB) error {
	if err := db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName("postgresql"),
		otelgorm.WithoutQueryVariables(),
	)); err != nil {
		return err
	}
	cb := db.Callback()
	if err := errors.Join(
		cb.Create().Before("gorm:create").Register("otel_timing:before_create", markStart),
		cb.Query().Before("gorm:query").Register("otel_timing:before_query", markStart),
		cb.Update().Before("gorm:update").Register("otel_timing:before_update", markStart),
		cb.Delete().Before("gorm:delete").Register("otel_timing:before_delete", markStart),
		cb.Row().Before("gorm:row").Register("otel_timing:before_row", markStart),
		cb.Raw().Before("gorm:raw").Register("otel_timing:before_raw", markStart),
		cb.Create().After("gorm:create").Register("otel_timing:after_create", t.afterStatement),
		cb.Query().After("gorm:query").Register("otel_timing:after_query", t.afterStatement),
		cb.Update().After("gorm:update").Register("otel_timing:after_update", t.afterStatement),
		cb.Delete().After("gorm:delete").Register("otel_timing:after_delete", t.afterStatement),
		cb.Row().After("gorm:row").Register("otel_timing:after_row", t.afterStatement),
		cb.Raw().After("gorm:raw").Register("otel_timing:after_raw", t.afterStatement),
	); err != nil {
		return err
	}
	t.logger.Info("Database tracing enabled", zap.Duration("slow_query_threshold", t.slowThreshold))
	return nil
}

func markStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

func (t *DBTracer) afterStatement(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}
	if start, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > t.slowThreshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
