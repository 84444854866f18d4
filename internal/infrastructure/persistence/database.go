package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/restopos/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database owns the GORM handle every repository is built on
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the PostgreSQL pool and fails fast when the server is
// unreachable. A nil logger keeps GORM silent.
func NewDatabase(cfg *config.DatabaseConfig, gormLogger gormlogger.Interface) (*Database, error) {
	if gormLogger == nil {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.DBName, err)
	}

	d := &Database{DB: db}
	pool, err := d.SQL()
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	pool.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return d, nil
}

// SQL returns the pool under GORM, used for health checks and pool metrics
func (d *Database) SQL() (*sql.DB, error) {
	pool, err := d.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("database pool: %w", err)
	}
	return pool, nil
}

// Ping reports whether the database still answers; it backs the readiness probe
func (d *Database) Ping(ctx context.Context) error {
	pool, err := d.SQL()
	if err != nil {
		return err
	}
	return pool.PingContext(ctx)
}

// Close releases every pooled connection
func (d *Database) Close() error {
	pool, err := d.SQL()
	if err != nil {
		return err
	}
	return pool.Close()
}
