package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"POS_APP_NAME",
	"POS_APP_ENV",
	"POS_APP_PORT",
	"POS_DATABASE_HOST",
	"POS_DATABASE_PORT",
	"POS_DATABASE_PASSWORD",
	"POS_DATABASE_MAX_OPEN_CONNS",
	"POS_DATABASE_MAX_IDLE_CONNS",
	"POS_JWT_SECRET",
	"POS_HTTP_CORS_ALLOW_ORIGINS",
	"POS_BUSINESS_DEFAULT_TAX_RATE",
	"POS_BUSINESS_ESTABLISHMENT_CODE",
	"POS_EVENT_KAFKA_ENABLED",
	"POS_EVENT_KAFKA_BROKERS",
	"POS_TELEMETRY_SAMPLING_RATIO",
}

// clearEnv unsets every key for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "restopos", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "restopos", cfg.Database.DBName)
		assert.Equal(t, 20, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
		assert.Equal(t, 15*time.Minute, cfg.Auth.LockDuration)
		assert.Equal(t, 15.0, cfg.Business.DefaultTaxRate)
		assert.Equal(t, "001", cfg.Business.EstablishmentCode)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
		assert.Equal(t, 25*time.Second, cfg.Kitchen.HeartbeatInterval)
	})

	t.Run("loads values from environment variables with POS prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("POS_APP_NAME", "test-app")
		t.Setenv("POS_APP_PORT", "9000")
		t.Setenv("POS_DATABASE_HOST", "db.local")
		t.Setenv("POS_DATABASE_PORT", "5433")
		t.Setenv("POS_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("POS_DATABASE_MAX_IDLE_CONNS", "10")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	})

	t.Run("explicit zero tax rate is kept", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("POS_BUSINESS_DEFAULT_TAX_RATE", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 0.0, cfg.Business.DefaultTaxRate)
	})

	t.Run("rejects tax rate above 100", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("POS_BUSINESS_DEFAULT_TAX_RATE", "112")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default_tax_rate")
	})

	t.Run("rejects malformed establishment code", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("POS_BUSINESS_ESTABLISHMENT_CODE", "1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "3 digits")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("POS_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("POS_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("kafka needs brokers", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("POS_EVENT_KAFKA_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kafka_brokers")
	})

	t.Run("rejects sampling ratio out of range", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("POS_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Run("requires a long jwt secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("POS_APP_ENV", "production")
		t.Setenv("POS_JWT_SECRET", "short-secret")
		t.Setenv("POS_DATABASE_PASSWORD", "secure-password")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires database.password", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("POS_APP_ENV", "production")
		t.Setenv("POS_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("passes with valid production config", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("POS_APP_ENV", "production")
		t.Setenv("POS_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		t.Setenv("POS_DATABASE_PASSWORD", "secure-password")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}
