package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"BIZPULSE_APP_NAME":                os.Getenv("BIZPULSE_APP_NAME"),
		"BIZPULSE_APP_ENV":                 os.Getenv("BIZPULSE_APP_ENV"),
		"BIZPULSE_APP_PORT":                os.Getenv("BIZPULSE_APP_PORT"),
		"BIZPULSE_DATABASE_HOST":           os.Getenv("BIZPULSE_DATABASE_HOST"),
		"BIZPULSE_DATABASE_PASSWORD":       os.Getenv("BIZPULSE_DATABASE_PASSWORD"),
		"BIZPULSE_DATABASE_SSLMODE":        os.Getenv("BIZPULSE_DATABASE_SSLMODE"),
		"BIZPULSE_DATABASE_MAX_IDLE_CONNS": os.Getenv("BIZPULSE_DATABASE_MAX_IDLE_CONNS"),
		"BIZPULSE_LOG_LEVEL":               os.Getenv("BIZPULSE_LOG_LEVEL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "bizpulse-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "bizpulse", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Positive(t, cfg.Report.CacheTTL)
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("BIZPULSE_APP_PORT", "9090")
		os.Setenv("BIZPULSE_DATABASE_HOST", "db.internal")
		os.Setenv("BIZPULSE_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		clearEnv()
		os.Setenv("BIZPULSE_DATABASE_MAX_IDLE_CONNS", "100")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		clearEnv()
		os.Setenv("BIZPULSE_LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.level")
	})

	t.Run("production requires password and ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("BIZPULSE_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)

		os.Setenv("BIZPULSE_DATABASE_PASSWORD", "s3cret")
		_, err = Load()
		require.Error(t, err, "sslmode=disable must be rejected in production")

		os.Setenv("BIZPULSE_DATABASE_SSLMODE", "require")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "require", cfg.Database.SSLMode)
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "bizpulse",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped.
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
