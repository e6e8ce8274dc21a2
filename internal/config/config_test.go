package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("BIND_ADDR", "")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOGIN_BURST", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, 5, cfg.LoginBurst)
	assert.False(t, cfg.AlertsEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_DRIVER", "pgx")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOGIN_RATE_PER_SEC", "0.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pgx", cfg.DatabaseDriver)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 0.5, cfg.LoginRatePerSec)
	assert.True(t, cfg.AlertsEnabled())
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_DRIVER", "sqlite3")

	_, err := Load()
	assert.Error(t, err)
}
