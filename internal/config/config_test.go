package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CURRENCY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "galeragate.db", cfg.DB.DSN)
	assert.Equal(t, "PHP", cfg.Currency)
	assert.Equal(t, 15*time.Minute, cfg.AdminSessionTTL)
	assert.Equal(t, 3, cfg.Login.Capacity)
	assert.Equal(t, 10*time.Minute, cfg.Login.RefillInterval)
	assert.Equal(t, 30*time.Minute, cfg.Login.TTL)
	assert.Equal(t, "reservation.confirmed", cfg.Events.Queue)
	assert.False(t, cfg.Events.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ADMIN_EMAIL", "  Admin@GaleraGate.com ")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "5")
	t.Setenv("LOGIN_WINDOW", "1m")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://user:pw@broker:5672/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Empty(t, cfg.DB.DSN)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "admin@galeragate.com", cfg.AdminEmail)
	assert.Equal(t, 5, cfg.Login.Capacity)
	assert.Equal(t, 5*time.Minute, cfg.Login.TTL)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, "amqp://user:pw@broker:5672/", cfg.Events.URL)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}
