package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-crm/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.Storage)
	assert.Equal(t, 30, cfg.CRM.WindowDays)
	assert.Equal(t, 10, cfg.CRM.VIPBookings)
	assert.Equal(t, int64(50000), cfg.CRM.VIPSpend)
	assert.Equal(t, 3, cfg.CRM.RegularBookings)
	assert.Equal(t, "Asia/Kolkata", cfg.CRM.Timezone)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("CRM_WINDOW_DAYS", "7")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.CRM.WindowDays)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "crm", Password: "p@ss:word", DBName: "seller_crm", SSLMode: "disable"}

	assert.Equal(t, "postgres://crm:p%40ss%3Aword@db:5432/seller_crm?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
