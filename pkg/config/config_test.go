package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Pricing.MaxItems)
	assert.Equal(t, "PHP", cfg.Pricing.Currency)
	assert.Equal(t, "QT", cfg.Numbering.QuotationPrefix)
	assert.Equal(t, "SO", cfg.Numbering.SalesOrderPrefix)
	assert.Equal(t, "JO", cfg.Numbering.JobOrderPrefix)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("PRICING_MAX_ITEMS", "50")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("PRICE_CACHE_TTL_SECONDS", "60")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Pricing.MaxItems)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_MaxItemsInvalido(t *testing.T) {
	t.Setenv("PRICING_MAX_ITEMS", "0")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w", DBName: "cotizador", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw@db:5432/cotizador?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
