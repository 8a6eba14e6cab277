package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "standard", cfg.Catalog.Variant)
	assert.Equal(t, "MMG", cfg.Workflow.CentralDepartment)
	assert.False(t, cfg.Kafka.Enabled())
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 60, cfg.JWT.Expiration)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "SQLite")
	v.Set("HTTP_PORT", "9090")
	v.Set("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	v.Set("METRICS_ENABLED", "false")
	v.Set("CATALOG_VARIANT", "Extended")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StorageDriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "extended", cfg.Catalog.Variant)
}

func TestFromViper_UnknownDriver(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/inv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
