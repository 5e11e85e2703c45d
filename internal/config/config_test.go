package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("BOOKING_JWT_SECRET", "secret")
	t.Setenv("BOOKING_SERVICE_PORT", "9090")
	t.Setenv("BOOKING_KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("BOOKING_BACKOFFICE_URL", "http://backend:8000/api/")
	t.Setenv("BOOKING_SESSION_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
	assert.Equal(t, "http://backend:8000/api", cfg.BackofficeConfig.BaseURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionConfig.TTL)
	assert.Equal(t, time.Minute, cfg.SessionConfig.SweepInterval)
	assert.Equal(t, "booking_wizard", cfg.DBConfig.DBName)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("BOOKING_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_URLs(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", c.DatabaseURL())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", c.DSN())
}
