package config

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_EXPIRATION_HOURS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.Equal(t, 6, cfg.MinPasswordLength)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Empty(t, cfg.TraceExporter)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MIN_PASSWORD_LENGTH", "10")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")

	cfg := Load()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, 10, cfg.MinPasswordLength)
	assert.Equal(t, "http://collector:4318", cfg.OTLPEndpoint)
}

func TestConfigureLogging(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)

	Config{LogLevel: "debug"}.ConfigureLogging()
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	Config{LogLevel: "bogus"}.ConfigureLogging()
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestLocation(t *testing.T) {
	loc, err := Config{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = Config{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = Config{Timezone: "Mars/Olympus"}.Location()
	assert.ErrorContains(t, err, "APP_TIMEZONE")
}
