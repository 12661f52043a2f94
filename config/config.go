package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	AppEnv             string
	AppPort            string
	Timezone           string
	AllowedOrigins     string
	LogLevel           string
	DBDriver           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	SQLitePath         string
	DBMaxIdleConns     int
	DBMaxOpenConns     int
	NatsURL            string
	RedisAddr          string
	RedisPassword      string
	TraceExporter      string
	OTLPEndpoint       string
	JWTSecret          string
	JWTExpirationHours int
	MinPasswordLength  int
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Debugf("%s not set, defaulting to %s", key, defaultValue)
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Warnf("Invalid integer value for %s, defaulting to %d", key, defaultValue)
	}
	return defaultValue
}

// Load reads configuration from the environment. A .env file in the working
// directory, when present, is applied first without overriding variables that
// are already set.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment variables")
	}

	return Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		AppPort:            getEnv("APP_PORT", "8080"),
		Timezone:           getEnv("APP_TIMEZONE", "UTC"),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "*"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DBDriver:           getEnv("DB_DRIVER", "postgres"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "taskflow"),
		DBPassword:         getEnv("DB_PASSWORD", "taskflow"),
		DBName:             getEnv("DB_NAME", "taskflow"),
		SQLitePath:         getEnv("SQLITE_PATH", "taskflow.db"),
		DBMaxIdleConns:     getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:     getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		TraceExporter:      getEnv("TRACE_EXPORTER", ""),
		OTLPEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		MinPasswordLength:  getEnvAsInt("MIN_PASSWORD_LENGTH", 6),
	}
}

// ConfigureLogging applies the configured level to the global logger.
func (c Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("Invalid LOG_LEVEL %q, defaulting to info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.AppEnv == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}

// Location resolves Timezone, the IANA zone whose calendar decides due dates
// and overdue detection.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
