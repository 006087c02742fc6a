package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment
// variables. Defaults are documented in the struct tags.
type Config struct {
	Service  ServiceConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
}

// ServiceConfig holds process-level settings.
type ServiceConfig struct {
	Name           string `envconfig:"OTEL_SERVICE_NAME" default:"inventory-service"`
	Environment    string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPPort       string `envconfig:"HTTP_PORT" default:"8001"`
	JaegerEndpoint string `envconfig:"JAEGER_ENDPOINT" default:"http://localhost:14268/api/traces"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"postgres"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	Name     string `envconfig:"POSTGRES_DB" default:"inventory_db"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

// KafkaConfig holds message bus settings.
type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
}

// AuthConfig holds token verification settings.
type AuthConfig struct {
	JWTSecret string `envconfig:"JWT_SECRET" default:"dev-secret"`
}

// IsDevelopment returns true if running in development mode.
func (s ServiceConfig) IsDevelopment() bool {
	return s.Environment == "development"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
