package config

import (
	"fmt"

	pkgconfig "github.com/trendella/storefront/pkg/config"
)

// Storage backend selectors.
const (
	StorageBackendMemory = "memory"
	StorageBackendCloud  = "cloud"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// MongoDB
	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"storefront_db"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Image storage
	StorageBackend   string `env:"STORAGE_BACKEND" envDefault:"memory"`
	StorageUploadURL string `env:"STORAGE_UPLOAD_URL" envDefault:"http://localhost:9000/upload"`
	MaxImageBytes    int64  `env:"MAX_IMAGE_BYTES" envDefault:"5242880"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.MongoDB == "" {
		return nil, fmt.Errorf("MONGO_DB is required")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS is required")
	}
	if cfg.StorageBackend != StorageBackendMemory && cfg.StorageBackend != StorageBackendCloud {
		return nil, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q",
			StorageBackendMemory, StorageBackendCloud, cfg.StorageBackend)
	}
	if cfg.StorageBackend == StorageBackendCloud && cfg.StorageUploadURL == "" {
		return nil, fmt.Errorf("STORAGE_UPLOAD_URL is required for the cloud storage backend")
	}
	if cfg.MaxImageBytes <= 0 {
		return nil, fmt.Errorf("MAX_IMAGE_BYTES must be positive, got %d", cfg.MaxImageBytes)
	}
	if cfg.OTELSampleRate < 0 || cfg.OTELSampleRate > 1.0 {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", cfg.OTELSampleRate)
	}
	return cfg, nil
}
