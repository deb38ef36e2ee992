// Package config loads service settings from environment variables.
// Configuration is resolved once at startup and immutable thereafter; any
// invalid value fails the process immediately.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Upstream model backend.
	ModelURL     string        `envconfig:"MODEL_URL" default:"http://localhost:5000"`
	ModelTimeout time.Duration `envconfig:"MODEL_TIMEOUT" default:"15s"`

	// Fallback simulation. A zero seed means seed from the wall clock.
	FallbackDelay  time.Duration `envconfig:"FALLBACK_DELAY" default:"1s"`
	SimulationSeed int64         `envconfig:"SIMULATION_SEED" default:"0"`

	// Optional run audit stream.
	KafkaEnabled bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"prediction-runs"`
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.ModelURL == "" {
		return nil, errors.New("MODEL_URL is required")
	}
	if cfg.ModelTimeout <= 0 {
		return nil, errors.New("MODEL_TIMEOUT must be positive")
	}
	if cfg.FallbackDelay <= 0 {
		return nil, errors.New("FALLBACK_DELAY must be positive")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
		}
	}

	return &cfg, nil
}
