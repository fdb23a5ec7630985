package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ServerConfig is the process configuration read from the environment.
type ServerConfig struct {
	Address            string `env:"TECHNONOMICON_ADDR" envDefault:":8080"`
	CatalogPath        string `env:"TECHNONOMICON_CATALOG"`
	DBPath             string `env:"TECHNONOMICON_DB" envDefault:"technonomicon.db"`
	Seed               int64  `env:"TECHNONOMICON_SEED"`
	EvolutionThreshold int    `env:"TECHNONOMICON_EVOLUTION_THRESHOLD" envDefault:"500"`
	LogLevel           string `env:"TECHNONOMICON_LOG_LEVEL" envDefault:"info"`
	GinMode            string `env:"GIN_MODE" envDefault:"release"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServerConfig parses ServerConfig from the environment.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}
	if cfg.EvolutionThreshold <= 0 {
		return ServerConfig{}, fmt.Errorf("parse env: TECHNONOMICON_EVOLUTION_THRESHOLD must be positive, got %d", cfg.EvolutionThreshold)
	}
	return cfg, nil
}
