package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	DatabaseURL string `yaml:"database_url"`
	JWKSURL     string `yaml:"jwks_url"`
	CORSOrigins string `yaml:"cors_origins"`
	TablePrefix string `yaml:"table_prefix"`
}

// Load builds the configuration from an optional YAML file (CONFIG_FILE)
// overridden by environment variables. Environment variables always win so
// a deployment can patch a single value without editing the file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        "8080",
		Environment: "dev",
		CORSOrigins: "http://localhost:3000",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	overrideEnv(&cfg.Port, "PORT")
	overrideEnv(&cfg.Environment, "ENVIRONMENT")
	overrideEnv(&cfg.DatabaseURL, "DATABASE_URL")
	overrideEnv(&cfg.JWKSURL, "JWKS_URL")
	overrideEnv(&cfg.CORSOrigins, "CORS_ORIGINS")
	overrideEnv(&cfg.TablePrefix, "TABLE_PREFIX")

	if cfg.TablePrefix == "" {
		cfg.TablePrefix = tablePrefixFor(cfg.Environment)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

// tablePrefixFor returns the table prefix based on environment
func tablePrefixFor(env string) string {
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func overrideEnv(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}
