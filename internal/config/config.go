// Package config reads the service settings from the environment, after
// loading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	CatalogEmbedded = "embedded"
	CatalogDir      = "dir"
	CatalogPostgres = "postgres"
)

type Config struct {
	Addr          string  `env:"ADDR" envDefault:":8443"`
	TLSCert       string  `env:"TLS_CERT"`
	TLSKey        string  `env:"TLS_KEY"`
	TokenKey      string  `env:"TOKEN_KEY,required,notEmpty"`
	DatabaseURL   string  `env:"DATABASE_URL" envDefault:"user=postgres dbname=postgres password=password sslmode=disable"`
	CatalogSource string  `env:"CATALOG_SOURCE" envDefault:"embedded"`
	CatalogDir    string  `env:"CATALOG_DIR" envDefault:"./data"`
	SeedCatalog   bool    `env:"SEED_CATALOG"`
	RateLimit     float64 `env:"RATE_LIMIT" envDefault:"1"`
	RateBurst     int     `env:"RATE_BURST" envDefault:"3"`
}

// Load reads .env files (if any) into the process environment and parses it.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.CatalogSource {
	case CatalogEmbedded, CatalogPostgres:
	case CatalogDir:
		if c.CatalogDir == "" {
			return fmt.Errorf("CATALOG_DIR is required when CATALOG_SOURCE=dir")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return fmt.Errorf("TLS_CERT and TLS_KEY must be set together")
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT and RATE_BURST must be positive")
	}
	return nil
}

func (c Config) TLS() bool {
	return c.TLSCert != ""
}
