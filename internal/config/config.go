// Package config resolves runtime settings with precedence ENV > file > defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the Copernicus Data Space Ecosystem endpoints.
const (
	DefaultCatalogueURL = "https://catalogue.dataspace.copernicus.eu/odata/v1"
	DefaultIdentityURL  = "https://identity.dataspace.copernicus.eu/auth/realms/CDSE/protocol/openid-connect/token"
	DefaultDownloadURL  = "https://download.dataspace.copernicus.eu/odata/v1"
)

// Config holds the resolved runtime configuration.
type Config struct {
	CatalogueURL string        `yaml:"catalogue_url"`
	IdentityURL  string        `yaml:"identity_url"`
	DownloadURL  string        `yaml:"download_url"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password"`
	LogLevel     string        `yaml:"log_level"`
	Concurrency  int           `yaml:"concurrency"`
	Timeout      time.Duration `yaml:"timeout"`
	// RequestsPerSecond throttles catalogue requests. Zero disables throttling.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

func defaults() Config {
	return Config{
		CatalogueURL:      DefaultCatalogueURL,
		IdentityURL:       DefaultIdentityURL,
		DownloadURL:       DefaultDownloadURL,
		LogLevel:          "info",
		Concurrency:       4,
		Timeout:           30 * time.Second,
		RequestsPerSecond: 0,
	}
}

// Load resolves configuration with precedence ENV > file > defaults.
// path may be empty, in which case only environment and defaults apply.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.CatalogueURL = ParseString("CDSE_CATALOGUE_URL", cfg.CatalogueURL)
	cfg.IdentityURL = ParseString("CDSE_IDENTITY_URL", cfg.IdentityURL)
	cfg.DownloadURL = ParseString("CDSE_DOWNLOAD_URL", cfg.DownloadURL)
	cfg.Username = ParseString("CDSE_USERNAME", cfg.Username)
	cfg.Password = ParseString("CDSE_PASSWORD", cfg.Password)
	cfg.LogLevel = ParseString("CDSE_LOG_LEVEL", cfg.LogLevel)
	cfg.Concurrency = ParseInt("CDSE_CONCURRENCY", cfg.Concurrency)
	cfg.Timeout = ParseDuration("CDSE_TIMEOUT", cfg.Timeout)
	cfg.RequestsPerSecond = ParseFloat("CDSE_REQUESTS_PER_SECOND", cfg.RequestsPerSecond)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.CatalogueURL == "" {
		return fmt.Errorf("catalogue URL must not be empty")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
