// Package config loads the client configuration from a YAML file with
// environment overrides for endpoints and keys.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"api"`

	Customer struct {
		ID    string `yaml:"id"`
		Email string `yaml:"email"`
	} `yaml:"customer"`

	Storage struct {
		// Path of the local cart file. Ignored when redis is configured.
		Path  string `yaml:"path"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"storage"`

	Events struct {
		NATSURL string `yaml:"nats_url"`
	} `yaml:"events"`

	Payments struct {
		PublicKey string `yaml:"public_key"`
	} `yaml:"payments"`

	Currency string `yaml:"currency"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.API.BaseURL = "http://localhost:8080"
	cfg.Storage.Path = defaultCartPath()
	cfg.Currency = "zar"
	return cfg
}

func defaultCartPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "storefront-cart.json"
	}
	return filepath.Join(home, ".storefront", "cart.json")
}

// Load reads the file at path on top of the defaults, then applies env
// overrides. A missing file is not an error; env-only setups are common in
// containers.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: api.base_url is required")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STOREFRONT_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("STOREFRONT_REDIS_ADDR"); v != "" {
		cfg.Storage.Redis.Addr = v
	}
	if v := os.Getenv("STOREFRONT_NATS_URL"); v != "" {
		cfg.Events.NATSURL = v
	}
	if v := os.Getenv("STOREFRONT_PAYMENT_KEY"); v != "" {
		cfg.Payments.PublicKey = v
	}
	if v := os.Getenv("STOREFRONT_EMAIL"); v != "" {
		cfg.Customer.Email = v
	}
}
