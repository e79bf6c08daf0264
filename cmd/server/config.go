package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is loaded once at startup from the environment. The signing key
// lives here and is handed to the auth package explicitly; it must never be
// logged.
type Config struct {
	ServerAddr string `env:"SERVER_ADDR" envDefault:":9876"`
	DBUser     string `env:"DB_USER,required"`
	DBPass     string `env:"DB_PASS,required"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost:5432"`
	DBName     string `env:"DB_NAME" envDefault:"authapi"`
	SigningKey string `env:"AUTH_SIGNING_KEY,required"`
	Issuer     string `env:"AUTH_ISSUER" envDefault:"go-auth-api"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBName,
	)
}

func (c *Config) GetSigningKey() string { return c.SigningKey }

func (c *Config) GetIssuer() string { return c.Issuer }

func (c *Config) GetContextKey() string { return "user" }

func (c *Config) GetAuthScheme() string { return "Bearer" }

func (c *Config) GetTokenLookup() string { return "header:Authorization" }
