package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration, populated from environment
// variables. A .env file may supply them during local development.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,required"`

	JWTSecret          string `env:"JWT_SECRET_KEY,required"`
	JWTExpirationHours int64  `env:"JWT_EXPIRATION_HOURS" envDefault:"1"`
}

// Load parses configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing env config: %w", err)
	}
	return cfg, nil
}

// DSN builds the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
