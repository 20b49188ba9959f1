package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full service configuration, loaded from the environment
// with an optional .env file for local development.
type Config struct {
	Port           string        `envconfig:"AGROSTORE_PORT" default:"8081"`
	GinMode        string        `envconfig:"AGROSTORE_GIN_MODE" default:"debug"`
	JWTSecret      string        `envconfig:"AGROSTORE_JWT_SECRET" required:"true"`
	TokenTTL       time.Duration `envconfig:"AGROSTORE_TOKEN_TTL" default:"24h"`
	StorageDir     string        `envconfig:"AGROSTORE_STORAGE_DIR" default:"./storage"`
	PublicBaseURL  string        `envconfig:"AGROSTORE_PUBLIC_BASE_URL" default:"http://localhost:8081"`
	SerializeStock bool          `envconfig:"AGROSTORE_SERIALIZE_STOCK" default:"false"`
}

// Load reads the configuration from the environment. A missing .env file
// is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
