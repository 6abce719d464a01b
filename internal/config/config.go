// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverFile     = "file"
)

// App is the process-wide configuration.
type App struct {
	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// Storage
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"file"`
	PostgresDSN   string `envconfig:"POSTGRES_DSN"`
	DataDir       string `envconfig:"DATA_DIR" default:"data"`
	UploadsDir    string `envconfig:"UPLOADS_DIR" default:"data/uploads"`

	// Auth
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
}

// Load reads .env (if present) and the environment, then validates
// driver-specific requirements.
func Load() (App, error) {
	_ = godotenv.Load()

	var c App
	if err := envconfig.Process("", &c); err != nil {
		return App{}, err
	}
	switch c.StorageDriver {
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return App{}, fmt.Errorf("POSTGRES_DSN required for driver %q", DriverPostgres)
		}
	case DriverFile:
	default:
		return App{}, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	return c, nil
}
