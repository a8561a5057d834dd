package config

import "os"

const (
	// DefaultPort is used when PORT is not set.
	DefaultPort = "8080"
	// DefaultDatabaseURL matches the local docker-compose setup.
	DefaultDatabaseURL = "host=localhost user=user password=password dbname=roomchat port=5432 sslmode=disable"
)

// SeedRooms are created (if absent) at startup so a fresh deployment has
// something to join. Creation is idempotent, so restarts are harmless.
var SeedRooms = []string{"General", "Technology", "Random"}

// Config holds the process-level settings.
type Config struct {
	Port        string
	DatabaseURL string
}

// Load reads configuration from the environment, falling back to development
// defaults. Loading a .env file (godotenv) happens in main before this runs.
func Load() Config {
	cfg := Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DefaultDatabaseURL
	}
	return cfg
}
