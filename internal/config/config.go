package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store holds the sections needed to reach the database and read reports.
type Store struct {
	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"orderregistrationform"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"false"`
	}

	Report struct {
		Timezone string `envconfig:"REPORT_TIMEZONE" default:"Local"`
	}
}

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"OrderShare"`
		Port     int    `envconfig:"PORT" default:"8000"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	Store

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Auth struct {
		Secret   string        `envconfig:"AUTH_SECRET" required:"true"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"87600h"`

		// Bootstrap admin, created on startup when both are set and the user is missing.
		AdminUsername string `envconfig:"AUTH_ADMIN_USERNAME"`
		AdminPassword string `envconfig:"AUTH_ADMIN_PASSWORD"`
	}

	Import struct {
		MaxUploadBytes int64 `envconfig:"IMPORT_MAX_UPLOAD_BYTES" default:"10485760"`
	}
}

func (s *Store) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		s.DB.User, s.DB.Password, s.DB.Host, s.DB.Port, s.DB.Name)
}

// Location resolves the timezone used to turn report timestamps into dates.
func (s *Store) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading report timezone %q: %w", s.Report.Timezone, err)
	}

	return loc, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

// LoadStore reads only the database and report sections. AUTH_SECRET is not
// required.
func LoadStore() (*Store, error) {
	var s Store
	if err := envconfig.Process("", &s); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &s, nil
}
