package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"retailWarehouse/internal/geo"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Store    StoreConfig
	Session  SessionConfig
	Logging  LoggingConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Driver       string        // "postgres" or "sqlite"
	Host         string        // Postgres host
	Port         string        // Postgres port (from argv)
	Name         string        // database name (from argv)
	User         string        // database user (from argv)
	Password     string        // database password; empty by default
	SSLMode      string        // Postgres sslmode
	Path         string        // SQLite database file path
	QueryTimeout time.Duration // per-statement timeout
}

// StoreConfig contains business settings for the storefront.
type StoreConfig struct {
	Radius                 float64 // reach of a store in raw lat/long units
	RecentOrdersLimit      int     // customer order history length
	ReportLimit            int     // rows per update/popularity report
	DecrementStockOnOrder  bool
	IncrementStockOnSupply bool
}

// SessionConfig contains login session settings.
type SessionConfig struct {
	Secret string        // HMAC key for session tokens
	TTL    time.Duration // session lifetime
}

// LoggingConfig contains slog settings.
type LoggingConfig struct {
	Level  string
	Format string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	devSessionSecret = "dev-session-secret-change-me"
)

// Load loads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", ""),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", ""),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", devSessionSecret),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "warn"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	var err error
	if cfg.Database.QueryTimeout, err = getEnvDuration("DB_QUERY_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.Session.TTL, err = getEnvDuration("SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Store.Radius, err = getEnvFloat("STORE_RADIUS", geo.DefaultStoreRadius); err != nil {
		return nil, err
	}
	if cfg.Store.RecentOrdersLimit, err = getEnvInt("RECENT_ORDERS_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.Store.ReportLimit, err = getEnvInt("REPORT_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.Store.DecrementStockOnOrder, err = getEnvBool("STOCK_DECREMENT_ON_ORDER", false); err != nil {
		return nil, err
	}
	if cfg.Store.IncrementStockOnSupply, err = getEnvBool("STOCK_INCREMENT_ON_SUPPLY", false); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyArgs overrides the database target with the positional process arguments.
func (c *Config) ApplyArgs(dbName, port, user string) {
	c.Database.Name = dbName
	c.Database.Port = port
	c.Database.User = user
	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		c.Database.Path = dbName
	}
}

// Validate checks settings that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}
	if c.Store.Radius <= 0 {
		return fmt.Errorf("STORE_RADIUS must be positive, got %v", c.Store.Radius)
	}
	if c.Store.RecentOrdersLimit <= 0 || c.Store.ReportLimit <= 0 {
		return fmt.Errorf("RECENT_ORDERS_LIMIT and REPORT_LIMIT must be positive")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET must not be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %v", c.Session.TTL)
	}
	return nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	if value, exists := os.LookupEnv(key); exists {
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number for %s: %w", key, err)
		}
		return f, nil
	}
	return defaultVal, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
		}
		return b, nil
	}
	return defaultVal, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		return d, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	target := c.Database.Path
	if c.Database.Driver == DriverPostgres {
		target = fmt.Sprintf("%s@%s:%s/%s", c.Database.User, c.Database.Host, c.Database.Port, c.Database.Name)
	}
	return fmt.Sprintf("Config{DB: %s %s, Radius: %v, StockOnOrder: %t, StockOnSupply: %t, Session: *** (masked) ***}",
		c.Database.Driver, target, c.Store.Radius, c.Store.DecrementStockOnOrder, c.Store.IncrementStockOnSupply)
}
