package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	Port        string
	CORSOrigins []string
	SeedDemo    bool
	Database    DatabaseConfig
}

type DatabaseConfig struct {
	Driver string
	// DSN is driver specific: a go-sql-driver DSN for mysql, a file path or
	// "file:" URI for sqlite.
	DSN      string
	Name     string
	LogLevel logger.LogLevel

	// NowFunc overrides the clock used for created_at/updated_at.
	NowFunc func() time.Time
}

// Load reads .env (optional) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	db, err := loadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:        envOrDefault("PORT", "8080"),
		CORSOrigins: parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		SeedDemo:    envBool("SEED_DEMO", false),
		Database:    db,
	}, nil
}

func loadDatabaseConfig() (DatabaseConfig, error) {
	cfg := DatabaseConfig{
		Driver:   strings.ToLower(envOrDefault("DB_DRIVER", DriverMySQL)),
		LogLevel: parseLogLevel(os.Getenv("DB_LOG_LEVEL")),
	}

	switch cfg.Driver {
	case DriverSQLite:
		cfg.DSN = envOrDefault("SQLITE_PATH", "rental.db")
	case DriverMySQL:
		dsn, name, err := resolveMySQLDSN()
		if err != nil {
			return cfg, err
		}
		cfg.DSN, cfg.Name = dsn, name
	default:
		return cfg, errUnsupportedDriver(cfg.Driver)
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("warning: %s=%q is not a boolean, using %v", key, raw, def)
		return def
	}
	return v
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func parseLogLevel(raw string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
