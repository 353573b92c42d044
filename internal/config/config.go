package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	ServerPort string
	GinMode    string

	LogLevel  string
	LogFormat string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	BoardCacheTTL time.Duration

	AutoMigrate       bool
	BoardTemplateFile string
	BoardTemplate     BoardTemplate
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Info("⚠️  No .env file found, using system environment variables")
	}

	var errs *multierror.Error

	cfg := &Config{
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "baudboard"),
		DBPassword:        getEnv("DB_PASSWORD", "baudboard"),
		DBName:            getEnv("DB_NAME", "baudboard"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "release"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		BoardTemplateFile: getEnv("BOARD_TEMPLATE_FILE", ""),
	}

	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("invalid REDIS_DB: %w", err))
	}
	if cfg.BoardCacheTTL, err = time.ParseDuration(getEnv("BOARD_CACHE_TTL", "30s")); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("invalid BOARD_CACHE_TTL: %w", err))
	}
	if cfg.AutoMigrate, err = strconv.ParseBool(getEnv("AUTO_MIGRATE", "true")); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("invalid AUTO_MIGRATE: %w", err))
	}

	cfg.BoardTemplate = DefaultBoardTemplate()
	if cfg.BoardTemplateFile != "" {
		tmpl, err := LoadBoardTemplate(cfg.BoardTemplateFile)
		if err != nil {
			errs = multierror.Append(errs, err)
		} else {
			cfg.BoardTemplate = tmpl
		}
	}

	if err := cfg.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return cfg, errs.ErrorOrNil()
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs *multierror.Error
	if c.ServerPort == "" {
		errs = multierror.Append(errs, fmt.Errorf("SERVER_PORT must not be empty"))
	}
	if c.DBHost == "" || c.DBName == "" {
		errs = multierror.Append(errs, fmt.Errorf("DB_HOST and DB_NAME must not be empty"))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("invalid LOG_LEVEL: %w", err))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = multierror.Append(errs, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", c.LogFormat))
	}
	if c.BoardCacheTTL < 0 {
		errs = multierror.Append(errs, fmt.Errorf("BOARD_CACHE_TTL must not be negative"))
	}
	if err := c.BoardTemplate.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs.ErrorOrNil()
}

// DSN returns the PostgreSQL connection string used by gorm.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// MigrationURL returns the connection URL understood by golang-migrate's pgx/v5 driver.
func (c *Config) MigrationURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
