package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	Port string

	// DataRoot is the directory holding one <location>.csv per location.
	DataRoot string

	// ColumnsReferenceLocation is the location whose header /columns reports.
	ColumnsReferenceLocation string

	// AuditInterval controls the data-root audit job (0 = disabled).
	AuditInterval time.Duration

	LogLevel  logrus.Level
	LogFormat string // text or json

	CORSAllowOrigins string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Info("no .env file found or error loading it")
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.DataRoot = getenvDefault("DATA_ROOT", "./data")
	cfg.ColumnsReferenceLocation = getenvDefault("COLUMNS_REFERENCE_LOCATION", "osaka")
	cfg.CORSAllowOrigins = getenvDefault("CORS_ALLOW_ORIGINS", "*")

	var err error
	if cfg.AuditInterval, err = getenvDuration("AUDIT_INTERVAL", "0"); err != nil {
		return nil, err
	}
	if cfg.AuditInterval < 0 {
		return nil, fmt.Errorf("invalid AUDIT_INTERVAL: must not be negative")
	}
	if cfg.ReadTimeout, err = getenvDuration("HTTP_READ_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getenvDuration("HTTP_WRITE_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	level, err := logrus.ParseLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.LogFormat = strings.ToLower(getenvDefault("LOG_FORMAT", "text"))
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: use text or json", cfg.LogFormat)
	}

	return cfg, nil
}

// NewLogger builds the process logger from the configured level and format.
func (c *AppConfig) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	raw := getenvDefault(key, def)
	// Bare integers are taken as seconds.
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
