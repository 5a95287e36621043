package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	SourceCSV      = "csv"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTableName reports whether name is a bare SQL identifier, safe to
// splice into a query without quoting.
func ValidTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}

type Config struct {
	Server    ServerConfig
	Dataset   DatasetConfig
	Logger    LoggerConfig
	Security  SecurityConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"localhost"`
	Port            int           `env:"SERVER_PORT" envDefault:"8050"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type DatasetConfig struct {
	Source       string `env:"DATASET_SOURCE" envDefault:"csv"`
	CSVFile      string `env:"CSV_FILE" envDefault:"StockX-Data-Contest-2019-3.csv"`
	DSN          string `env:"DATASET_DSN"`
	Table        string `env:"DATASET_TABLE" envDefault:"sales"`
	DefaultBrand string `env:"DEFAULT_BRAND" envDefault:"Yeezy"`
}

type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type SecurityConfig struct {
	EnableRateLimit bool     `env:"SECURITY_RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS    int      `env:"SECURITY_RATE_LIMIT_RPS" envDefault:"100"`
	RateLimitBurst  int      `env:"SECURITY_RATE_LIMIT_BURST" envDefault:"10"`
	AllowedOrigins  []string `env:"SECURITY_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8050"`
	TrustedProxies  []string `env:"SECURITY_TRUSTED_PROXIES" envSeparator:"," envDefault:"127.0.0.1"`
}

type TelemetryConfig struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"true"`
	Endpoint    string `env:"OTEL_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"sneaker-dashboard"`
}

// Load reads an optional .env file, then the process environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown timeout must be positive")
	}

	if err := c.Dataset.validate(); err != nil {
		return err
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, strings.ToLower(c.Logger.Level)) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !slices.Contains(validLogFormats, strings.ToLower(c.Logger.Format)) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}

	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	return nil
}

func (d DatasetConfig) validate() error {
	if d.DefaultBrand == "" {
		return fmt.Errorf("default brand cannot be empty")
	}

	switch d.Source {
	case SourceCSV:
		if d.CSVFile == "" {
			return fmt.Errorf("CSV file path cannot be empty")
		}
	case SourceSQLite, SourcePostgres:
		if d.DSN == "" {
			return fmt.Errorf("dataset DSN cannot be empty for source %q", d.Source)
		}
		if !ValidTableName(d.Table) {
			return fmt.Errorf("invalid dataset table name %q", d.Table)
		}
	default:
		return fmt.Errorf("invalid dataset source %q, must be one of: %s", d.Source,
			strings.Join([]string{SourceCSV, SourceSQLite, SourcePostgres}, ", "))
	}

	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LogValue keeps the dataset DSN out of the logs.
func (c *Config) LogValue() slog.Value {
	dsn := ""
	if c.Dataset.DSN != "" {
		dsn = "[redacted]"
	}
	return slog.GroupValue(
		slog.String("addr", c.Address()),
		slog.String("dataset_source", c.Dataset.Source),
		slog.String("csv_file", c.Dataset.CSVFile),
		slog.String("dataset_dsn", dsn),
		slog.String("dataset_table", c.Dataset.Table),
		slog.String("default_brand", c.Dataset.DefaultBrand),
		slog.String("log_level", c.Logger.Level),
		slog.String("log_format", c.Logger.Format),
		slog.Bool("rate_limit", c.Security.EnableRateLimit),
		slog.Bool("otel_enabled", c.Telemetry.Enabled && c.Telemetry.Endpoint != ""),
	)
}
