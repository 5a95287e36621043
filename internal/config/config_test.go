package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8050 {
		t.Errorf("Server.Port = %d, want 8050", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 10s", cfg.Server.ReadTimeout)
	}
	if cfg.Dataset.Source != SourceCSV {
		t.Errorf("Dataset.Source = %q, want %q", cfg.Dataset.Source, SourceCSV)
	}
	if cfg.Dataset.DefaultBrand != "Yeezy" {
		t.Errorf("Dataset.DefaultBrand = %q, want Yeezy", cfg.Dataset.DefaultBrand)
	}
	if cfg.Address() != "localhost:8050" {
		t.Errorf("Address() = %q, want localhost:8050", cfg.Address())
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_WRITE_TIMEOUT", "3s")
	t.Setenv("DATASET_SOURCE", "sqlite")
	t.Setenv("DATASET_DSN", "file:sales.db")
	t.Setenv("DATASET_TABLE", "orders")
	t.Setenv("SECURITY_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.WriteTimeout != 3*time.Second {
		t.Errorf("Server.WriteTimeout = %v, want 3s", cfg.Server.WriteTimeout)
	}
	if cfg.Dataset.Table != "orders" {
		t.Errorf("Dataset.Table = %q, want orders", cfg.Dataset.Table)
	}
	if len(cfg.Security.AllowedOrigins) != 2 || cfg.Security.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("AllowedOrigins = %v", cfg.Security.AllowedOrigins)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"port out of range", map[string]string{"SERVER_PORT": "70000"}, "server port"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "invalid log level"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "invalid log format"},
		{"unknown source", map[string]string{"DATASET_SOURCE": "parquet"}, "invalid dataset source"},
		{"sqlite without dsn", map[string]string{"DATASET_SOURCE": "sqlite"}, "DSN cannot be empty"},
		{"bad table name", map[string]string{"DATASET_SOURCE": "postgres", "DATASET_DSN": "postgres://x", "DATASET_TABLE": "sales; drop"}, "invalid dataset table"},
		{"zero burst", map[string]string{"SECURITY_RATE_LIMIT_BURST": "0"}, "rate limit burst"},
		{"unparsable duration", map[string]string{"SERVER_READ_TIMEOUT": "soon"}, "parse env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_LogValueRedactsDSN(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Host: "localhost", Port: 8050},
		Dataset: DatasetConfig{Source: SourcePostgres, DSN: "postgres://user:secret@db/sales"},
	}

	got := cfg.LogValue().String()
	if strings.Contains(got, "secret") {
		t.Errorf("LogValue() leaked DSN: %s", got)
	}
	if !strings.Contains(got, "[redacted]") {
		t.Errorf("LogValue() = %s, want redacted marker", got)
	}
}

func TestValidTableName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"sales", true},
		{"_stockx_2019", true},
		{"Sales2", true},
		{"", false},
		{"2019_sales", false},
		{"public.sales", false},
		{"sales; DROP TABLE sales", false},
		{`"sales"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidTableName(tt.name); got != tt.want {
				t.Errorf("ValidTableName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
