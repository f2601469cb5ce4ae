// Package config loads the service configuration from the environment.
//
// A `.env` file in the working directory is loaded first (if present), then
// known variables such as PORT or DB_HOST are mapped onto the Config struct.
// Anything not set keeps the default from Default().
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Upload    UploadConfig    `koanf:"upload"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

type AppConfig struct {
	Env      string `koanf:"env" validate:"required"`
	LogLevel string `koanf:"log_level" validate:"required"`
}

// IsProduction switches gin to release mode and logs to JSON.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required,numeric"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"gte=0"`
}

type DatabaseConfig struct {
	Host         string `koanf:"host" validate:"required"`
	Port         int    `koanf:"port" validate:"required,gt=0"`
	User         string `koanf:"user" validate:"required"`
	Password     string `koanf:"password"`
	Name         string `koanf:"name" validate:"required"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"gte=1"`
}

// DSN builds the go-sql-driver/mysql connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type UploadConfig struct {
	Dir      string `koanf:"dir" validate:"required"`
	MaxBytes int64  `koanf:"max_bytes" validate:"gte=0"`
}

// RateLimitConfig disables the per-IP limiter when RPS is 0.
type RateLimitConfig struct {
	RPS   float64 `koanf:"rps" validate:"gte=0"`
	Burst int     `koanf:"burst" validate:"gte=1"`
}

// envKeys maps the supported environment variables to koanf key paths.
var envKeys = map[string]string{
	"APP_ENV":                  "app.env",
	"LOG_LEVEL":                "app.log_level",
	"PORT":                     "server.port",
	"CORS_ALLOWED_ORIGINS":     "server.cors_allowed_origins",
	"SHUTDOWN_TIMEOUT_SECONDS": "server.shutdown_timeout",
	"DB_HOST":                  "database.host",
	"DB_PORT":                  "database.port",
	"DB_USER":                  "database.user",
	"DB_PASSWORD":              "database.password",
	"DB_NAME":                  "database.name",
	"DB_MAX_OPEN_CONNS":        "database.max_open_conns",
	"UPLOAD_DIR":               "upload.dir",
	"UPLOAD_MAX_BYTES":         "upload.max_bytes",
	"RATE_LIMIT_RPS":           "rate_limit.rps",
	"RATE_LIMIT_BURST":         "rate_limit.burst",
}

// Default mirrors the original deployment: local MySQL as root with an empty
// password, database blood_bank, port 5000.
func Default() Config {
	return Config{
		App: AppConfig{
			Env:      "development",
			LogLevel: "info",
		},
		Server: ServerConfig{
			Port:               "5000",
			CORSAllowedOrigins: []string{"*"},
			ShutdownTimeout:    5,
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         3306,
			User:         "root",
			Password:     "",
			Name:         "blood_bank",
			MaxOpenConns: 1,
		},
		Upload: UploadConfig{
			Dir:      "uploads",
			MaxBytes: 10 << 20,
		},
		RateLimit: RateLimitConfig{
			RPS:   0,
			Burst: 10,
		},
	}
}

// corsOriginsKey holds a comma separated list in the environment.
const corsOriginsKey = "server.cors_allowed_origins"

// Load reads the environment on top of Default and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue("", ".", func(name, value string) (string, interface{}) {
		key := envKeys[name]
		if key == corsOriginsKey {
			return key, strings.Split(value, ",")
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	origins := cfg.Server.CORSAllowedOrigins[:0]
	for _, origin := range cfg.Server.CORSAllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	cfg.Server.CORSAllowedOrigins = origins

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
