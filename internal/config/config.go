package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config is read from the environment. Keys are the upper-cased mapstructure
// names, e.g. DATABASE_URL.
type Config struct {
	HTTPPort            string        `mapstructure:"http_port"`
	GinMode             string        `mapstructure:"gin_mode"`
	CORSAllowedOrigins  []string      `mapstructure:"cors_allowed_origins"`
	Store               string        `mapstructure:"store"`
	DatabaseURL         string        `mapstructure:"database_url"`
	DBMaxOpenConns      int           `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns      int           `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime   time.Duration `mapstructure:"db_conn_max_lifetime"`
	JWTSecret           string        `mapstructure:"jwt_secret"`
	AccessTokenTTL      time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL     time.Duration `mapstructure:"refresh_token_ttl"`
	EnforceJobOwnership bool          `mapstructure:"enforce_job_ownership"`
	ApplyRatePerMinute  int           `mapstructure:"apply_rate_per_minute"`
	RedisURL            string        `mapstructure:"redis_url"`
	GeminiAPIKey        string        `mapstructure:"gemini_api_key"`
	GeminiModel         string        `mapstructure:"gemini_model"`
	LogLevel            string        `mapstructure:"log_level"`
	LogFormat           string        `mapstructure:"log_format"`
	TracingEnabled      bool          `mapstructure:"tracing_enabled"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
}

var defaults = map[string]interface{}{
	"http_port":             "8080",
	"gin_mode":              "release",
	"cors_allowed_origins":  "*",
	"store":                 StorePostgres,
	"database_url":          "",
	"db_max_open_conns":     25,
	"db_max_idle_conns":     10,
	"db_conn_max_lifetime":  "30m",
	"jwt_secret":            "",
	"access_token_ttl":      "5m",
	"refresh_token_ttl":     "24h",
	"enforce_job_ownership": true,
	"apply_rate_per_minute": 10,
	"redis_url":             "",
	"gemini_api_key":        "",
	"gemini_model":          "gemini-2.5-flash",
	"log_level":             "info",
	"log_format":            "json",
	"tracing_enabled":       false,
	"request_timeout":       "10s",
}

// Load reads configuration from the environment on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("cors_allowed_origins"))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORE=postgres")
		}
	case StoreMemory:
	default:
		return errors.New("STORE must be postgres or memory")
	}
	if c.ApplyRatePerMinute < 0 {
		return errors.New("APPLY_RATE_PER_MINUTE must be zero (off) or positive")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
