package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Addr           string        `mapstructure:"addr" validate:"required"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`

	DatabaseURL       string        `mapstructure:"database_url" validate:"required"`
	DBMaxOpenConns    int           `mapstructure:"db_max_open_conns" validate:"gte=1"`
	DBMaxIdleConns    int           `mapstructure:"db_max_idle_conns" validate:"gte=0"`
	DBConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime" validate:"gte=0"`
	QueryTimeout      time.Duration `mapstructure:"query_timeout" validate:"gt=0"`

	LogLevel   string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	PrettyLogs bool   `mapstructure:"pretty_logs"`

	RateLimitRPS   float64 `mapstructure:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" validate:"gte=1"`

	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" validate:"gte=0"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`

	// StrictFilters rejects unparseable query filters with 400 instead of
	// ignoring them.
	StrictFilters bool `mapstructure:"strict_filters"`
}

// CacheEnabled reports whether responses should be cached in Redis.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != "" && c.CacheTTL > 0
}

var defaults = map[string]any{
	"addr":                 ":8080",
	"read_timeout":         5 * time.Second,
	"write_timeout":        10 * time.Second,
	"idle_timeout":         120 * time.Second,
	"request_timeout":      30 * time.Second,
	"database_url":         "",
	"db_max_open_conns":    10,
	"db_max_idle_conns":    5,
	"db_conn_max_lifetime": 30 * time.Minute,
	"query_timeout":        5 * time.Second,
	"log_level":            "info",
	"pretty_logs":          false,
	"rate_limit_rps":       10.0,
	"rate_limit_burst":     20,
	"redis_addr":           "",
	"redis_password":       "",
	"redis_db":             0,
	"cache_ttl":            time.Duration(0),
	"strict_filters":       false,
}

// Load reads configuration from the environment (after loading a .env file
// if one exists) and from configFile when it is not empty.
func Load(configFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
