package server

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/viper"
)

type BaseServerConfig struct {
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	Log        LogServerConfig        `mapstructure:"log"        yaml:"log"`
	HTTP       HTTPServerConfig       `mapstructure:"http"       yaml:"http"`
	Database   DatabaseServerConfig   `mapstructure:"database"   yaml:"database"`
	Pagination PaginationServerConfig `mapstructure:"pagination" yaml:"pagination"`
}

func LoadServerConfig() (*BaseServerConfig, error) {
	cfg := &BaseServerConfig{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the agent could not run with
func (cfg *BaseServerConfig) Validate() error {
	switch cfg.Database.Type {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database type '%s' (expected postgres or sqlite)", cfg.Database.Type)
	}

	if cfg.Pagination.MaxLimit < 1 {
		return fmt.Errorf("pagination.max_limit must be at least 1")
	}
	if cfg.Pagination.DefaultLimit < 1 || cfg.Pagination.DefaultLimit > cfg.Pagination.MaxLimit {
		return fmt.Errorf("pagination.default_limit must be between 1 and %d", cfg.Pagination.MaxLimit)
	}

	if cfg.Pagination.MaxPage < 0 {
		return fmt.Errorf("pagination.max_page must not be negative")
	}
	if int64(cfg.Pagination.MaxLimit)*int64(cfg.Pagination.MaxPage) > math.MaxInt32 {
		return fmt.Errorf("pagination.max_limit * pagination.max_page must not exceed %d", math.MaxInt32)
	}

	for key, value := range map[string]string{
		"shutdown_timeout":   cfg.ShutdownTimeout,
		"http.read_timeout":  cfg.HTTP.ReadTimeout,
		"http.write_timeout": cfg.HTTP.WriteTimeout,
		"http.idle_timeout":  cfg.HTTP.IdleTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// Duration parses a duration string and falls back to def when it is empty or invalid
func Duration(value string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}
