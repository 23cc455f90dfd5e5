package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	ServerHost  string `mapstructure:"server_host"`
	ServerPort  string `mapstructure:"server_port"`
	DatabaseDSN string `mapstructure:"database_dsn"`
	AdminToken  string `mapstructure:"admin_token"`
}

// Load reads the engine configuration. Environment variables override file
// values, so a bare .env deployment works without a config file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")

	v.BindEnv("server_host", "SERVER_HOST")
	v.BindEnv("server_port", "SERVER_PORT")
	v.BindEnv("database_dsn", "DATABASE_DSN")
	v.BindEnv("admin_token", "ADMIN_TOKEN")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("database_dsn is required")
	}
	return &cfg, nil
}
