package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables with the TODO_ prefix
// (e.g. TODO_SERVER_PORT, TODO_AUTH_JWT_SECRET). Values not present in the
// environment fall back to defaults; settings without a safe default, such as
// the JWT secret and database URI, must be supplied and are validated here.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for everything that has a safe one.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.name", "restdb")
	v.SetDefault("auth.token_lifetime_minutes", 1440)          // 1 day
	v.SetDefault("auth.refresh_token_lifetime_minutes", 43200) // 30 days

	// Environment variables take precedence: TODO_SERVER_PORT -> server.port.
	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so bind the
	// keys that have no default explicitly.
	for _, key := range []string{"database.uri", "auth.jwt_secret"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
