package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TRAVEL"

// envBindings lists the environment variables bound to each key, in
// precedence order. The unprefixed names are accepted for compatibility
// with existing deployments.
var envBindings = []struct {
	key     string
	envVars []string
}{
	{"server.port", []string{"TRAVEL_SERVER_PORT", "PORT"}},
	{"server.log_level", []string{"TRAVEL_SERVER_LOG_LEVEL"}},
	{"server.environment", []string{"TRAVEL_SERVER_ENVIRONMENT", "NODE_ENV"}},
	{"database.url", []string{"TRAVEL_DATABASE_URL", "DATABASE_URL"}},
	{"database.max_open_conns", []string{"TRAVEL_DATABASE_MAX_OPEN_CONNS"}},
	{"database.auto_migrate", []string{"TRAVEL_DATABASE_AUTO_MIGRATE"}},
	{"auth.jwt_secret", []string{"TRAVEL_AUTH_JWT_SECRET", "JWT_SECRET"}},
	{"auth.token_lifetime_minutes", []string{"TRAVEL_AUTH_TOKEN_LIFETIME_MINUTES"}},
	{"auth.refresh_token_lifetime_minutes", []string{"TRAVEL_AUTH_REFRESH_TOKEN_LIFETIME_MINUTES"}},
	{"auth.bcrypt_cost", []string{"TRAVEL_AUTH_BCRYPT_COST"}},
	{"cache.redis_url", []string{"TRAVEL_CACHE_REDIS_URL", "REDIS_URL"}},
	{"cache.rating_ttl_seconds", []string{"TRAVEL_CACHE_RATING_TTL_SECONDS"}},
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from config files. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file path. An empty path searches
// the working directory for config.yaml and tolerates its absence.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, b := range envBindings {
		args := append([]string{b.key}, b.envVars...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("error binding environment variables for %s: %w", b.key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.environment", EnvDevelopment)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.rating_ttl_seconds", 300)
}
