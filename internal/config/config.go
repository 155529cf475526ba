package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// Deployment environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Environment string `mapstructure:"environment" validate:"required,oneof=development production test"`
}

// IsProduction reports whether internal error detail must be hidden from clients.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == EnvProduction
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"gte=1,lte=1440"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"gte=1440,lte=43200"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// TokenLifetime returns the access token lifetime.
func (a AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(a.TokenLifetimeMinutes) * time.Minute
}

// RefreshTokenLifetime returns the refresh token lifetime.
func (a AuthConfig) RefreshTokenLifetime() time.Duration {
	return time.Duration(a.RefreshTokenLifetimeMinutes) * time.Minute
}

// CacheConfig configures the optional Redis cache. An empty RedisURL disables it.
type CacheConfig struct {
	RedisURL         string `mapstructure:"redis_url" validate:"omitempty,url"`
	RatingTTLSeconds int    `mapstructure:"rating_ttl_seconds" validate:"gte=1"`
}

// Enabled reports whether a Redis URL was configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

// RatingTTL returns how long cached rating summaries stay valid.
func (c CacheConfig) RatingTTL() time.Duration {
	return time.Duration(c.RatingTTLSeconds) * time.Second
}
