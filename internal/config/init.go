package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the settings read from .env and the environment.
type Config struct {
	Env           string        `mapstructure:"APP_ENV"`
	Port          string        `mapstructure:"APP_PORT"`
	DBDriver      string        `mapstructure:"DB_DRIVER"`
	DBDSN         string        `mapstructure:"DB_DSN"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	MediaRoot     string        `mapstructure:"MEDIA_ROOT"`
	MediaURL      string        `mapstructure:"MEDIA_URL"`
	MaxUploadMB   int           `mapstructure:"MAX_UPLOAD_MB"`
	IndexCacheTTL time.Duration `mapstructure:"INDEX_CACHE_TTL"`
}

// MaxUploadBytes is the upload limit for post images.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("MEDIA_ROOT", "media")
	v.SetDefault("MEDIA_URL", "/media/")
	v.SetDefault("MAX_UPLOAD_MB", 10)
	v.SetDefault("INDEX_CACHE_TTL", 20*time.Second)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER %q is not supported", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is not set")
	}
	if c.RedisAddr == "" {
		return errors.New("REDIS_ADDR is not set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	if c.IndexCacheTTL <= 0 {
		return errors.New("INDEX_CACHE_TTL must be positive")
	}
	return nil
}
