package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read, when present, before the process environment.
const DefaultEnvFile = ".env"

type (
	// Config holds everything the service reads at startup.
	Config struct {
		HTTP     HTTPConfig
		Database DatabaseConfig
		Redis    RedisConfig
		Log      LogConfig
	}

	HTTPConfig struct {
		Port            int           `env:"PORT" env-default:"3000"`
		GinMode         string        `env:"GIN_MODE" env-default:"release"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"15s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	}

	DatabaseConfig struct {
		URL        string `env:"DatabaseUrl,DATABASE_URL" env-default:"mongodb://localhost:27017"`
		Name       string `env:"DATABASE_NAME"`
		Collection string `env:"DATABASE_COLLECTION" env-default:"users"`
	}

	// RedisConfig is optional; an empty Addr disables caching and events.
	RedisConfig struct {
		Addr          string        `env:"REDIS_ADDR"`
		Password      string        `env:"REDIS_PASSWORD"`
		DB            int           `env:"REDIS_DB" env-default:"0"`
		CacheTTL      time.Duration `env:"CACHE_TTL" env-default:"5m"`
		StreamMaxLen  int64         `env:"EVENTS_STREAM_MAXLEN" env-default:"10000"`
		ConsumerGroup string        `env:"EVENTS_CONSUMER_GROUP"`
	}

	LogConfig struct {
		Level string `env:"LOG_LEVEL" env-default:"info"`
	}
)

// Addr returns the listen address for the HTTP server.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", h.Port)
}

// Enabled reports whether a Redis server was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// NewConfig exports the variables of envFile, if it exists, and then reads
// the process environment. Variables already set in the process are not
// overwritten by the file.
func NewConfig(envFile string) (*Config, error) {
	cfg := &Config{}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return errors.New("database url is empty")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.HTTP.Port)
	}
	return nil
}
