package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Extractor ExtractorConfig
	Cache     CacheConfig
	Database  DatabaseConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type ExtractorConfig struct {
	BinaryPath         string        `envconfig:"YTDLP_PATH" default:"yt-dlp"`
	Timeout            time.Duration `envconfig:"YTDLP_TIMEOUT" default:"90s"`
	ResolveConcurrency int           `envconfig:"RESOLVE_CONCURRENCY" default:"4"`
}

type CacheConfig struct {
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL           time.Duration `envconfig:"CACHE_TTL" default:"5m"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"streamgrab"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"streamgrab"`
	DBName   string `envconfig:"POSTGRES_DB" default:"streamgrab"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	// Enabled gates the history feature; the API runs without Postgres
	// when it is off.
	Enabled bool `envconfig:"POSTGRES_ENABLED" default:"true"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
