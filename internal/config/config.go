package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	Host            string `mapstructure:"host"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig holds catalog API configuration
type APIConfig struct {
	// BaseURL overrides host-based selection when set.
	BaseURL    string `mapstructure:"base_url"`
	DevHost    string `mapstructure:"dev_host"`
	DevBaseURL string `mapstructure:"dev_base_url"`
	// PublicOrigin is where this front end and the API's /api routes are
	// served together. Request hosts are never used to build an API URL.
	PublicOrigin string `mapstructure:"public_origin"`

	Timeout              int    `mapstructure:"timeout"` // seconds, 0 disables
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	Proxy                string `mapstructure:"proxy"`
}

type UIConfig struct {
	Locale string `mapstructure:"locale"`
}

// SessionConfig selects where per-browser view state lives
type SessionConfig struct {
	Store      string `mapstructure:"store"` // memory, bolt or redis
	CookieName string `mapstructure:"cookie_name"`
	TTL        int    `mapstructure:"ttl"` // seconds
	BoltPath   string `mapstructure:"bolt_path"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

func (c RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from an optional YAML file with environment variable overrides
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvPrefix("ANIMEDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case "memory", "bolt", "redis":
	default:
		return fmt.Errorf("unknown session store %q", c.Session.Store)
	}
	if c.API.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("api.max_requests_per_second must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("api.base_url", "")
	v.SetDefault("api.dev_host", "localhost")
	v.SetDefault("api.dev_base_url", "http://localhost:8000")
	v.SetDefault("api.public_origin", "")
	v.SetDefault("api.timeout", 0)
	v.SetDefault("api.max_requests_per_second", 0)
	v.SetDefault("api.proxy", "")

	v.SetDefault("ui.locale", "en")

	v.SetDefault("session.store", "memory")
	v.SetDefault("session.cookie_name", "animedb_session")
	v.SetDefault("session.ttl", 86400)
	v.SetDefault("session.bolt_path", "data/sessions.db")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
