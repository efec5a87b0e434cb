// Package config loads the API configuration from the embedded defaults, an
// optional TOML file and the environment, in that order.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const minJWTSecretBytes = 32

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Auth       AuthConfig       `toml:"auth"`
	Log        LogConfig        `toml:"log"`
	Monitoring MonitoringConfig `toml:"monitoring"`
}

type ServerConfig struct {
	Host                   string   `toml:"host"`
	Port                   int      `toml:"port"`
	CORSOrigins            []string `toml:"cors_origins"`
	ShutdownTimeoutSeconds int      `toml:"shutdown_timeout_seconds"`
}

// Addr is the listen address for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	Driver         string `toml:"driver"`
	MongoURI       string `toml:"mongo_uri"`
	MongoDB        string `toml:"mongo_db"`
	PostgresURL    string `toml:"postgres_url"`
	MaxOpenConns   int    `toml:"max_open_conns"`
	MaxIdleConns   int    `toml:"max_idle_conns"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout bounds every single store operation.
func (d DatabaseConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
	CookieSecure  bool   `toml:"cookie_secure"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

type LogConfig struct {
	Level string `toml:"level"`
}

type MonitoringConfig struct {
	APIKey string `toml:"api_key"`
}

// Default returns the configuration described by the embedded example file.
func Default() *Config {
	var cfg Config
	if err := toml.Unmarshal(exampleConf, &cfg); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &cfg
}

// Load overlays the TOML file at path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays the environment variables documented in the example file.
func (c *Config) ApplyEnv() error {
	c.Server.Host = getEnvOrDefault("HOST", c.Server.Host)
	c.Database.Driver = strings.ToLower(getEnvOrDefault("DB_DRIVER", c.Database.Driver))
	c.Database.MongoURI = getEnvOrDefault("MONGO_URI", c.Database.MongoURI)
	c.Database.MongoDB = getEnvOrDefault("MONGO_DB", c.Database.MongoDB)
	c.Database.PostgresURL = getEnvOrDefault("DATABASE_URL", c.Database.PostgresURL)
	c.Auth.JWTSecret = getEnvOrDefault("JWT_SECRET", c.Auth.JWTSecret)
	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Monitoring.APIKey = getEnvOrDefault("MONITORING_API_KEY", c.Monitoring.APIKey)

	if origins := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); origins != "" {
		c.Server.CORSOrigins = splitList(origins)
	}

	var errs []error
	for _, item := range []struct {
		key    string
		target *int
	}{
		{"PORT", &c.Server.Port},
		{"DB_MAX_OPEN_CONNS", &c.Database.MaxOpenConns},
		{"DB_MAX_IDLE_CONNS", &c.Database.MaxIdleConns},
		{"DB_TIMEOUT_SECONDS", &c.Database.TimeoutSeconds},
	} {
		value, err := getIntEnvOrDefault(item.key, *item.target)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*item.target = value
	}

	if raw := strings.TrimSpace(os.Getenv("COOKIE_SECURE")); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid COOKIE_SECURE=%q: %w", raw, err))
		} else {
			c.Auth.CookieSecure = secure
		}
	}

	return errors.Join(errs...)
}

// Validate reports every setting that would keep the server from starting.
func (c *Config) Validate() error {
	var errs []error

	if len(strings.TrimSpace(c.Auth.JWTSecret)) < minJWTSecretBytes {
		errs = append(errs, fmt.Errorf("jwt secret must be at least %d bytes", minJWTSecretBytes))
	}
	if c.Auth.TokenTTLHours <= 0 {
		errs = append(errs, errors.New("token ttl must be positive"))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Server.Port))
	}
	if c.Database.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("database timeout must be positive"))
	}

	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.MongoURI == "" || c.Database.MongoDB == "" {
			errs = append(errs, errors.New("mongo driver needs mongo_uri and mongo_db"))
		}
	case DriverPostgres:
		if c.Database.PostgresURL == "" {
			errs = append(errs, errors.New("postgres driver needs postgres_url"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
	}

	return errors.Join(errs...)
}

// CreateConfigFile writes the embedded example config to path. It refuses to
// overwrite an existing file.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.WriteFile(path, exampleConf, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return defaultValue, fmt.Errorf("invalid %s=%q: expected a positive integer", key, raw)
	}
	return value, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
