// Package config loads application configuration from an optional YAML
// file pointed at by CONFIG_FILE, with environment variables taking
// precedence over file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "CONFIG_FILE"

// Config is the full application configuration.
type Config struct {
	Realtime struct {
		URL            string `yaml:"url" env:"REALTIME_URL"`
		Channels       string `yaml:"channels" env:"REALTIME_CHANNELS"`
		DialTimeoutSec int    `yaml:"dialTimeoutSeconds" env:"REALTIME_DIAL_TIMEOUT_SECONDS"`
	} `yaml:"realtime"`
	Reconnect struct {
		MaxAttempts int `yaml:"maxAttempts" env:"RECONNECT_MAX_ATTEMPTS"`
		BaseDelayMS int `yaml:"baseDelayMs" env:"RECONNECT_BASE_DELAY_MS"`
	} `yaml:"reconnect"`
	API struct {
		BaseURL        string `yaml:"baseUrl" env:"API_BASE_URL"`
		TimeoutSeconds int    `yaml:"timeoutSeconds" env:"API_TIMEOUT_SECONDS"`
	} `yaml:"api"`
	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
	} `yaml:"redis"`
	JWT struct {
		Secret            string `yaml:"secret" env:"JWT_SECRET"`
		ExpiresInMinutes  int    `yaml:"expiresInMinutes" env:"JWT_EXPIRES_MINUTES"`
		RefreshExpiryDays int    `yaml:"refreshExpiryDays" env:"JWT_REFRESH_EXPIRY_DAYS"`
	} `yaml:"jwt"`
	Mock struct {
		LatencyMS int `yaml:"latencyMs" env:"MOCK_LATENCY_MS"`
	} `yaml:"mock"`
}

// Load reads the YAML file if configured, applies env overrides, then
// validates and fills defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.Realtime.URL = "ws://localhost:5000/realtime"
	cfg.Realtime.Channels = "parking-updates,notifications"
	cfg.Realtime.DialTimeoutSec = 10
	cfg.Reconnect.MaxAttempts = 5
	cfg.Reconnect.BaseDelayMS = 1000
	cfg.API.TimeoutSeconds = 10
	cfg.JWT.ExpiresInMinutes = 60
	cfg.JWT.RefreshExpiryDays = 7
	cfg.Mock.LatencyMS = 300

	if path := os.Getenv(configPathEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: decode yaml: %w", err)
		}
	}

	overrideString(&cfg.Realtime.URL, "REALTIME_URL")
	overrideString(&cfg.Realtime.Channels, "REALTIME_CHANNELS")
	if err := overrideInt(&cfg.Realtime.DialTimeoutSec, "REALTIME_DIAL_TIMEOUT_SECONDS"); err != nil {
		return nil, err
	}
	if err := overrideInt(&cfg.Reconnect.MaxAttempts, "RECONNECT_MAX_ATTEMPTS"); err != nil {
		return nil, err
	}
	if err := overrideInt(&cfg.Reconnect.BaseDelayMS, "RECONNECT_BASE_DELAY_MS"); err != nil {
		return nil, err
	}
	overrideString(&cfg.API.BaseURL, "API_BASE_URL")
	if err := overrideInt(&cfg.API.TimeoutSeconds, "API_TIMEOUT_SECONDS"); err != nil {
		return nil, err
	}
	overrideString(&cfg.Redis.Addr, "REDIS_ADDR")
	overrideString(&cfg.Redis.Password, "REDIS_PASSWORD")
	overrideString(&cfg.JWT.Secret, "JWT_SECRET")
	if err := overrideInt(&cfg.JWT.ExpiresInMinutes, "JWT_EXPIRES_MINUTES"); err != nil {
		return nil, err
	}
	if err := overrideInt(&cfg.JWT.RefreshExpiryDays, "JWT_REFRESH_EXPIRY_DAYS"); err != nil {
		return nil, err
	}
	if err := overrideInt(&cfg.Mock.LatencyMS, "MOCK_LATENCY_MS"); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Realtime.URL) == "" {
		return nil, errors.New("config: realtime URL is required")
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "smartpark-dev-secret"
	}
	return cfg, nil
}

// ChannelList splits the comma-separated channel configuration.
func (c *Config) ChannelList() []string {
	parts := strings.Split(c.Realtime.Channels, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// DialTimeout returns the realtime dial timeout as a duration.
func (c *Config) DialTimeout() time.Duration {
	return time.Duration(c.Realtime.DialTimeoutSec) * time.Second
}

// BaseDelay returns the reconnect base delay as a duration.
func (c *Config) BaseDelay() time.Duration {
	return time.Duration(c.Reconnect.BaseDelayMS) * time.Millisecond
}

// JWTExpiry returns the access token lifetime.
func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWT.ExpiresInMinutes) * time.Minute
}

// RefreshExpiry returns the refresh token lifetime.
func (c *Config) RefreshExpiry() time.Duration {
	return time.Duration(c.JWT.RefreshExpiryDays) * 24 * time.Hour
}

// MockLatency returns the simulated facade latency.
func (c *Config) MockLatency() time.Duration {
	return time.Duration(c.Mock.LatencyMS) * time.Millisecond
}

func overrideString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		*target = val
	}
}

func overrideInt(target *int, key string) error {
	val, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}
	*target = parsed
	return nil
}
