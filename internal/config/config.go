// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config is the process configuration. Defaults are provided via struct tags.
type Config struct {
	// Port to listen on. ENV: PORT
	Port int `env:"PORT,default=8000"`
	// Host to bind; empty binds all interfaces. ENV: HOST
	Host string `env:"HOST"`
	// Path of the MCP endpoint. ENV: MCP_PATH
	MCPPath string `env:"MCP_PATH,default=/mcp"`
	// WidgetPath is the widget markup file, read once at startup. ENV: WIDGET_PATH
	WidgetPath string `env:"WIDGET_PATH,default=assets/fortune-compass.html"`

	LogLevel     string `env:"LOG_LEVEL,default=info"`
	LogFormat    string `env:"LOG_FORMAT,default=text"`
	DebugHeaders bool   `env:"DEBUG_HEADERS,default=false"`

	// Deterministic switches the engine to daily seeding. ENV: FORTUNE_DETERMINISTIC
	Deterministic bool `env:"FORTUNE_DETERMINISTIC,default=false"`

	// Bearer authentication is enabled when AuthIssuer is set.
	AuthIssuer   string `env:"AUTH_ISSUER"`
	AuthAudience string `env:"AUTH_AUDIENCE"`
	AuthJWKSURL  string `env:"AUTH_JWKS_URL"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Load decodes the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if !strings.HasPrefix(c.MCPPath, "/") {
		return fmt.Errorf("MCP_PATH must start with '/': %q", c.MCPPath)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json: %q", c.LogFormat)
	}
	if c.AuthIssuer != "" && c.AuthAudience == "" {
		return errors.New("AUTH_AUDIENCE is required when AUTH_ISSUER is set")
	}
	if c.AuthIssuer == "" && c.AuthJWKSURL != "" {
		return errors.New("AUTH_JWKS_URL requires AUTH_ISSUER")
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// AuthEnabled reports whether bearer authentication is configured.
func (c *Config) AuthEnabled() bool { return c.AuthIssuer != "" }

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}
