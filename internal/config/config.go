// Package config loads the server configuration from YAML, falling back
// to sane defaults when the file is missing.
package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-wide configuration settings.
type ServerConfig struct {
	Game      GameConfig      `yaml:"game"`
	Save      SaveConfig      `yaml:"save"`
	Listen    ListenConfig    `yaml:"listen"`
	WebSocket WebSocketConfig `yaml:"websocket"`
}

// GameConfig holds simulation settings.
type GameConfig struct {
	// TickIntervalMS is the base simulation tick interval in milliseconds.
	TickIntervalMS int `yaml:"tick_interval_ms"`

	// BossTimeLimitSeconds is the time allowed to defeat a boss before
	// the climb regresses.
	BossTimeLimitSeconds int `yaml:"boss_time_limit_seconds"`
}

// SaveConfig holds persistence settings.
type SaveConfig struct {
	// Driver selects the save backend: "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// SQLitePath is the save database path when Driver is "sqlite".
	SQLitePath string `yaml:"sqlite_path"`

	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds connection settings for the postgres save backend.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// ListenConfig holds the HTTP listener settings.
type ListenConfig struct {
	// Address is the host:port the server binds to.
	Address string `yaml:"address"`
}

// WebSocketConfig holds WebSocket-specific settings.
type WebSocketConfig struct {
	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy.
	// Use "*" to allow all origins (not recommended for production).
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// DefaultConfig returns a ServerConfig with sensible defaults.
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Game: GameConfig{
			TickIntervalMS:       1000,
			BossTimeLimitSeconds: 30,
		},
		Save: SaveConfig{
			Driver:     "sqlite",
			SQLitePath: "data/tower.db",
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "tower",
				Database: "tower",
				SSLMode:  "disable",
			},
		},
		Listen: ListenConfig{
			Address: ":8080",
		},
		WebSocket: WebSocketConfig{
			AllowedOrigins: []string{}, // Same-origin only by default
			MaxMessageSize: 4096,
		},
	}
}

// LoadConfig loads server configuration from a YAML file.
// If the file doesn't exist or can't be parsed, returns default config.
func LoadConfig(path string) (*ServerConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Use defaults if file doesn't exist
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	normalize(config)
	return config, nil
}

// normalize replaces zero values left by partial YAML files with defaults.
func normalize(c *ServerConfig) {
	def := DefaultConfig()
	if c.Game.TickIntervalMS <= 0 {
		c.Game.TickIntervalMS = def.Game.TickIntervalMS
	}
	if c.Game.BossTimeLimitSeconds <= 0 {
		c.Game.BossTimeLimitSeconds = def.Game.BossTimeLimitSeconds
	}
	if c.Save.Driver == "" {
		c.Save.Driver = def.Save.Driver
	}
	if c.Save.SQLitePath == "" {
		c.Save.SQLitePath = def.Save.SQLitePath
	}
	if c.Listen.Address == "" {
		c.Listen.Address = def.Listen.Address
	}
	if c.WebSocket.MaxMessageSize <= 0 {
		c.WebSocket.MaxMessageSize = def.WebSocket.MaxMessageSize
	}
}

// TickInterval returns the configured tick interval as a duration.
func (c *GameConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// IsOriginAllowed checks if the given origin is allowed based on the config.
// Returns true if:
// - AllowedOrigins contains "*" (allow all)
// - AllowedOrigins contains the exact origin
// - AllowedOrigins is empty and origin matches the request host (same-origin)
func (c *WebSocketConfig) IsOriginAllowed(origin, requestHost string) bool {
	// If no origins configured, enforce same-origin policy
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		// Wildcard allows all origins
		if allowed == "*" {
			return true
		}
		// Exact match
		if allowed == origin {
			return true
		}
	}

	return false
}

// isSameOrigin checks if the origin matches the request host (same-origin policy).
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means same-origin (e.g., non-browser client)
	}

	// Extract host from origin URL (e.g., "http://localhost:3000" -> "localhost:3000")
	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	// Remove trailing slash if present
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
