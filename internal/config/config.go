package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Supported database/sql driver names.
const (
	DriverSQLite3 = "sqlite3" // mattn/go-sqlite3, cgo
	DriverSQLite  = "sqlite"  // modernc.org/sqlite, pure Go
)

// EnvPrefix is stripped from environment variables; "__" separates sections,
// so KAIRU_DB__PATH sets db.path.
const EnvPrefix = "KAIRU_"

type Config struct {
	Port      string          `koanf:"port"`
	Demo      bool            `koanf:"demo"`
	Timezone  string          `koanf:"timezone"`
	DB        DBConfig        `koanf:"db"`
	Auth      AuthConfig      `koanf:"auth"`
	CORS      CORSConfig      `koanf:"cors"`
	Timer     TimerConfig     `koanf:"timer"`
	Reminders RemindersConfig `koanf:"reminders"`
	MCP       MCPConfig       `koanf:"mcp"`
}

type DBConfig struct {
	Driver        string `koanf:"driver"`
	Path          string `koanf:"path"`
	MigrationsDir string `koanf:"migrations_dir"`
}

type AuthConfig struct {
	JWTSecret     string `koanf:"jwt_secret"`
	TokenTTLHours int    `koanf:"token_ttl_hours"`
}

type CORSConfig struct {
	Origins []string `koanf:"origins"`
}

type TimerConfig struct {
	DefaultMinutes int  `koanf:"default_minutes"`
	MinMinutes     int  `koanf:"min_minutes"`
	MaxMinutes     int  `koanf:"max_minutes"`
	BreakSeconds   int  `koanf:"break_seconds"`
	AutoContinue   bool `koanf:"auto_continue"` // start the next phase without an explicit start
}

type RemindersConfig struct {
	ScanIntervalSeconds int `koanf:"scan_interval_seconds"`
	ToleranceMinutes    int `koanf:"tolerance_minutes"`
}

// MCPConfig selects whose data the stdio MCP server and terminal commands act on.
type MCPConfig struct {
	UserID string `koanf:"user_id"`
}

// Load merges defaults, the optional YAML file at configPath and KAIRU_*
// environment variables, in that order.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath == "" {
		configPath = os.Getenv(EnvPrefix + "CONFIG")
	}
	if configPath != "" {
		configPath = expandPath(configPath)
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.DB.Path = expandPath(cfg.DB.Path)
	cfg.CORS.Origins = splitOrigins(cfg.CORS.Origins)
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	switch c.DB.Driver {
	case DriverSQLite3, DriverSQLite:
	default:
		return fmt.Errorf("unknown db driver: %s (supported: %s, %s)", c.DB.Driver, DriverSQLite3, DriverSQLite)
	}
	if !c.Demo && c.DB.Path == "" {
		return fmt.Errorf("db path is required outside demo mode")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("token_ttl_hours must be positive")
	}
	if c.Timer.MinMinutes <= 0 || c.Timer.MaxMinutes < c.Timer.MinMinutes {
		return fmt.Errorf("timer minutes range is invalid: %d-%d", c.Timer.MinMinutes, c.Timer.MaxMinutes)
	}
	if c.Timer.DefaultMinutes < c.Timer.MinMinutes || c.Timer.DefaultMinutes > c.Timer.MaxMinutes {
		return fmt.Errorf("timer default_minutes must be between %d and %d", c.Timer.MinMinutes, c.Timer.MaxMinutes)
	}
	if c.Timer.BreakSeconds <= 0 {
		return fmt.Errorf("timer break_seconds must be positive")
	}
	if c.Reminders.ScanIntervalSeconds <= 0 {
		return fmt.Errorf("reminders scan_interval_seconds must be positive")
	}
	if c.Reminders.ToleranceMinutes < 1 {
		return fmt.Errorf("reminders tolerance_minutes must be at least 1")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the zone used for calendar days and reminder matching.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Reminders.ScanIntervalSeconds) * time.Second
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func splitOrigins(origins []string) []string {
	items := make([]string, 0, len(origins))
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				items = append(items, trimmed)
			}
		}
	}
	return items
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
