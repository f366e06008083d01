package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

// DefaultConfig returns the built-in configuration tree.
func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"port":     "8080",
		"demo":     false,
		"timezone": "Local",
		"db": map[string]interface{}{
			"driver":         DriverSQLite3,
			"path":           "./data/kairu.db",
			"migrations_dir": "./migrations",
		},
		"auth": map[string]interface{}{
			"jwt_secret":      "change-this-secret",
			"token_ttl_hours": 72,
		},
		"cors": map[string]interface{}{
			"origins": []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		},
		"timer": map[string]interface{}{
			"default_minutes": 25,
			"min_minutes":     5,
			"max_minutes":     60,
			"break_seconds":   300,
			"auto_continue":   false,
		},
		"reminders": map[string]interface{}{
			"scan_interval_seconds": 60,
			"tolerance_minutes":     1,
		},
		"mcp": map[string]interface{}{
			"user_id": "demo-user",
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}
