package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultDatabasePath is where the catalog store lives unless overridden.
const DefaultDatabasePath = "./library.db"

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // No authentication required
	AuthModeLocal AuthMode = "local" // Local librarian accounts with sessions
)

type (
	Config struct {
		HTTP
		Database
		Global
		Auth
		Audit
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Auth struct {
		Mode            AuthMode
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS
	}
	Audit struct {
		Enabled         bool
		Dir             string
		RetentionDays   int    // Days to keep audit events
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	// Auth defaults
	v.SetDefault("auth_mode", "local")
	v.SetDefault("auth_session_secret", "") // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_secure_cookies", true)

	// Audit defaults
	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("port"),
			Host: v.GetString("host"),
		},
		Database: Database{
			Path: v.GetString("database_path"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("shutdown_timeout_in_seconds"),
		},
		Auth: Auth{
			Mode:            AuthMode(v.GetString("auth_mode")),
			SessionSecret:   v.GetString("auth_session_secret"),
			SessionLifetime: v.GetDuration("auth_session_lifetime"),
			BcryptCost:      v.GetInt("auth_bcrypt_cost"),
			SecureCookies:   v.GetBool("auth_secure_cookies"),
		},
		Audit: Audit{
			Enabled:         v.GetBool("audit_enabled"),
			Dir:             v.GetString("audit_dir"),
			RetentionDays:   v.GetInt("audit_retention_days"),
			CleanupSchedule: v.GetString("audit_cleanup_schedule"),
		},
	}
}
