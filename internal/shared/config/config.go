package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the console.
type Config struct {
	AppEnv         string
	DatabaseURL    string
	HTTPAddr       string
	TrustedOrigins []string

	AdminEmail    string
	AdminPassword string
	TokenKey      string // 64-char hex, 32 bytes
	TokenTTL      time.Duration

	// Optional ops alerting; both must be set to enable it.
	TelegramBotToken  string
	TelegramOpsChatID int64
}

// AlertsEnabled reports whether the optional Telegram ops channel is
// configured.
func (c *Config) AlertsEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramOpsChatID != 0
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file into the process environment. Absence is fine in
	// prod; any other error should surface.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	bindings := map[string]string{
		"app.env":              "APP_ENV",
		"database.url":         "DATABASE_URL",
		"http.addr":            "HTTP_ADDR",
		"http.trusted_origins": "TRUSTED_ORIGINS",
		"admin.email":          "ADMIN_EMAIL",
		"admin.password":       "ADMIN_PASSWORD",
		"token.key":            "TOKEN_KEY",
		"token.ttl_minutes":    "TOKEN_TTL_MINUTES",
		"telegram.bot_token":   "TELEGRAM_BOT_TOKEN",
		"telegram.ops_chat_id": "TELEGRAM_OPS_CHAT_ID",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	viper.SetDefault("app.env", "dev")
	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("token.ttl_minutes", 60)

	cfg := Config{
		AppEnv:            viper.GetString("app.env"),
		DatabaseURL:       viper.GetString("database.url"),
		HTTPAddr:          viper.GetString("http.addr"),
		TrustedOrigins:    viper.GetStringSlice("http.trusted_origins"),
		AdminEmail:        viper.GetString("admin.email"),
		AdminPassword:     viper.GetString("admin.password"),
		TokenKey:          viper.GetString("token.key"),
		TokenTTL:          time.Duration(viper.GetInt("token.ttl_minutes")) * time.Minute,
		TelegramBotToken:  viper.GetString("telegram.bot_token"),
		TelegramOpsChatID: viper.GetInt64("telegram.ops_chat_id"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set in environment or .env file")
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must both be set")
	}
	if len(cfg.TokenKey) != 64 {
		return nil, fmt.Errorf("TOKEN_KEY must be a 64-character hex string (32 bytes), but got %d chars", len(cfg.TokenKey))
	}

	return &cfg, nil
}
