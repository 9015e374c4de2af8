// Package config loads settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Defaults for the CENAPRED endpoints.
const (
	DefaultBaseURL   = "https://www.cenapred.unam.mx"
	DefaultLatestURL = "https://www.cenapred.unam.mx/reportesVolcanesMX/Procesos?tipoProceso=detallesUltimoReporteVolcan"
	DefaultByDateURL = "https://www.cenapred.unam.mx/reportesVolcanesMX/Procesos"

	DefaultUserAgent = "popo-bot/1.0 (+https://github.com/abelzeko/popo-bot)"
)

// Config holds all service settings.
type Config struct {
	BaseURL     string
	LatestURL   string
	ByDateURL   string
	HTTPTimeout time.Duration
	UserAgent   string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	TelegramToken  string
	TelegramChatID int64

	WatchSchedule string
	WatchEnabled  bool
}

// FileConfig is the YAML document named by POPO_CONFIG.
type FileConfig struct {
	Source struct {
		BaseURL   string        `yaml:"baseURL"`
		LatestURL string        `yaml:"latestURL"`
		ByDateURL string        `yaml:"byDateURL"`
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"userAgent"`
	} `yaml:"source"`

	HTTP struct {
		Addr            string        `yaml:"addr"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	} `yaml:"http"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chatID"`
	} `yaml:"telegram"`

	Watch struct {
		Schedule string `yaml:"schedule"`
		Enabled  *bool  `yaml:"enabled"`
	} `yaml:"watch"`
}

func defaults() *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		LatestURL:       DefaultLatestURL,
		ByDateURL:       DefaultByDateURL,
		HTTPTimeout:     30 * time.Second,
		UserAgent:       DefaultUserAgent,
		HTTPAddr:        ":8080",
		LogLevel:        "info",
		LogFormat:       "console",
		ShutdownTimeout: 10 * time.Second,
		WatchSchedule:   "0 * * * *",
		WatchEnabled:    true,
	}
}

// Load reads configuration, applying defaults where unset.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("POPO_CONFIG"); path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("POPO_CONFIG: %w", err)
		}
		fc.apply(cfg)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.BaseURL == "" || cfg.LatestURL == "" || cfg.ByDateURL == "" {
		return nil, errors.New("source URLs must not be empty")
	}
	return cfg, nil
}

// LoadFile reads a YAML FileConfig.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse yaml: %w", err)
	}
	return fc, nil
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.Source.BaseURL != "" {
		cfg.BaseURL = fc.Source.BaseURL
	}
	if fc.Source.LatestURL != "" {
		cfg.LatestURL = fc.Source.LatestURL
	}
	if fc.Source.ByDateURL != "" {
		cfg.ByDateURL = fc.Source.ByDateURL
	}
	if fc.Source.Timeout > 0 {
		cfg.HTTPTimeout = fc.Source.Timeout
	}
	if fc.Source.UserAgent != "" {
		cfg.UserAgent = fc.Source.UserAgent
	}
	if fc.HTTP.Addr != "" {
		cfg.HTTPAddr = fc.HTTP.Addr
	}
	if fc.HTTP.ShutdownTimeout > 0 {
		cfg.ShutdownTimeout = fc.HTTP.ShutdownTimeout
	}
	if fc.Log.Level != "" {
		cfg.LogLevel = fc.Log.Level
	}
	if fc.Log.Format != "" {
		cfg.LogFormat = fc.Log.Format
	}
	if fc.Telegram.Token != "" {
		cfg.TelegramToken = fc.Telegram.Token
	}
	if fc.Telegram.ChatID != 0 {
		cfg.TelegramChatID = fc.Telegram.ChatID
	}
	if fc.Watch.Schedule != "" {
		cfg.WatchSchedule = fc.Watch.Schedule
	}
	if fc.Watch.Enabled != nil {
		cfg.WatchEnabled = *fc.Watch.Enabled
	}
}

func applyEnv(cfg *Config) error {
	cfg.BaseURL = envOrDefault("POPO_BASE_URL", cfg.BaseURL)
	cfg.LatestURL = envOrDefault("POPO_LATEST_URL", cfg.LatestURL)
	cfg.ByDateURL = envOrDefault("POPO_BY_DATE_URL", cfg.ByDateURL)
	cfg.UserAgent = envOrDefault("POPO_USER_AGENT", cfg.UserAgent)
	cfg.HTTPAddr = envOrDefault("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.TelegramToken = envOrDefault("TELEGRAM_BOT_TOKEN", cfg.TelegramToken)
	cfg.WatchSchedule = envOrDefault("WATCH_SCHEDULE", cfg.WatchSchedule)

	var err error
	if cfg.HTTPTimeout, err = parseDuration("POPO_HTTP_TIMEOUT", cfg.HTTPTimeout); err != nil {
		return err
	}
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return err
	}

	if s := os.Getenv("TELEGRAM_CHAT_ID"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", s, err)
		}
		cfg.TelegramChatID = id
	}

	if s := os.Getenv("WATCH_ENABLED"); s != "" {
		enabled, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("invalid WATCH_ENABLED %q: %w", s, err)
		}
		cfg.WatchEnabled = enabled
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return d, nil
}
