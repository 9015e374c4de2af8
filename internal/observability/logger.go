// Package observability sets up logging and Prometheus metrics.
package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/abelzeko/popo-bot/internal/config"
)

// SetupLogger configures the global zerolog logger from cfg.
func SetupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	zerolog.SetGlobalLevel(ParseLevel(cfg.LogLevel))
}

// NewLogger builds a logger writing to w. Format "console" is human readable;
// anything else is JSON lines.
func NewLogger(w io.Writer, level, format string) zerolog.Logger {
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
