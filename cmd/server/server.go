// Command server runs the report REST API, the /metrics endpoint and the
// scheduled alert watcher.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/abelzeko/popo-bot/internal/api"
	"github.com/abelzeko/popo-bot/internal/config"
	"github.com/abelzeko/popo-bot/internal/integration"
	"github.com/abelzeko/popo-bot/internal/observability"
	"github.com/abelzeko/popo-bot/internal/usecases"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	observability.SetupLogger(cfg)
	log.Info().Msg("Starting Popocatépetl server...")

	metrics := observability.NewMetrics()
	scraper := integration.NewFromConfig(cfg, metrics)
	useCase := usecases.NewVolcanoUseCase(scraper)

	srv := api.NewServer(cfg.HTTPAddr, useCase)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
			stop()
		}
	}()

	var scheduler *cron.Cron
	if cfg.WatchEnabled {
		scheduler, err = startWatcher(cfg, scraper)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to set up alert watcher")
		}
	} else {
		log.Info().Msg("Alert watcher disabled")
	}

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if scheduler != nil {
		select {
		case <-scheduler.Stop().Done():
		case <-shutdownCtx.Done():
			log.Warn().Msg("Alert check still running at shutdown")
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// startWatcher runs the first check, which records the baseline, and then
// schedules the alert watcher.
func startWatcher(cfg *config.Config, source usecases.ReportSource) (*cron.Cron, error) {
	var notifier usecases.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create bot: %w", err)
		}
		notifier = api.NewTelegramNotifier(bot, cfg.TelegramChatID)
		log.Info().Int64("chat_id", cfg.TelegramChatID).Msg("Alert notifications enabled")
	} else {
		log.Info().Msg("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID not set, alert changes will only be logged")
	}

	watcher := usecases.NewAlertWatcher(source, notifier, cfg.HTTPTimeout)

	cronLog := cronLogger{}
	c := cron.New(cron.WithLogger(cronLog), cron.WithChain(
		cron.Recover(cronLog),
		cron.SkipIfStillRunning(cronLog),
	))
	if _, err := c.AddJob(cfg.WatchSchedule, watcher); err != nil {
		return nil, fmt.Errorf("invalid WATCH_SCHEDULE %q: %w", cfg.WatchSchedule, err)
	}

	watcher.Run()
	c.Start()
	log.Info().Str("schedule", cfg.WatchSchedule).Msg("Alert watcher scheduled")
	return c, nil
}

// cronLogger routes cron's logs to zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
