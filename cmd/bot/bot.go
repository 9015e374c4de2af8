package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

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
	log.Info().Msg("Starting Popocatépetl Bot...")

	// Initialize scraper and use case
	scraper := integration.NewFromConfig(cfg, nil)
	useCase := usecases.NewVolcanoUseCase(scraper)

	if cfg.TelegramToken == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	// Initialize Telegram bot
	telegramBot, err := api.NewTelegramBot(cfg.TelegramToken, useCase, cfg.HTTPTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the bot
	telegramBot.Start(ctx)
}
