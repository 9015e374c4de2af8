// Package api provides handlers for external APIs and interfaces
package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/abelzeko/popo-bot/internal/apperr"
	"github.com/abelzeko/popo-bot/internal/usecases"
)

const (
	helpText = "Available commands:\n" +
		"/start - Start the bot\n" +
		"/latest - Show the latest Popocatépetl bulletin\n" +
		"/alert - Show the alert status and bulletin summary\n" +
		"/get [YYYY-MM-DD] - Show the bulletin for a specific date\n" +
		"/help - Show this help message"

	fetchErrorText = "Error fetching the bulletin. Please try again later."
	dontUnderstand = "I don't understand. Use /help to see available commands."
)

// TelegramBot handles interactions with the Telegram API
type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	service ReportService
	timeout time.Duration
}

// NewTelegramBot creates a new Telegram bot handler
func NewTelegramBot(botToken string, service ReportService, timeout time.Duration) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &TelegramBot{
		bot:     bot,
		service: service,
		timeout: timeout,
	}, nil
}

// Start begins listening for and handling Telegram messages until ctx is done.
func (t *TelegramBot) Start(ctx context.Context) {
	log.Info().Str("username", t.bot.Self.UserName).Msg("Authorized on Telegram account")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	log.Info().Msg("Bot is now listening for messages...")

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			log.Info().Msg("Bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}

			log.Info().
				Str("user", senderName(update.Message)).
				Int64("chat_id", update.Message.Chat.ID).
				Str("text", update.Message.Text).
				Msg("Received message")

			t.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage answers a single Telegram message
func (t *TelegramBot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	var text string
	if message.IsCommand() {
		text = t.reply(ctx, message.Command(), message.CommandArguments())
	} else {
		text = t.replyText(ctx)
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	log.Debug().Str("user", senderName(message)).Msg("Sending response")
	if _, err := t.bot.Send(msg); err != nil {
		log.Error().Err(err).Msg("Error sending message")
	}
}

// senderName returns the sender's username. Channel posts have no sender.
func senderName(message *tgbotapi.Message) string {
	if message.From == nil {
		return ""
	}
	return message.From.UserName
}

// reply returns the answer to a /command with its arguments.
func (t *TelegramBot) reply(ctx context.Context, command, args string) string {
	log.Debug().Str("command", command).Str("args", args).Msg("Handling command")

	switch command {
	case "start":
		return "Welcome to the Popocatépetl Bot! Use /latest to see the latest bulletin or /help for more information."

	case "help":
		return helpText

	case "latest":
		report, err := t.service.Latest(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Error fetching latest bulletin")
			return fetchErrorText
		}
		return usecases.FormatBrief(report)

	case "alert":
		report, err := t.service.Latest(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Error fetching latest bulletin")
			return fetchErrorText
		}
		return strings.TrimSpace(usecases.FormatAlert(report))

	case "get":
		return t.replyDate(ctx, strings.TrimSpace(args))

	default:
		log.Debug().Str("command", command).Msg("Received unknown command")
		return "Unknown command. Use /help to see available commands."
	}
}

func (t *TelegramBot) replyDate(ctx context.Context, raw string) string {
	if raw == "" {
		return "Please specify a date. Example: /get 2022-03-22"
	}

	date, err := usecases.ParseRequestDate(raw)
	if err != nil {
		return err.Error()
	}

	report, err := t.service.ByDate(ctx, date.String())
	switch {
	case err == nil:
		return usecases.FormatBrief(report)
	case errors.Is(err, apperr.ErrDateMismatch):
		return fmt.Sprintf("No bulletin found for %s.", date)
	default:
		log.Error().Err(err).Str("date", raw).Msg("Error fetching bulletin by date")
		return fetchErrorText
	}
}

// replyText answers free text with the help hint and, when available, the
// current alert.
func (t *TelegramBot) replyText(ctx context.Context) string {
	report, err := t.service.Latest(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching latest bulletin")
		return dontUnderstand
	}

	var response strings.Builder
	response.WriteString(dontUnderstand + "\n\n")
	response.WriteString("JFYI (Just For Your Information):\n")
	response.WriteString(usecases.FormatBrief(report))
	return response.String()
}

// TelegramNotifier sends alert notifications to a fixed chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier posting to chatID.
func NewTelegramNotifier(bot *tgbotapi.BotAPI, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// Notify sends text to the configured chat.
func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", n.chatID, err)
	}
	log.Info().Int64("chat_id", n.chatID).Msg("Notification sent")
	return nil
}
