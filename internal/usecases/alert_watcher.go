package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abelzeko/popo-bot/internal/entities"
)

// Notifier delivers a text message somewhere, e.g. a Telegram chat.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// AlertState is the part of a report the watcher compares between checks.
type AlertState struct {
	Level entities.AlertLevel
	Phase string
	Date  entities.Date
}

// AlertWatcher polls the latest bulletin and notifies when the alert level or
// phase changes. The first check only records a baseline.
type AlertWatcher struct {
	source   ReportSource
	notifier Notifier
	timeout  time.Duration

	mu   sync.Mutex
	last *AlertState
}

// NewAlertWatcher creates a watcher. notifier may be nil, in which case
// changes are only logged.
func NewAlertWatcher(source ReportSource, notifier Notifier, timeout time.Duration) *AlertWatcher {
	return &AlertWatcher{source: source, notifier: notifier, timeout: timeout}
}

// Last returns the most recently seen alert state.
func (w *AlertWatcher) Last() (AlertState, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return AlertState{}, false
	}
	return *w.last, true
}

// Check fetches the latest bulletin once. changed is true when a notification
// was due.
func (w *AlertWatcher) Check(ctx context.Context) (changed bool, err error) {
	report, err := w.source.FetchLatest(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to fetch latest report: %w", err)
	}
	current := AlertState{Level: report.AlertLevel, Phase: report.AlertPhase, Date: report.Date}

	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.last

	if prev == nil {
		w.last = &current
		log.Info().Str("alert", current.Phase).Str("date", current.Date.String()).Msg("Alert watcher baseline recorded")
		return false, nil
	}
	if prev.Level == current.Level && prev.Phase == current.Phase {
		w.last = &current
		log.Debug().Str("alert", current.Phase).Msg("Alert unchanged")
		return false, nil
	}

	log.Warn().
		Str("from", prev.Phase).
		Str("to", current.Phase).
		Str("date", current.Date.String()).
		Msg("Alert changed")

	// The previous state is kept until the change has been delivered, so a
	// failed send is retried on the next check.
	if w.notifier != nil {
		if err := w.notifier.Notify(ctx, FormatAlertChange(*prev, report)); err != nil {
			return true, fmt.Errorf("failed to send alert notification: %w", err)
		}
	}
	w.last = &current
	return true, nil
}

// Run performs one check with the configured timeout. It is shaped for a
// cron job.
func (w *AlertWatcher) Run() {
	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	if _, err := w.Check(ctx); err != nil {
		log.Error().Err(err).Msg("Scheduled alert check failed")
	}
}

// FormatAlertChange renders the notification sent when the alert moves.
func FormatAlertChange(prev AlertState, r entities.VolcanoReport) string {
	direction := "changed"
	switch {
	case r.AlertLevel > prev.Level:
		direction = "raised"
	case r.AlertLevel < prev.Level:
		direction = "lowered"
	}
	return fmt.Sprintf("⚠️ Popocatépetl alert %s\n%s %s → %s %s\n📅 Bulletin of %s\n\n%s",
		direction,
		alertEmoji[prev.Level], prev.Phase,
		alertEmoji[r.AlertLevel], r.AlertPhase,
		r.Date,
		FormatBrief(r))
}
