// Package usecases contains the application's business logic
package usecases

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/abelzeko/popo-bot/internal/apperr"
	"github.com/abelzeko/popo-bot/internal/entities"
)

// ReportSource fetches bulletins. *integration.VolcanoScraper implements it.
type ReportSource interface {
	FetchLatest(ctx context.Context) (entities.VolcanoReport, error)
	FetchDate(ctx context.Context, date entities.Date) (entities.VolcanoReport, error)
}

// VolcanoUseCase answers report queries for the CLI, the bot and the REST API.
type VolcanoUseCase struct {
	source ReportSource
}

// NewVolcanoUseCase creates a new volcano use case
func NewVolcanoUseCase(source ReportSource) *VolcanoUseCase {
	return &VolcanoUseCase{source: source}
}

// Latest returns the most recent bulletin.
func (uc *VolcanoUseCase) Latest(ctx context.Context) (entities.VolcanoReport, error) {
	log.Debug().Msg("Retrieving latest report")
	return uc.source.FetchLatest(ctx)
}

// ByDate returns the bulletin for a YYYY-MM-DD date. A malformed date fails
// before anything is fetched.
func (uc *VolcanoUseCase) ByDate(ctx context.Context, raw string) (entities.VolcanoReport, error) {
	date, err := ParseRequestDate(raw)
	if err != nil {
		return entities.VolcanoReport{}, err
	}
	log.Debug().Str("date", date.String()).Msg("Retrieving report by date")
	return uc.source.FetchDate(ctx, date)
}

// ParseRequestDate strictly parses a user supplied YYYY-MM-DD date.
func ParseRequestDate(raw string) (entities.Date, error) {
	date, err := entities.ParseISODate(raw)
	if err != nil {
		return entities.Date{}, apperr.Parsef("invalid date format '%s'. Use YYYY-MM-DD (e.g., 2022-03-22)", raw)
	}
	return date, nil
}
