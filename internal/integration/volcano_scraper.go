// Package integration fetches CENAPRED bulletins and assembles them into
// reports.
package integration

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/abelzeko/popo-bot/internal/apperr"
	"github.com/abelzeko/popo-bot/internal/config"
	"github.com/abelzeko/popo-bot/internal/docindex"
	"github.com/abelzeko/popo-bot/internal/entities"
	"github.com/abelzeko/popo-bot/internal/extract"
	"github.com/abelzeko/popo-bot/internal/observability"
)

const defaultTimeout = 30 * time.Second

// Values of the "mode" metric label.
const (
	modeLatest = "latest"
	modeDate   = "date"
)

// VolcanoScraper downloads bulletins and turns them into VolcanoReports.
type VolcanoScraper struct {
	fetcher   Fetcher
	clock     clockwork.Clock
	metrics   *observability.Metrics
	baseURL   string
	latestURL string
	byDateURL string
}

// Option configures a VolcanoScraper.
type Option func(*VolcanoScraper)

// WithClock sets the clock used for report timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(s *VolcanoScraper) { s.clock = c }
}

// WithMetrics enables fetch metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *VolcanoScraper) { s.metrics = m }
}

// WithBaseURL sets the prefix for relative media links.
func WithBaseURL(u string) Option {
	return func(s *VolcanoScraper) { s.baseURL = u }
}

// WithURLs sets the latest-report URL and the by-date endpoint.
func WithURLs(latest, byDate string) Option {
	return func(s *VolcanoScraper) {
		s.latestURL = latest
		s.byDateURL = byDate
	}
}

// NewVolcanoScraper creates a scraper reading through fetcher. A nil fetcher
// means a default HTTPFetcher.
func NewVolcanoScraper(fetcher Fetcher, opts ...Option) *VolcanoScraper {
	if fetcher == nil {
		fetcher = NewHTTPFetcher(defaultTimeout, config.DefaultUserAgent)
	}
	s := &VolcanoScraper{
		fetcher:   fetcher,
		clock:     clockwork.NewRealClock(),
		baseURL:   config.DefaultBaseURL,
		latestURL: config.DefaultLatestURL,
		byDateURL: config.DefaultByDateURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig wires an HTTP-backed scraper from cfg.
func NewFromConfig(cfg *config.Config, metrics *observability.Metrics) *VolcanoScraper {
	return NewVolcanoScraper(
		NewHTTPFetcher(cfg.HTTPTimeout, cfg.UserAgent),
		WithBaseURL(cfg.BaseURL),
		WithURLs(cfg.LatestURL, cfg.ByDateURL),
		WithMetrics(metrics),
	)
}

// LatestURL is the address of the most recent bulletin.
func (s *VolcanoScraper) LatestURL() string {
	return s.latestURL
}

// DateURL is the address of the bulletin for date.
func (s *VolcanoScraper) DateURL(date entities.Date) string {
	sep := "?"
	if strings.Contains(s.byDateURL, "?") {
		sep = "&"
	}
	return s.byDateURL + sep + "fecha=" + date.String()
}

// FetchLatest downloads and parses the most recent bulletin.
func (s *VolcanoScraper) FetchLatest(ctx context.Context) (entities.VolcanoReport, error) {
	report, err := s.fetch(ctx, modeLatest, s.latestURL, nil)
	if err != nil {
		return entities.VolcanoReport{}, err
	}
	if s.metrics != nil {
		s.metrics.ObserveReport(report)
	}
	return report, nil
}

// FetchDate downloads and parses the bulletin for date. The site answers
// unknown dates with some other bulletin, so a report for a different day is
// an error wrapping apperr.ErrDateMismatch.
func (s *VolcanoScraper) FetchDate(ctx context.Context, date entities.Date) (entities.VolcanoReport, error) {
	return s.fetch(ctx, modeDate, s.DateURL(date), func(r entities.VolcanoReport) error {
		if r.Date != date {
			return apperr.DateMismatch(date, r.Date)
		}
		return nil
	})
}

func (s *VolcanoScraper) fetch(ctx context.Context, mode, url string, verify func(entities.VolcanoReport) error) (entities.VolcanoReport, error) {
	start := s.clock.Now()
	logger := log.With().Str("mode", mode).Str("url", url).Logger()

	html, err := s.fetcher.Get(ctx, url)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching bulletin")
		s.record(mode, observability.OutcomeNetworkError, start)
		return entities.VolcanoReport{}, err
	}

	report, err := s.ParseReport(html, url)
	if err == nil && verify != nil {
		err = verify(report)
	}
	if err != nil {
		logger.Error().Err(err).Bool("date_mismatch", errors.Is(err, apperr.ErrDateMismatch)).Msg("Error parsing bulletin")
		if s.metrics != nil {
			s.metrics.ParseFailures.Inc()
		}
		s.record(mode, observability.OutcomeParseError, start)
		return entities.VolcanoReport{}, err
	}

	logger.Info().Str("date", report.Date.String()).Str("alert", report.AlertPhase).Msg("Fetched bulletin")
	s.record(mode, observability.OutcomeSuccess, start)
	return report, nil
}

func (s *VolcanoScraper) record(mode, outcome string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.FetchRequests.WithLabelValues(mode, outcome).Inc()
	s.metrics.FetchDuration.WithLabelValues(mode).Observe(s.clock.Since(start).Seconds())
}

// ParseReport assembles a report from bulletin HTML. Mandatory fields (date,
// the four daily counts, alert) abort with a Parse error; optional ones are
// left nil or empty. Parsing does no I/O.
func (s *VolcanoScraper) ParseReport(html, sourceURL string) (entities.VolcanoReport, error) {
	doc, err := docindex.Parse(html)
	if err != nil {
		return entities.VolcanoReport{}, apperr.Parsef("%v", err)
	}

	date, err := extract.Date(doc)
	if err != nil {
		return entities.VolcanoReport{}, err
	}

	var counts [4]uint32
	for i, field := range []string{
		extract.FieldExhalations,
		extract.FieldVolcanotectonic,
		extract.FieldTremorMinutes,
		extract.FieldExplosions,
	} {
		if counts[i], err = extract.Count(doc, field, date); err != nil {
			return entities.VolcanoReport{}, err
		}
	}

	highFrequency, harmonic := extract.TremorBreakdown(doc)

	level, phase, err := extract.AlertInfo(doc)
	if err != nil {
		return entities.VolcanoReport{}, err
	}

	wind := extract.WindDirection(doc)
	so2, so2Date := extract.SO2(doc)

	report := entities.VolcanoReport{
		Date:                       date,
		Exhalations:                counts[0],
		VolcanotectonicEvents:      counts[1],
		TremorMinutesTotal:         counts[2],
		Explosions:                 counts[3],
		TremorHighFrequencyMinutes: highFrequency,
		TremorHarmonicMinutes:      harmonic,
		AlertLevel:                 level,
		AlertPhase:                 phase,
		WindDirection:              wind,
		SO2EmissionsTonsPerDay:     so2,
		SO2MeasurementDate:         so2Date,
		SummarySpanish:             extract.Summary(doc),
		ImageURLs:                  extract.ImageURLs(doc, s.baseURL),
		VideoURLs:                  extract.VideoURLs(doc, s.baseURL),
		SourceURL:                  sourceURL,
	}
	logMissingOptional(report)

	now := s.clock.Now().UTC()
	report.ReportTime = now
	report.ScrapedAt = now
	return report, nil
}

func logMissingOptional(r entities.VolcanoReport) {
	for _, f := range []struct {
		name   string
		absent bool
	}{
		{"tremor_high_frequency_minutes", r.TremorHighFrequencyMinutes == nil},
		{"tremor_harmonic_minutes", r.TremorHarmonicMinutes == nil},
		{"wind_direction", r.WindDirection == nil},
		{"so2_emissions_tons_per_day", r.SO2EmissionsTonsPerDay == nil},
		{"so2_measurement_date", r.SO2MeasurementDate == nil},
	} {
		if f.absent {
			log.Debug().Str("date", r.Date.String()).Str("field", f.name).Msg("Optional field not found")
		}
	}
}
