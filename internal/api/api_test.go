package api

import (
	"context"
	"time"

	"github.com/abelzeko/popo-bot/internal/entities"
)

// fakeService returns a canned report or error and records by-date requests.
type fakeService struct {
	report entities.VolcanoReport
	err    error
	dates  []string
}

func (f *fakeService) Latest(context.Context) (entities.VolcanoReport, error) {
	return f.report, f.err
}

func (f *fakeService) ByDate(_ context.Context, raw string) (entities.VolcanoReport, error) {
	f.dates = append(f.dates, raw)
	return f.report, f.err
}

func sampleReport() entities.VolcanoReport {
	high, harmonic := uint32(39), uint32(14)
	so2 := 2603.0
	wind := entities.WindNW
	now := time.Date(2025, 10, 6, 18, 30, 0, 0, time.UTC)
	return entities.VolcanoReport{
		Date:                       entities.Date{Year: 2025, Month: 10, Day: 6},
		ReportTime:                 now,
		ScrapedAt:                  now,
		Exhalations:                15,
		TremorMinutesTotal:         53,
		TremorHighFrequencyMinutes: &high,
		TremorHarmonicMinutes:      &harmonic,
		SO2EmissionsTonsPerDay:     &so2,
		AlertLevel:                 entities.AlertYellow,
		AlertPhase:                 "AMARILLO FASE 2",
		WindDirection:              &wind,
		SummarySpanish:             "Se identificaron 15 exhalaciones.",
		ImageURLs:                  []string{},
		VideoURLs:                  []string{},
		SourceURL:                  "https://www.cenapred.unam.mx/reportesVolcanesMX/Procesos?tipoProceso=detallesUltimoReporteVolcan",
	}
}
