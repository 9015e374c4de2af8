package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelzeko/popo-bot/internal/apperr"
	"github.com/abelzeko/popo-bot/internal/entities"
)

// fakeSource returns queued reports or errors from FetchLatest and records
// FetchDate calls.
type fakeSource struct {
	latest    []entities.VolcanoReport
	errs      []error
	byDate    map[entities.Date]entities.VolcanoReport
	dateCalls []entities.Date
	calls     int
}

func (f *fakeSource) FetchLatest(context.Context) (entities.VolcanoReport, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return entities.VolcanoReport{}, f.errs[i]
	}
	if i >= len(f.latest) {
		i = len(f.latest) - 1
	}
	return f.latest[i], nil
}

func (f *fakeSource) FetchDate(_ context.Context, date entities.Date) (entities.VolcanoReport, error) {
	f.dateCalls = append(f.dateCalls, date)
	r, ok := f.byDate[date]
	if !ok {
		return entities.VolcanoReport{}, apperr.DateMismatch(date, entities.Date{Year: 2025, Month: 10, Day: 6})
	}
	return r, nil
}

func sampleReport() entities.VolcanoReport {
	high, harmonic := uint32(39), uint32(14)
	so2 := 2603.0
	so2Date := entities.Date{Year: 2024, Month: 10, Day: 10}
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
		SO2MeasurementDate:         &so2Date,
		AlertLevel:                 entities.AlertYellow,
		AlertPhase:                 "AMARILLO FASE 2",
		WindDirection:              &wind,
		SummarySpanish:             "Se identificaron 15 exhalaciones.\n\nSe registraron 53 minutos de tremor.",
		ImageURLs:                  []string{"https://www.cenapred.unam.mx/media/a.jpg"},
		VideoURLs:                  []string{},
		SourceURL:                  "https://www.cenapred.unam.mx/reportesVolcanesMX/Procesos?tipoProceso=detallesUltimoReporteVolcan",
	}
}

func TestLatest(t *testing.T) {
	src := &fakeSource{latest: []entities.VolcanoReport{sampleReport()}}

	got, err := NewVolcanoUseCase(src).Latest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, sampleReport(), got)
}

func TestByDate(t *testing.T) {
	d := entities.Date{Year: 2025, Month: 10, Day: 6}
	src := &fakeSource{byDate: map[entities.Date]entities.VolcanoReport{d: sampleReport()}}

	got, err := NewVolcanoUseCase(src).ByDate(context.Background(), "2025-10-06")

	require.NoError(t, err)
	assert.Equal(t, d, got.Date)
	assert.Equal(t, []entities.Date{d}, src.dateCalls)
}

func TestByDate_InvalidFormatFailsBeforeFetch(t *testing.T) {
	for _, raw := range []string{"06-10-2025", "2025/10/06", "2025-13-01", "2025-02-30", "", "ayer"} {
		t.Run(raw, func(t *testing.T) {
			src := &fakeSource{}

			_, err := NewVolcanoUseCase(src).ByDate(context.Background(), raw)

			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindParse))
			assert.Contains(t, err.Error(), "YYYY-MM-DD")
			assert.Empty(t, src.dateCalls)
		})
	}
}

func TestByDate_MismatchPassesThrough(t *testing.T) {
	src := &fakeSource{}

	_, err := NewVolcanoUseCase(src).ByDate(context.Background(), "2025-10-07")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrDateMismatch))
}

func TestFormatReport(t *testing.T) {
	out := FormatReport(sampleReport())

	for _, want := range []string{
		"POPOCATÉPETL VOLCANO MONITORING REPORT",
		"📅 Report Date: 2025-10-06",
		"🕐 Report Time: 2025-10-06 18:30:00 UTC",
		"Exhalations:",
		"15",
		"53 minutes",
		"High frequency:",
		"39 minutes",
		"🟡 Alert Level: YELLOW",
		"📋 Phase: AMARILLO FASE 2",
		"🧭 Wind Direction: NW",
		"SO₂ Emissions: 2603 tons/day",
		"Measured: 2024-10-10",
		"📷 Images: 1 available",
		"1. https://www.cenapred.unam.mx/media/a.jpg",
		"🔗 https://www.cenapred.unam.mx/reportesVolcanesMX/Procesos",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Videos")
}

func TestFormatReport_OmitsAbsentSections(t *testing.T) {
	r := sampleReport()
	r.WindDirection = nil
	r.SO2EmissionsTonsPerDay = nil
	r.SO2MeasurementDate = nil
	r.TremorHarmonicMinutes = nil
	r.ImageURLs = []string{}

	out := FormatReport(r)

	assert.NotContains(t, out, "ENVIRONMENTAL CONDITIONS")
	assert.NotContains(t, out, "EMISSIONS")
	assert.NotContains(t, out, "MEDIA")
	assert.NotContains(t, out, "Harmonic")
	assert.Contains(t, out, "High frequency")
}

func TestFormatReport_BoxIsAligned(t *testing.T) {
	lines := strings.Split(FormatReport(sampleReport()), "\n")

	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, len([]rune(lines[0])), len([]rune(lines[1])))
	assert.Equal(t, len([]rune(lines[1])), len([]rune(lines[2])))
}

func TestFormatAlert(t *testing.T) {
	r := sampleReport()
	r.SummarySpanish = strings.Repeat("palabra ", 20) + "\n\nSegundo párrafo."

	out := FormatAlert(r)

	assert.Contains(t, out, "🟡 Current Alert: YELLOW - AMARILLO FASE 2")
	assert.Contains(t, out, "📅 As of: 2025-10-06")
	assert.Contains(t, out, "  Segundo párrafo.\n")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "  palabra") {
			assert.LessOrEqual(t, len([]rune(line)), WrapWidth+2)
		}
	}
}

func TestFormatBrief(t *testing.T) {
	out := FormatBrief(sampleReport())

	assert.Contains(t, out, "🌋 Popocatépetl, 2025-10-06")
	assert.Contains(t, out, "🟡 AMARILLO FASE 2 (YELLOW)")
	assert.Contains(t, out, "⏱️ Tremor: 53 min (39 high frequency, 14 harmonic)")
	assert.Contains(t, out, "☁️ SO₂: 2603 t/day (2024-10-10)")
	assert.Contains(t, out, "🧭 Wind: NW")
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "", 10, nil},
		{"fits", "uno dos", 10, []string{"uno dos"}},
		{"breaks at words", "uno dos tres cuatro", 8, []string{"uno dos", "tres", "cuatro"}},
		{"exact width", "abc def", 7, []string{"abc def"}},
		{"long word alone", "a supercalifragilistico b", 5, []string{"a", "supercalifragilistico", "b"}},
		{"accents count once", "ñañaña ñañaña", 13, []string{"ñañaña ñañaña"}},
		{"collapses whitespace", "  uno \n dos  ", 20, []string{"uno dos"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.text, tt.width))
		})
	}
}
