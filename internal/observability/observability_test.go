package observability

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelzeko/popo-bot/internal/entities"
)

// value reads the current value of a gauge or counter.
func value(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	if m.Gauge != nil {
		return m.GetGauge().GetValue()
	}
	return m.GetCounter().GetValue()
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "json")

	logger.Debug().Msg("hidden")
	logger.Info().Str("url", "http://example.com").Msg("fetched")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "fetched", line["message"])
	assert.Equal(t, "http://example.com", line["url"])
	assert.Equal(t, "info", line["level"])
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug", "console")

	logger.Debug().Str("date", "2025-10-06").Msg("parsing")

	out := buf.String()
	assert.Contains(t, out, "parsing")
	assert.Contains(t, out, "date=")
	assert.Contains(t, out, "2025-10-06")
}

func TestObserveReport(t *testing.T) {
	m := NewMetricsForTesting()
	so2 := 2603.0
	report := entities.VolcanoReport{
		Date:                   entities.Date{Year: 2025, Month: 10, Day: 6},
		Exhalations:            15,
		TremorMinutesTotal:     53,
		Explosions:             2,
		AlertLevel:             entities.AlertYellow,
		SO2EmissionsTonsPerDay: &so2,
	}

	m.ObserveReport(report)

	assert.Equal(t, 2.0, value(t, m.AlertLevel))
	assert.Equal(t, 15.0, value(t, m.Exhalations))
	assert.Equal(t, 53.0, value(t, m.TremorMinutes))
	assert.Equal(t, 2.0, value(t, m.Explosions))
	assert.Equal(t, 2603.0, value(t, m.SO2TonsPerDay))
	assert.Equal(t,
		float64(time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC).Unix()),
		value(t, m.LastReportTimestamp))
}

func TestObserveReport_KeepsSO2WhenAbsent(t *testing.T) {
	m := NewMetricsForTesting()
	m.SO2TonsPerDay.Set(1200)

	m.ObserveReport(entities.VolcanoReport{AlertLevel: entities.AlertGreen})

	assert.Equal(t, 1200.0, value(t, m.SO2TonsPerDay))
	assert.Equal(t, 1.0, value(t, m.AlertLevel))
}

func TestFetchRequestsLabels(t *testing.T) {
	m := NewMetricsForTesting()

	m.FetchRequests.WithLabelValues("latest", OutcomeSuccess).Inc()
	m.FetchRequests.WithLabelValues("latest", OutcomeSuccess).Inc()
	m.FetchRequests.WithLabelValues("date", OutcomeParseError).Inc()

	assert.Equal(t, 2.0, value(t, m.FetchRequests.WithLabelValues("latest", OutcomeSuccess)))
	assert.Equal(t, 1.0, value(t, m.FetchRequests.WithLabelValues("date", OutcomeParseError)))
}
