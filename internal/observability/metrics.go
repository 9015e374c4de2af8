package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/abelzeko/popo-bot/internal/entities"
)

const namespace = "popo"

// Fetch outcomes used as the "outcome" label.
const (
	OutcomeSuccess      = "success"
	OutcomeNetworkError = "network_error"
	OutcomeParseError   = "parse_error"
)

// Metrics holds the Prometheus collectors for bulletin fetching.
type Metrics struct {
	FetchRequests *prometheus.CounterVec   // labels: mode={latest,date}, outcome
	FetchDuration *prometheus.HistogramVec // labels: mode
	ParseFailures prometheus.Counter

	// Latest bulletin values.
	AlertLevel          prometheus.Gauge
	Exhalations         prometheus.Gauge
	TremorMinutes       prometheus.Gauge
	Explosions          prometheus.Gauge
	SO2TonsPerDay       prometheus.Gauge
	LastReportTimestamp prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Bulletin fetches by mode and outcome.",
		}, []string{"mode", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time to download and parse one bulletin.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"mode"}),
		ParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_failures_total",
			Help:      "Bulletins that could not be assembled into a report.",
		}),
		AlertLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alert_level",
			Help:      "Volcanic alert level of the latest bulletin (1 green .. 4 red).",
		}),
		Exhalations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "exhalations",
			Help:      "Exhalations counted in the latest bulletin.",
		}),
		TremorMinutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tremor_minutes",
			Help:      "Minutes of tremor in the latest bulletin.",
		}),
		Explosions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "explosions",
			Help:      "Explosions counted in the latest bulletin.",
		}),
		SO2TonsPerDay: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "so2_tons_per_day",
			Help:      "Last reported SO2 flux in tons per day.",
		}),
		LastReportTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_report_timestamp_seconds",
			Help:      "Unix time of the latest bulletin date.",
		}),
	}
}

// NewMetrics creates the metrics and registers them with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.ParseFailures,
		m.AlertLevel,
		m.Exhalations,
		m.TremorMinutes,
		m.Explosions,
		m.SO2TonsPerDay,
		m.LastReportTimestamp,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build as many
// as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// ObserveReport copies the headline values of r into the gauges.
func (m *Metrics) ObserveReport(r entities.VolcanoReport) {
	m.AlertLevel.Set(float64(r.AlertLevel))
	m.Exhalations.Set(float64(r.Exhalations))
	m.TremorMinutes.Set(float64(r.TremorMinutesTotal))
	m.Explosions.Set(float64(r.Explosions))
	if r.SO2EmissionsTonsPerDay != nil {
		m.SO2TonsPerDay.Set(*r.SO2EmissionsTonsPerDay)
	}
	m.LastReportTimestamp.Set(float64(r.Date.Time().Unix()))
}
