// Package entities contains the core domain objects for the popo-bot application
package entities

import (
	"time"
)

// VolcanoReport represents one day's Popocatépetl activity bulletin.
// A report is built once per fetch and never modified afterwards.
type VolcanoReport struct {
	Date       Date      `json:"date" jsonschema_description:"Bulletin date"`
	ReportTime time.Time `json:"report_time" jsonschema_description:"When the report was assembled"`
	ScrapedAt  time.Time `json:"scraped_at" jsonschema_description:"When the page was retrieved"`

	// Seismic activity
	Exhalations                uint32  `json:"exhalations" jsonschema_description:"Exhalations in the last 24 hours"`
	VolcanotectonicEvents      uint32  `json:"volcanotectonic_events" jsonschema_description:"Volcanotectonic earthquakes in the last 24 hours"`
	TremorMinutesTotal         uint32  `json:"tremor_minutes_total" jsonschema_description:"Minutes of tremor in the last 24 hours"`
	TremorHighFrequencyMinutes *uint32 `json:"tremor_high_frequency_minutes" jsonschema_description:"Part of the tremor that was high frequency"`
	TremorHarmonicMinutes      *uint32 `json:"tremor_harmonic_minutes" jsonschema_description:"Part of the tremor that was harmonic"`
	Explosions                 uint32  `json:"explosions" jsonschema_description:"Explosions in the last 24 hours"`

	// Emissions
	SO2EmissionsTonsPerDay *float64 `json:"so2_emissions_tons_per_day" jsonschema_description:"Last measured SO2 flux"`
	SO2MeasurementDate     *Date    `json:"so2_measurement_date" jsonschema_description:"Day the SO2 flux was measured"`

	// Alert status
	AlertLevel AlertLevel `json:"alert_level" jsonschema_description:"Volcanic alert traffic light color"`
	AlertPhase string     `json:"alert_phase" jsonschema_description:"Alert phase as published, e.g. AMARILLO FASE 2"`

	WindDirection *WindDirection `json:"wind_direction" jsonschema_description:"Direction the ash plume is heading"`

	SummarySpanish string `json:"summary_spanish" jsonschema_description:"Up to three bulletin paragraphs in Spanish"`

	ImageURLs []string `json:"image_urls" jsonschema_description:"Linked photos"`
	VideoURLs []string `json:"video_urls" jsonschema_description:"Linked videos"`

	SourceURL string `json:"source_url" jsonschema_description:"Page the report was read from"`
}
