package usecases

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abelzeko/popo-bot/internal/entities"
)

// WrapWidth is the line width of wrapped summary text.
const WrapWidth = 63

const timeLayout = "2006-01-02 15:04:05 UTC"

var rule = strings.Repeat("━", WrapWidth)

var alertEmoji = map[entities.AlertLevel]string{
	entities.AlertGreen:  "🟢",
	entities.AlertYellow: "🟡",
	entities.AlertOrange: "🟠",
	entities.AlertRed:    "🔴",
}

// FormatReport renders the full report for a terminal.
func FormatReport(r entities.VolcanoReport) string {
	var b strings.Builder

	writeBox(&b, "POPOCATÉPETL VOLCANO MONITORING REPORT")
	fmt.Fprintf(&b, "📅 Report Date: %s\n", r.Date)
	fmt.Fprintf(&b, "🕐 Report Time: %s\n\n", r.ReportTime.UTC().Format(timeLayout))

	writeSection(&b, "SEISMIC ACTIVITY (Last 24 Hours)")
	fmt.Fprintf(&b, "  💨 %-26s%d\n", "Exhalations:", r.Exhalations)
	fmt.Fprintf(&b, "  💥 %-26s%d\n", "Explosions:", r.Explosions)
	fmt.Fprintf(&b, "  🌍 %-26s%d\n\n", "Volcanotectonic events:", r.VolcanotectonicEvents)
	fmt.Fprintf(&b, "  ⏱️  %-25s%d minutes\n", "Total tremor:", r.TremorMinutesTotal)
	if r.TremorHighFrequencyMinutes != nil {
		fmt.Fprintf(&b, "     └─ %-23s%d minutes\n", "High frequency:", *r.TremorHighFrequencyMinutes)
	}
	if r.TremorHarmonicMinutes != nil {
		fmt.Fprintf(&b, "     └─ %-23s%d minutes\n", "Harmonic:", *r.TremorHarmonicMinutes)
	}
	b.WriteString("\n")

	writeSection(&b, "ALERT STATUS")
	fmt.Fprintf(&b, "  %s Alert Level: %s\n", alertEmoji[r.AlertLevel], r.AlertLevel)
	fmt.Fprintf(&b, "  📋 Phase: %s\n\n", r.AlertPhase)

	if r.WindDirection != nil {
		writeSection(&b, "ENVIRONMENTAL CONDITIONS")
		fmt.Fprintf(&b, "  🧭 Wind Direction: %s\n\n", r.WindDirection)
	}

	if r.SO2EmissionsTonsPerDay != nil {
		writeSection(&b, "EMISSIONS")
		fmt.Fprintf(&b, "  ☁️  SO₂ Emissions: %g tons/day\n", *r.SO2EmissionsTonsPerDay)
		if r.SO2MeasurementDate != nil {
			fmt.Fprintf(&b, "     Measured: %s\n", r.SO2MeasurementDate)
		}
		b.WriteString("\n")
	}

	if len(r.ImageURLs) > 0 || len(r.VideoURLs) > 0 {
		writeSection(&b, "MEDIA")
		writeMediaList(&b, "📷 Images", r.ImageURLs)
		writeMediaList(&b, "🎥 Videos", r.VideoURLs)
		b.WriteString("\n")
	}

	writeSection(&b, "SOURCE")
	fmt.Fprintf(&b, "  🔗 %s\n", r.SourceURL)
	fmt.Fprintf(&b, "  ⏰ Scraped: %s\n", r.ScrapedAt.UTC().Format(timeLayout))
	return b.String()
}

// FormatAlert renders the alert status followed by the wrapped Spanish summary.
func FormatAlert(r entities.VolcanoReport) string {
	var b strings.Builder

	b.WriteString("\n")
	writeBox(&b, "ALERT STATUS DETAILS")
	fmt.Fprintf(&b, "  %s Current Alert: %s - %s\n", alertEmoji[r.AlertLevel], r.AlertLevel, r.AlertPhase)
	fmt.Fprintf(&b, "  📅 As of: %s\n\n", r.Date)

	writeSection(&b, "SUMMARY (Spanish)")
	for _, paragraph := range strings.Split(r.SummarySpanish, "\n\n") {
		for _, line := range Wrap(paragraph, WrapWidth) {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatBrief renders a compact chat message.
func FormatBrief(r entities.VolcanoReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🌋 Popocatépetl, %s\n", r.Date)
	fmt.Fprintf(&b, "%s %s (%s)\n\n", alertEmoji[r.AlertLevel], r.AlertPhase, r.AlertLevel)
	fmt.Fprintf(&b, "💨 Exhalations: %d\n", r.Exhalations)
	fmt.Fprintf(&b, "💥 Explosions: %d\n", r.Explosions)
	fmt.Fprintf(&b, "🌍 Volcanotectonic events: %d\n", r.VolcanotectonicEvents)

	tremor := fmt.Sprintf("⏱️ Tremor: %d min", r.TremorMinutesTotal)
	var parts []string
	if r.TremorHighFrequencyMinutes != nil {
		parts = append(parts, fmt.Sprintf("%d high frequency", *r.TremorHighFrequencyMinutes))
	}
	if r.TremorHarmonicMinutes != nil {
		parts = append(parts, fmt.Sprintf("%d harmonic", *r.TremorHarmonicMinutes))
	}
	if len(parts) > 0 {
		tremor += " (" + strings.Join(parts, ", ") + ")"
	}
	b.WriteString(tremor + "\n")

	if r.WindDirection != nil {
		fmt.Fprintf(&b, "🧭 Wind: %s\n", r.WindDirection)
	}
	if r.SO2EmissionsTonsPerDay != nil {
		so2 := fmt.Sprintf("☁️ SO₂: %g t/day", *r.SO2EmissionsTonsPerDay)
		if r.SO2MeasurementDate != nil {
			so2 += fmt.Sprintf(" (%s)", r.SO2MeasurementDate)
		}
		b.WriteString(so2 + "\n")
	}
	fmt.Fprintf(&b, "\n🔗 %s", r.SourceURL)
	return b.String()
}

// Wrap breaks text into lines of at most width characters at word
// boundaries. A word longer than width gets a line of its own.
func Wrap(text string, width int) []string {
	var lines []string
	var current strings.Builder
	currentLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		switch {
		case currentLen == 0:
			current.WriteString(word)
			currentLen = wordLen
		case currentLen+1+wordLen <= width:
			current.WriteString(" " + word)
			currentLen += 1 + wordLen
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			currentLen = wordLen
		}
	}
	if currentLen > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

func writeBox(b *strings.Builder, title string) {
	inner := WrapWidth
	pad := inner - utf8.RuneCountInString(title)
	left := pad / 2
	right := pad - left

	b.WriteString("╔" + strings.Repeat("═", inner) + "╗\n")
	b.WriteString("║" + strings.Repeat(" ", left) + title + strings.Repeat(" ", right) + "║\n")
	b.WriteString("╚" + strings.Repeat("═", inner) + "╝\n\n")
}

func writeSection(b *strings.Builder, title string) {
	b.WriteString(rule + "\n")
	b.WriteString("  " + title + "\n")
	b.WriteString(rule + "\n\n")
}

func writeMediaList(b *strings.Builder, label string, urls []string) {
	if len(urls) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s: %d available\n", label, len(urls))
	for i, u := range urls {
		if i == 3 {
			break
		}
		fmt.Fprintf(b, "     %d. %s\n", i+1, u)
	}
}
