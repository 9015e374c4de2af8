package extract

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/abelzeko/popo-bot/internal/apperr"
	"github.com/abelzeko/popo-bot/internal/docindex"
	"github.com/abelzeko/popo-bot/internal/entities"
	"github.com/abelzeko/popo-bot/internal/lexicon"
)

const (
	highFrequencyMarker = "minutos fueron de alta frecuencia"
	harmonicMarker      = "minutos de armónico"

	// NoSummary is used when the page has no usable paragraph.
	NoSummary = "No summary available"

	maxSummaryParagraphs = 3
)

var (
	paragraphSel     = docindex.MustCompile("p")
	divSel           = docindex.MustCompile("div")
	alertSel         = docindex.MustCompile("p, h4")
	emissionsSel     = docindex.MustCompile("div, p")
	alertColorTokens = []string{"AMARILLO", "VERDE", "ROJO", "NARANJA"}
)

// TremorBreakdown reads the high-frequency and harmonic minutes from a
// sentence like "39 minutos fueron de alta frecuencia y 14 minutos de
// armónico". Either value may be nil.
func TremorBreakdown(doc *docindex.Document) (highFrequency, harmonic *uint32) {
	for _, p := range doc.Select(paragraphSel) {
		text := p.Text()
		if !strings.Contains(text, "alta frecuencia") || !strings.Contains(text, "armónico") {
			continue
		}
		if v, ok := NumberBefore(text, highFrequencyMarker); ok {
			highFrequency = &v
		}
		if v, ok := NumberBefore(text, harmonicMarker); ok {
			harmonic = &v
		}
		return highFrequency, harmonic
	}
	return nil, nil
}

// NumberBefore parses the last whitespace-separated word before the first
// occurrence of marker.
func NumberBefore(text, marker string) (uint32, bool) {
	pos := strings.Index(text, marker)
	if pos < 0 {
		return 0, false
	}
	words := strings.Fields(text[:pos])
	if len(words) == 0 {
		return 0, false
	}
	v, err := strconv.ParseUint(words[len(words)-1], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// AlertInfo returns the alert color and the full phase text, e.g.
// "AMARILLO FASE 2".
func AlertInfo(doc *docindex.Document) (entities.AlertLevel, string, error) {
	for _, el := range doc.Select(alertSel) {
		text := el.Text()
		if !containsAny(text, alertColorTokens) {
			continue
		}
		if level, ok := lexicon.ClassifyAlert(text); ok {
			return level, strings.TrimSpace(text), nil
		}
	}
	return 0, "", apperr.Parsef("could not find alert level")
}

// WindDirection looks for the plume direction first in paragraphs mentioning
// "dirección", then in short divs mentioning "viento".
func WindDirection(doc *docindex.Document) *entities.WindDirection {
	for _, p := range doc.Select(paragraphSel) {
		text := p.Text()
		lower := lexicon.Lower(text)
		if !strings.Contains(lower, "dirección") && !strings.Contains(lower, "direccion") {
			continue
		}
		if dir, ok := lexicon.ClassifyWind(text); ok {
			return &dir
		}
	}

	for _, div := range doc.Select(divSel) {
		text := div.Text()
		if !strings.Contains(text, "viento") && !strings.Contains(text, "Viento") {
			continue
		}
		// Larger divs are page sections, not the wind box.
		if utf8.RuneCountInString(text) >= 100 {
			continue
		}
		if dir, ok := lexicon.ClassifyWind(text); ok {
			return &dir
		}
	}
	return nil
}

// SO2 reads the sulfur dioxide flux in tons per day and the day it was
// measured. The two are independent; either may be nil.
func SO2(doc *docindex.Document) (tonsPerDay *float64, measured *entities.Date) {
	for _, el := range doc.Select(emissionsSel) {
		text := el.Text()
		if !strings.Contains(text, "toneladas por día") || !strings.Contains(text, "bióxido de azufre") {
			continue
		}
		words := strings.Fields(text)
		if v, ok := so2Value(words); ok {
			tonsPerDay = &v
		}
		if d, ok := so2Date(words); ok {
			measured = &d
		}
		if tonsPerDay != nil || measured != nil {
			return tonsPerDay, measured
		}
	}
	return nil, nil
}

func so2Value(words []string) (float64, bool) {
	for i := 1; i < len(words); i++ {
		if words[i] != "toneladas" {
			continue
		}
		raw := strings.ReplaceAll(words[i-1], ",", "")
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// so2Date takes the first run of three words that reads as
// <day> <month name> <year>, e.g. "10 octubre 2024".
// Any number followed by a month name and a year matches, so a date
// elsewhere in the paragraph can be picked up first.
func so2Date(words []string) (entities.Date, bool) {
	for i := 0; i+2 < len(words); i++ {
		day, err := strconv.Atoi(trimPunct(words[i]))
		if err != nil {
			continue
		}
		month, ok := lexicon.SpanishMonth(trimPunct(words[i+1]))
		if !ok {
			continue
		}
		year, err := strconv.Atoi(trimPunct(words[i+2]))
		if err != nil {
			continue
		}
		if d, ok := entities.NewDate(year, month, day); ok {
			return d, true
		}
	}
	return entities.Date{}, false
}

func trimPunct(s string) string {
	return strings.TrimRight(s, ".,;:)")
}

// Summary joins up to three descriptive paragraphs with blank lines.
func Summary(doc *docindex.Document) string {
	paragraphs := doc.Select(paragraphSel)

	parts := collectParagraphs(paragraphs, func(text string) bool {
		return containsAny(text, []string{"exhalaciones", "tremor", "actividad"}) &&
			utf8.RuneCountInString(text) > 20
	})
	if len(parts) == 0 {
		parts = collectParagraphs(paragraphs, func(text string) bool {
			return utf8.RuneCountInString(text) > 50
		})
	}
	if len(parts) == 0 {
		return NoSummary
	}
	return strings.Join(parts, "\n\n")
}

func collectParagraphs(paragraphs []docindex.Element, keep func(string) bool) []string {
	var out []string
	for _, p := range paragraphs {
		text := strings.TrimSpace(p.Text())
		if text == "" || !keep(text) {
			continue
		}
		out = append(out, text)
		if len(out) == maxSummaryParagraphs {
			break
		}
	}
	return out
}

func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
