// Package lexicon maps raw Spanish substrings from the bulletin to typed values.
package lexicon

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abelzeko/popo-bot/internal/apperr"
	"github.com/abelzeko/popo-bot/internal/entities"
)

var spanishMonths = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

// Lower lowercases s with Spanish casing rules. A Caser is stateful, so one is
// built per call.
func Lower(s string) string {
	return cases.Lower(language.Spanish).String(s)
}

// SpanishMonth looks up a month name, ignoring case.
func SpanishMonth(name string) (time.Month, bool) {
	m, ok := spanishMonths[Lower(name)]
	return m, ok
}

// ParseSpanishDate parses "<day> de <Month> de <year>", e.g. "06 de Octubre de 2025".
func ParseSpanishDate(text string) (entities.Date, error) {
	parts := strings.Fields(text)
	if len(parts) != 5 {
		return entities.Date{}, apperr.Parsef("invalid date format: %s", text)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return entities.Date{}, apperr.Parsef("invalid day: %s", parts[0])
	}

	month, ok := SpanishMonth(parts[2])
	if !ok {
		return entities.Date{}, apperr.Parsef("invalid month: %s", parts[2])
	}

	year, err := strconv.Atoi(parts[4])
	if err != nil {
		return entities.Date{}, apperr.Parsef("invalid year: %s", parts[4])
	}

	date, ok := entities.NewDate(year, month, day)
	if !ok {
		return entities.Date{}, apperr.Parsef("invalid date: %d-%d-%d", year, int(month), day)
	}
	return date, nil
}
