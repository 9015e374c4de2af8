// Package extract pulls individual bulletin fields out of a parsed page.
// Every function is a read-only scan of the document; optional fields report
// absence with nil or an empty slice, mandatory ones with an apperr Parse
// error.
package extract

import (
	"strings"
	"unicode"

	"github.com/abelzeko/popo-bot/internal/apperr"
	"github.com/abelzeko/popo-bot/internal/docindex"
	"github.com/abelzeko/popo-bot/internal/entities"
	"github.com/abelzeko/popo-bot/internal/lexicon"
)

var headingSel = docindex.MustCompile("h4")

// Date returns the bulletin date from the first h4 heading that carries one,
// either as "06 de Octubre de 2025" or as an ISO date token.
func Date(doc *docindex.Document) (entities.Date, error) {
	for _, h := range doc.Select(headingSel) {
		text := strings.TrimSpace(h.Text())

		if strings.Contains(text, "de") && strings.Contains(text, "de 20") {
			if d, err := lexicon.ParseSpanishDate(text); err == nil {
				return d, nil
			}
		}

		if d, ok := isoDateToken(text); ok {
			return d, nil
		}
	}
	return entities.Date{}, apperr.Parsef("date not found")
}

// isoDateToken finds a token starting with YYYY-MM-DD, e.g. "2025-10-06" or
// "2025-10-06T08:00".
func isoDateToken(text string) (entities.Date, bool) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\u00a0'
	})
	for _, tok := range tokens {
		if len(tok) < 10 {
			continue
		}
		candidate := tok[:10]
		if strings.Count(candidate, "-") != 2 {
			continue
		}
		if d, err := entities.ParseISODate(candidate); err == nil {
			return d, true
		}
	}
	return entities.Date{}, false
}
