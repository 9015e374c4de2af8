package lexicon

import (
	"strings"

	"github.com/abelzeko/popo-bot/internal/entities"
)

type alertPattern struct {
	token string
	level entities.AlertLevel
}

// Checked top to bottom; the first hit wins.
var alertPatterns = []alertPattern{
	{"verde", entities.AlertGreen},
	{"amarillo", entities.AlertYellow},
	{"naranja", entities.AlertOrange},
	{"rojo", entities.AlertRed},
}

// ClassifyAlert finds the first alert color mentioned in text.
func ClassifyAlert(text string) (entities.AlertLevel, bool) {
	lower := Lower(text)
	for _, p := range alertPatterns {
		if strings.Contains(lower, p.token) {
			return p.level, true
		}
	}
	return 0, false
}

type compassPattern struct {
	token     string
	direction entities.WindDirection
}

// Spanish compound names contain the shorter ones ("nornoroeste" contains
// "noroeste" which contains "oeste"), so three-part points come first, then
// the intercardinals, then the cardinals. Order is significant.
var compassPatterns = []compassPattern{
	{"nortenoroeste", entities.WindNNW},
	{"nornoroeste", entities.WindNNW},
	{"oestenoroeste", entities.WindWNW},
	{"oesnoroeste", entities.WindWNW},
	{"oestennoroeste", entities.WindWNW},
	{"oestesuroeste", entities.WindWSW},
	{"oessuroeste", entities.WindWSW},
	{"oestessuroeste", entities.WindWSW},
	{"sursuroeste", entities.WindSSW},
	{"surssuroeste", entities.WindSSW},
	{"sursureste", entities.WindSSE},
	{"surssureste", entities.WindSSE},
	{"estesureste", entities.WindESE},
	{"estessureste", entities.WindESE},
	{"estenoreste", entities.WindENE},
	{"nortenoreste", entities.WindNNE},
	{"nornoreste", entities.WindNNE},

	{"noroeste", entities.WindNW},
	{"suroeste", entities.WindSW},
	{"sureste", entities.WindSE},
	{"noreste", entities.WindNE},

	{"norte", entities.WindN},
	{"oeste", entities.WindW},
	{"sur", entities.WindS},
	{"este", entities.WindE},
}

// NormalizeCompass lowercases text and strips spaces and hyphens, so
// "Norte-Noroeste" and "nor noroeste" compare like "nortenoroeste".
func NormalizeCompass(text string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(Lower(text))
}

// ClassifyWind returns the first compass point named in text.
func ClassifyWind(text string) (entities.WindDirection, bool) {
	normalized := NormalizeCompass(text)
	for _, p := range compassPatterns {
		if strings.Contains(normalized, p.token) {
			return p.direction, true
		}
	}
	return 0, false
}
