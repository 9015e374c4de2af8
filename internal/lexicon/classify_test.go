package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abelzeko/popo-bot/internal/entities"
)

func TestClassifyAlert(t *testing.T) {
	tests := []struct {
		in    string
		want  entities.AlertLevel
		found bool
	}{
		{"Amarillo Fase 2", entities.AlertYellow, true},
		{"VERDE", entities.AlertGreen, true},
		{"rojo", entities.AlertRed, true},
		{"NARANJA", entities.AlertOrange, true},
		{"Semáforo de Alerta Volcánica: AMARILLO FASE 2", entities.AlertYellow, true},
		{"verde o amarillo", entities.AlertGreen, true},
		{"unknown", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ClassifyAlert(tt.in)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyWind(t *testing.T) {
	tests := []struct {
		in   string
		want entities.WindDirection
	}{
		{"norte-noroeste", entities.WindNNW},
		{"nornoroeste", entities.WindNNW},
		{"Nor Noroeste", entities.WindNNW},
		{"noroeste", entities.WindNW},
		{"La pluma se dirige al noroeste del volcán", entities.WindNW},
		{"oeste-noroeste", entities.WindWNW},
		{"oeste-suroeste", entities.WindWSW},
		{"sur-suroeste", entities.WindSSW},
		{"suroeste", entities.WindSW},
		{"sur-sureste", entities.WindSSE},
		{"sureste", entities.WindSE},
		{"este-sureste", entities.WindESE},
		{"este-noreste", entities.WindENE},
		{"NORESTE", entities.WindNE},
		{"norte-noreste", entities.WindNNE},
		{"nornoreste", entities.WindNNE},
		{"Norte", entities.WindN},
		{"oeste", entities.WindW},
		{"sur", entities.WindS},
		{"este", entities.WindE},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ClassifyWind(tt.in)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestClassifyWind_NoMatch(t *testing.T) {
	_, ok := ClassifyWind("sin datos de la pluma")
	assert.False(t, ok)
}

func TestNormalizeCompass(t *testing.T) {
	assert.Equal(t, "nortenoroeste", NormalizeCompass("Norte - Noroeste"))
	assert.Equal(t, "direcciónnoroeste", NormalizeCompass("Dirección NOROESTE"))
}
