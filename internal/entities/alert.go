package entities

import (
	"fmt"
	"strings"
)

// AlertLevel is the volcanic alert traffic light, ordered by severity.
type AlertLevel int

const (
	AlertGreen AlertLevel = iota + 1
	AlertYellow
	AlertOrange
	AlertRed
)

// AlertLevels lists every level from least to most severe.
var AlertLevels = []AlertLevel{AlertGreen, AlertYellow, AlertOrange, AlertRed}

var alertNames = map[AlertLevel]string{
	AlertGreen:  "GREEN",
	AlertYellow: "YELLOW",
	AlertOrange: "ORANGE",
	AlertRed:    "RED",
}

var alertSpanish = map[AlertLevel]string{
	AlertGreen:  "verde",
	AlertYellow: "amarillo",
	AlertOrange: "naranja",
	AlertRed:    "rojo",
}

// String returns the uppercase English color name.
func (a AlertLevel) String() string {
	if name, ok := alertNames[a]; ok {
		return name
	}
	return fmt.Sprintf("AlertLevel(%d)", int(a))
}

// Spanish returns the lowercase Spanish color name used by the bulletin.
func (a AlertLevel) Spanish() string {
	return alertSpanish[a]
}

// Valid reports whether a is one of the four known levels.
func (a AlertLevel) Valid() bool {
	_, ok := alertNames[a]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (a AlertLevel) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid alert level %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AlertLevel) UnmarshalText(text []byte) error {
	for level, name := range alertNames {
		if strings.EqualFold(name, string(text)) {
			*a = level
			return nil
		}
	}
	return fmt.Errorf("unknown alert level %q", string(text))
}
