package entities

import (
	"fmt"
	"strings"
)

// WindDirection is a point of the 16-point compass.
type WindDirection int

const (
	WindN WindDirection = iota + 1
	WindNNE
	WindNE
	WindENE
	WindE
	WindESE
	WindSE
	WindSSE
	WindS
	WindSSW
	WindSW
	WindWSW
	WindW
	WindWNW
	WindNW
	WindNNW
)

var windNames = [...]string{
	WindN: "N", WindNNE: "NNE", WindNE: "NE", WindENE: "ENE",
	WindE: "E", WindESE: "ESE", WindSE: "SE", WindSSE: "SSE",
	WindS: "S", WindSSW: "SSW", WindSW: "SW", WindWSW: "WSW",
	WindW: "W", WindWNW: "WNW", WindNW: "NW", WindNNW: "NNW",
}

// WindDirections lists all points clockwise from north.
var WindDirections = []WindDirection{
	WindN, WindNNE, WindNE, WindENE, WindE, WindESE, WindSE, WindSSE,
	WindS, WindSSW, WindSW, WindWSW, WindW, WindWNW, WindNW, WindNNW,
}

// String returns the compass abbreviation, e.g. "NNW".
func (w WindDirection) String() string {
	if !w.Valid() {
		return fmt.Sprintf("WindDirection(%d)", int(w))
	}
	return windNames[w]
}

// Valid reports whether w is a known compass point.
func (w WindDirection) Valid() bool {
	return w >= WindN && w <= WindNNW
}

// Kebab returns the lowercase hyphenated form used on the wire: "NNW" -> "n-n-w".
func (w WindDirection) Kebab() string {
	letters := strings.Split(strings.ToLower(w.String()), "")
	return strings.Join(letters, "-")
}

// MarshalText implements encoding.TextMarshaler.
func (w WindDirection) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("invalid wind direction %d", int(w))
	}
	return []byte(w.Kebab()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *WindDirection) UnmarshalText(text []byte) error {
	for _, dir := range WindDirections {
		if dir.Kebab() == string(text) || strings.EqualFold(dir.String(), string(text)) {
			*w = dir
			return nil
		}
	}
	return fmt.Errorf("unknown wind direction %q", string(text))
}
