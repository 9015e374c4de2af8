package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate(t *testing.T) {
	d, ok := NewDate(2024, time.February, 29)
	assert.True(t, ok)
	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, d)

	for _, tt := range []struct {
		y, d int
		m    time.Month
	}{
		{2023, 29, time.February},
		{2025, 31, time.April},
		{2025, 0, time.May},
		{2025, 1, 13},
	} {
		_, ok := NewDate(tt.y, tt.m, tt.d)
		assert.False(t, ok, "%d-%d-%d", tt.y, tt.m, tt.d)
	}
}

func TestDateFormatting(t *testing.T) {
	d := Date{Year: 2025, Month: time.October, Day: 6}

	assert.Equal(t, "2025-10-06", d.String())
	assert.Equal(t, "06-10-2025", d.DMY())
	assert.Equal(t, time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC), d.Time())
	assert.False(t, d.IsZero())
	assert.True(t, Date{}.IsZero())
}

func TestDateText(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-10-06"`), &d))
	assert.Equal(t, Date{Year: 2025, Month: time.October, Day: 6}, d)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-10-06"`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`"06-10-2025"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"2025-02-30"`), &d))
}

func TestAlertLevel(t *testing.T) {
	assert.True(t, AlertGreen < AlertYellow && AlertYellow < AlertOrange && AlertOrange < AlertRed)
	assert.Equal(t, "YELLOW", AlertYellow.String())
	assert.Equal(t, "amarillo", AlertYellow.Spanish())
	assert.False(t, AlertLevel(0).Valid())

	b, err := json.Marshal(AlertOrange)
	require.NoError(t, err)
	assert.Equal(t, `"ORANGE"`, string(b))

	var a AlertLevel
	require.NoError(t, json.Unmarshal([]byte(`"red"`), &a))
	assert.Equal(t, AlertRed, a)
	assert.Error(t, json.Unmarshal([]byte(`"purple"`), &a))

	_, err = json.Marshal(AlertLevel(9))
	assert.Error(t, err)
}

func TestWindDirection(t *testing.T) {
	assert.Len(t, WindDirections, 16)
	assert.Equal(t, "NNW", WindNNW.String())
	assert.Equal(t, "n-n-w", WindNNW.Kebab())
	assert.Equal(t, "n", WindN.Kebab())
	assert.Equal(t, "s-e", WindSE.Kebab())

	for _, dir := range WindDirections {
		b, err := json.Marshal(dir)
		require.NoError(t, err)

		var back WindDirection
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, dir, back)
	}

	var w WindDirection
	require.NoError(t, json.Unmarshal([]byte(`"wsw"`), &w))
	assert.Equal(t, WindWSW, w)
	assert.Error(t, json.Unmarshal([]byte(`"up"`), &w))
}
