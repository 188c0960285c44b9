package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVisitDateAcceptsBothForms(t *testing.T) {
	numeric, err := ParseVisitDate("24.12.2025")
	require.NoError(t, err)
	long, err := ParseVisitDate("24 December 2025")
	require.NoError(t, err)
	assert.True(t, numeric.Equal(long))
	assert.Equal(t, time.December, numeric.Month())

	_, err = ParseVisitDate("next friday")
	assert.Error(t, err)
}

func TestParseVisitTime(t *testing.T) {
	hour, err := ParseVisitTime("18:00")
	require.NoError(t, err)
	assert.Equal(t, 18, hour)

	hour, err = ParseVisitTime("23:30")
	require.NoError(t, err)
	assert.Equal(t, 23, hour)

	for _, bad := range []string{"", "18", "25:00", "-1:00", "six pm"} {
		_, err := ParseVisitTime(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseTier(t *testing.T) {
	for input, want := range map[string]Tier{
		"express":           TierExpress,
		"Express (15 min)":  TierExpress,
		"STANDARD":          TierStandard,
		"  extended ":       TierExtended,
		"Extended (60 min)": TierExtended,
		"Standard (30 min)": TierStandard,
	} {
		got, ok := ParseTier(input)
		require.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := ParseTier("deluxe")
	assert.False(t, ok)
}

func TestTierDurations(t *testing.T) {
	assert.Equal(t, 15, TierExpress.DurationMinutes())
	assert.Equal(t, 30, TierStandard.DurationMinutes())
	assert.Equal(t, 60, TierExtended.DurationMinutes())
}

func TestSlotKeyIsExactConcatenation(t *testing.T) {
	o := Order{VisitDate: "24.12.2025", VisitTime: "18:00"}
	assert.Equal(t, "24.12.2025 18:00", o.SlotKey())
}
