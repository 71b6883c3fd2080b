package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantityLength(t *testing.T) {
	cases := map[string]float64{
		"12.5 mm": 12.5,
		"12.5mm":  12.5,
		"3":       3,
		"-2 cm":   -20,
		"1 in":    25.4,
		"0.5 m":   500,
		" 7 MM ":  7,
	}
	for text, want := range cases {
		got, err := ParseQuantity(text, Length)
		require.NoError(t, err, text)
		assert.InDelta(t, want, got, 1e-9, text)
	}
}

func TestParseQuantityAngle(t *testing.T) {
	got, err := ParseQuantity("90 °", Angle)
	require.NoError(t, err)
	assert.InDelta(t, 90.0, got, 1e-9)

	got, err = ParseQuantity("45deg", Angle)
	require.NoError(t, err)
	assert.InDelta(t, 45.0, got, 1e-9)

	got, err = ParseQuantity("3.141592653589793 rad", Angle)
	require.NoError(t, err)
	assert.InDelta(t, 180.0, got, 1e-9)
}

func TestParseQuantityErrors(t *testing.T) {
	_, err := ParseQuantity("", Length)
	assert.Error(t, err)

	_, err = ParseQuantity("abc", Length)
	assert.Error(t, err)

	_, err = ParseQuantity("10 deg", Length)
	assert.Error(t, err, "angle unit in a length field")

	_, err = ParseQuantity("10 mm", Angle)
	assert.Error(t, err, "length unit in an angle field")
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "12.50 mm", FormatQuantity(12.5, Length, 2))
	assert.Equal(t, "90.0 °", FormatQuantity(90, Angle, 1))
	assert.Equal(t, "0.00 mm", FormatQuantity(-1e-9, Length, 2))
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1.25, -300.5, math.Pi} {
		got, err := ParseQuantity(FormatQuantity(v, Length, 6), Length)
		require.NoError(t, err)
		assert.InDelta(t, v, got, 1e-6)
	}
}
