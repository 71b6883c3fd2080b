package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// QuantityKind selects the unit family a quantity field accepts.
type QuantityKind int

const (
	Length QuantityKind = iota // stored in mm
	Angle                      // stored in degrees
)

var lengthUnits = map[string]float64{
	"":   1,
	"mm": 1,
	"cm": 10,
	"m":  1000,
	"in": 25.4,
	"\"": 25.4,
	"ft": 304.8,
}

var angleUnits = map[string]float64{
	"":    1,
	"°":   1,
	"deg": 1,
	"rad": 180 / math.Pi,
}

// ParseQuantity reads text such as "12.5 mm", "2in" or "90 °" and returns the
// value in the kind's base unit (mm or degrees). A bare number is taken in
// the base unit.
func ParseQuantity(text string, kind QuantityKind) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("empty quantity")
	}
	end := len(s)
	for i, r := range s {
		if !(r >= '0' && r <= '9') && r != '.' && r != '-' && r != '+' && r != 'e' && r != 'E' {
			end = i
			break
		}
	}
	num := strings.TrimSpace(s[:end])
	unit := strings.ToLower(strings.TrimSpace(s[end:]))

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", text)
	}

	units := lengthUnits
	if kind == Angle {
		units = angleUnits
	}
	factor, ok := units[unit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q in %q", unit, text)
	}
	return v * factor, nil
}

// FormatQuantity renders a base-unit value with its unit symbol.
func FormatQuantity(v float64, kind QuantityKind, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	// avoid "-0.00"
	if math.Abs(v) < 0.5*math.Pow(10, -float64(decimals)) {
		v = 0
	}
	if kind == Angle {
		return fmt.Sprintf("%.*f °", decimals, v)
	}
	return fmt.Sprintf("%.*f mm", decimals, v)
}
