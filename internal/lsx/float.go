package lsx

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat32 reproduces the reference tool's float.ToString behavior:
// a shortest round-trippable decimal (or, outside [1e-4, 1e15), scientific
// notation with 5-8 significant digits), using round-half-to-even on the
// exact binary value the way Go's own strconv.FormatFloat already does.
func FormatFloat32(v float32) string {
	if v == 0 {
		if math.Signbit(float64(v)) {
			return "-0"
		}
		return "0"
	}

	abs := math.Abs(float64(v))
	if abs < 1e-4 || abs >= 1e15 {
		return formatScientific(v)
	}
	return formatFixed(v)
}

func formatFixed(v float32) string {
	for d := 0; d <= 15; d++ {
		s := strconv.FormatFloat(float64(v), 'f', d, 32)
		if roundTrips32(s, v) {
			return trimFixed(s)
		}
	}
	return trimFixed(strconv.FormatFloat(float64(v), 'f', 15, 32))
}

func trimFixed(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// formatScientific emits the reference tool's scientific notation: 5..8
// significant digits (precision 4..7 after the leading digit), uppercase
// E, exponent sign always present, exponent zero-padded to >= 2 digits.
// Go's 'E' verb already guarantees the sign and minimum exponent width.
func formatScientific(v float32) string {
	for prec := 4; prec <= 7; prec++ {
		s := strconv.FormatFloat(float64(v), 'E', prec, 32)
		if roundTrips32(s, v) {
			return s
		}
	}
	return strconv.FormatFloat(float64(v), 'E', 7, 32)
}

func roundTrips32(s string, v float32) bool {
	parsed, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return false
	}
	return float32(parsed) == v
}

// FormatFloat64 applies the same shortest-round-trip rule as
// FormatFloat32, at double precision, for the Double attribute type.
func FormatFloat64(v float64) string {
	if v == 0 {
		if math.Signbit(v) {
			return "-0"
		}
		return "0"
	}

	abs := math.Abs(v)
	if abs < 1e-4 || abs >= 1e15 {
		for prec := 4; prec <= 16; prec++ {
			s := strconv.FormatFloat(v, 'E', prec, 64)
			if roundTrips64(s, v) {
				return s
			}
		}
		return strconv.FormatFloat(v, 'E', 16, 64)
	}

	for d := 0; d <= 17; d++ {
		s := strconv.FormatFloat(v, 'f', d, 64)
		if roundTrips64(s, v) {
			return trimFixed(s)
		}
	}
	return trimFixed(strconv.FormatFloat(v, 'f', 17, 64))
}

func roundTrips64(s string, v float64) bool {
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return parsed == v
}
