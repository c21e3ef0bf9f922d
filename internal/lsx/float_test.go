package lsx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatFloat32BoundaryScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want string
	}{
		{"small scientific", -3.61999e-06, "-3.61999E-06"},
		{"simple fixed", 0.1, "0.1"},
		{"zero", 0, "0"},
		{"negative zero", float32(copySign0()), "-0"},
		{"integer", 2, "2"},
		{"negative integer", -42, "-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatFloat32(tt.in))
		})
	}
}

func copySign0() float32 {
	var zero float32
	return -zero
}

func TestFormatFloat32RoundTrips(t *testing.T) {
	values := []float32{0, 1, -1, 0.5, 123.456, 1e20, -1e-20, 3.14159265}
	for _, v := range values {
		s := FormatFloat32(v)
		require.True(t, roundTrips32(s, v), "formatted %q does not round-trip to %v", s, v)
	}
}

func TestFormatFloat64RoundTrips(t *testing.T) {
	values := []float64{0, 1, -1, 0.1, 123456.789, 1e100, -1e-100}
	for _, v := range values {
		s := FormatFloat64(v)
		require.True(t, roundTrips64(s, v), "formatted %q does not round-trip to %v", s, v)
	}
}
