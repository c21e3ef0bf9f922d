package guidswap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwapIsSelfInverse(t *testing.T) {
	tests := []struct {
		name string
		in   [16]byte
	}{
		{"zero", [16]byte{}},
		{"sequential", [16]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}},
		{"boundary example", [16]byte{0xec, 0xae, 0x7b, 0x42, 0x4d, 0x05, 0x54, 0x43, 0, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			swapped := Swap(tt.in)
			require.Equal(t, tt.in, Swap(swapped))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	canonical := "427baeec-054d-4354-9a12-0123456789ab"
	stored, err := Encode(canonical)
	require.NoError(t, err)
	require.Equal(t, canonical, Decode(stored))
}

func TestSwapWorkedExample(t *testing.T) {
	// Boundary scenario: 427baeec-054d-4354-... stores as EC AE 7B 42 4D 05
	// 54 43 ... (first group reversed, next two groups pair-swapped).
	stored, err := Encode("427baeec-054d-4354-0000-000000000000")
	require.NoError(t, err)
	require.Equal(t, byte(0xec), stored[0])
	require.Equal(t, byte(0xae), stored[1])
	require.Equal(t, byte(0x7b), stored[2])
	require.Equal(t, byte(0x42), stored[3])
	require.Equal(t, byte(0x4d), stored[4])
	require.Equal(t, byte(0x05), stored[5])
	require.Equal(t, byte(0x54), stored[6])
	require.Equal(t, byte(0x43), stored[7])
}
