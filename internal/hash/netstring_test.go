package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDotNetStringHash(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 3105},
		{"abc", 96354},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, DotNetStringHash(tt.in), "hash(%q)", tt.in)
	}
}

func TestDotNetStringHashWraps32Bit(t *testing.T) {
	// A long string overflows 32 bits many times over; the result must
	// stay deterministic under wrapping arithmetic.
	long := "GlobalVariableManager/VariableHandles/SomeVeryLongAttributeName"
	h1 := DotNetStringHash(long)
	h2 := DotNetStringHash(long)
	require.Equal(t, h1, h2)

	// hash*31 + c computed in 64 bits and truncated equals the 32-bit
	// wrapping result, since 2^32 divides 2^64.
	var wide uint64
	for _, r := range long {
		wide = wide*31 + uint64(r)
	}
	require.Equal(t, uint32(wide), h1)
}

func TestDotNetStringHashSurrogatePairs(t *testing.T) {
	// U+1F600 decomposes into the surrogate pair D83D DE00 and must hash
	// as two UTF-16 code units, not one rune.
	want := uint32(0xD83D)*31 + uint32(0xDE00)
	require.Equal(t, want, DotNetStringHash("\U0001F600"))
}

func TestBucketStaysInRange(t *testing.T) {
	for _, s := range []string{"", "save", "GlobalVars", "Position", "有効"} {
		b := Bucket(DotNetStringHash(s))
		require.Less(t, b, uint32(NumBuckets))
	}
}
