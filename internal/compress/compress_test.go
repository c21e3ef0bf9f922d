package compress

import (
	"bytes"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"

	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
)

func samplePayload() []byte {
	return bytes.Repeat([]byte("larian-block-payload-"), 64)
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	payload := samplePayload()

	tests := []struct {
		name  string
		flags byte
	}{
		{"none", byte(MethodNone)},
		{"zlib default", byte(MethodZlib) | LevelDefault},
		{"zlib fast", byte(MethodZlib) | LevelFast},
		{"lz4", byte(MethodLZ4)},
		{"lz4 max", byte(MethodLZ4) | LevelMax},
		{"zstd", byte(MethodZstd) | LevelDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := Compress(payload, tt.flags)
			require.NoError(t, err)

			out, diags, err := Decompress(compressed, len(payload), tt.flags, Options{})
			require.NoError(t, err)
			require.Empty(t, diags)
			require.Equal(t, payload, out)
		})
	}
}

func TestDecompressLZ4FrameInput(t *testing.T) {
	payload := samplePayload()

	var framed bytes.Buffer
	w := lz4.NewWriter(&framed)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out, _, err := Decompress(framed.Bytes(), len(payload), byte(MethodLZ4), Options{})
	require.NoError(t, err)
	require.Equal(t, payload, out)
}

func TestCompressIncompressibleLZ4StillDecodes(t *testing.T) {
	// Pseudo-random bytes defeat the block matcher; the writer must still
	// emit a decodable literals-only block.
	payload := make([]byte, 256)
	seed := uint32(0x9E3779B9)
	for i := range payload {
		seed = seed*1664525 + 1013904223
		payload[i] = byte(seed >> 24)
	}

	compressed, err := Compress(payload, byte(MethodLZ4))
	require.NoError(t, err)

	out, _, err := Decompress(compressed, len(payload), byte(MethodLZ4), Options{})
	require.NoError(t, err)
	require.Equal(t, payload, out)
}

func TestDecompressUnknownMethodTag(t *testing.T) {
	_, _, err := Decompress([]byte{1, 2, 3}, 3, 0x0F, Options{})
	require.Error(t, err)
	require.True(t, lserr.Is(err, lserr.KindUnsupportedCompression))
}

func TestDecompressCorruptPayload(t *testing.T) {
	_, _, err := Decompress([]byte{0xFF, 0xFE, 0xFD}, 64, byte(MethodZlib), Options{})
	require.Error(t, err)
	require.True(t, lserr.Is(err, lserr.KindCorruptPayload))
}

func TestValueBlockFallbackZeroPads(t *testing.T) {
	garbage := []byte{0xFF, 0xFE, 0xFD}
	out, diags, err := Decompress(garbage, 8, byte(MethodZlib), Options{ForLSFValueBlock: true})
	require.NoError(t, err)
	require.NotEmpty(t, diags)
	require.Len(t, out, 8)
	require.Equal(t, garbage, out[:3])
	require.Equal(t, []byte{0, 0, 0, 0, 0}, out[3:])
}
