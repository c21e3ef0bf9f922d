// Package compress implements the method-dispatched compression facade
// shared by the LSF and LSV codecs.
package compress

import (
	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
)

// Method identifies one of the four compression algorithms a block may be
// stored under. It occupies the low 4 bits of a methodFlags byte.
type Method byte

// Compression methods, as encoded in the low 4 bits of methodFlags.
const (
	MethodNone Method = 0
	MethodZlib Method = 1
	MethodLZ4  Method = 2
	MethodZstd Method = 3
)

// Level hints occupy the high bits of methodFlags and are consulted only
// by the writer; the reader never needs them to decode a block.
const (
	LevelFast    byte = 0x10
	LevelDefault byte = 0x20
	LevelMax     byte = 0x40
)

const methodMask = 0x0F

// MethodOf extracts the compression method from a methodFlags byte.
func MethodOf(methodFlags byte) Method {
	return Method(methodFlags & methodMask)
}

// ForLSFValueBlock, when passed to Decompress, enables the BG3 level-cache
// fallback path: on total decode failure, return the raw compressed bytes
// zero-padded to uncompressedSize instead of propagating an error. This
// fallback is empirically necessary for some BG3 level caches and is not
// a documented format variant; it must never be applied outside LSF
// value-block decoding.
type Options struct {
	ForLSFValueBlock bool
}

// Decompress decompresses data that was compressed under methodFlags,
// expecting uncompressedSize bytes of output.
func Decompress(data []byte, uncompressedSize int, methodFlags byte, opts Options) ([]byte, []string, error) {
	var diagnostics []string

	if uncompressedSize == 0 {
		return []byte{}, diagnostics, nil
	}

	switch MethodOf(methodFlags) {
	case MethodNone:
		if len(data) < uncompressedSize {
			if opts.ForLSFValueBlock {
				return zeroPad(data, uncompressedSize), append(diagnostics, "raw block shorter than declared size, zero-padded"), nil
			}
			return nil, diagnostics, lserr.New(lserr.KindCorruptPayload, "stored block shorter than declared size")
		}
		out := make([]byte, uncompressedSize)
		copy(out, data[:uncompressedSize])
		return out, diagnostics, nil

	case MethodZlib:
		out, err := decompressZlib(data, uncompressedSize)
		if err != nil {
			if opts.ForLSFValueBlock {
				return zeroPad(data, uncompressedSize), append(diagnostics, "zlib decode failed, falling back to zero-padded raw bytes: "+err.Error()), nil
			}
			return nil, diagnostics, lserr.Wrap(lserr.KindCorruptPayload, "zlib decompress failed", err)
		}
		return out, diagnostics, nil

	case MethodLZ4:
		out, err := decompressLZ4(data, uncompressedSize)
		if err != nil {
			// Fallback ladder: try zstd, then (LSF value blocks only)
			// raw bytes zero-padded to uncompressedSize.
			if out2, err2 := decompressZstd(data, uncompressedSize); err2 == nil {
				return out2, append(diagnostics, "lz4 decode failed, zstd fallback succeeded"), nil
			}
			if opts.ForLSFValueBlock {
				return zeroPad(data, uncompressedSize), append(diagnostics, "lz4 and zstd decode both failed, zero-padded raw bytes used"), nil
			}
			return nil, diagnostics, lserr.Wrap(lserr.KindCorruptPayload, "lz4 decompress failed", err)
		}
		return out, diagnostics, nil

	case MethodZstd:
		out, err := decompressZstd(data, uncompressedSize)
		if err != nil {
			if opts.ForLSFValueBlock {
				return zeroPad(data, uncompressedSize), append(diagnostics, "zstd decode failed, zero-padded raw bytes used"), nil
			}
			return nil, diagnostics, lserr.Wrap(lserr.KindCorruptPayload, "zstd decompress failed", err)
		}
		return out, diagnostics, nil

	default:
		return nil, diagnostics, lserr.New(lserr.KindUnsupportedCompression, "unknown compression method tag")
	}
}

// Compress compresses data under the method selected by the low 4 bits of
// methodFlags, honoring the level hint in the high bits where the
// underlying codec supports it.
func Compress(data []byte, methodFlags byte) ([]byte, error) {
	switch MethodOf(methodFlags) {
	case MethodNone:
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil

	case MethodZlib:
		return compressZlib(data, levelFor(methodFlags))

	case MethodLZ4:
		return compressLZ4Block(data, levelFor(methodFlags))

	case MethodZstd:
		return compressZstd(data, levelFor(methodFlags))

	default:
		return nil, lserr.New(lserr.KindUnsupportedCompression, "unknown compression method tag")
	}
}

func levelFor(methodFlags byte) byte {
	return methodFlags &^ methodMask
}

func zeroPad(data []byte, size int) []byte {
	out := make([]byte, size)
	copy(out, data)
	return out
}
