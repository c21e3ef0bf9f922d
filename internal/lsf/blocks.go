package lsf

import (
	"github.com/Smotherer007/pLarianSaveTools/internal/compress"
	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
)

// rawBlocks holds the five decompressed byte ranges an LSF document is
// built from.
type rawBlocks struct {
	Strings    []byte
	Keys       []byte
	Nodes      []byte
	Attributes []byte
	Values     []byte

	Diagnostics []string
}

// sliceBlock takes the next sz.Compressed bytes (or sz.Uncompressed, if
// stored raw) off the front of data, returning the slice and the
// remainder.
func sliceBlock(data []byte, sz blockSizes) (block []byte, rest []byte, err error) {
	n := int(sz.Compressed)
	if sz.Compressed == 0 && sz.Uncompressed > 0 {
		n = int(sz.Uncompressed)
	}
	if n < 0 || n > len(data) {
		return nil, nil, lserr.New(lserr.KindCorruptHeader, "block size exceeds buffer")
	}
	return data[:n], data[n:], nil
}

func decodeOneBlock(data []byte, sz blockSizes, methodFlags byte, forValueBlock bool) ([]byte, []string, error) {
	if sz.Compressed == 0 && sz.Uncompressed > 0 {
		// Stored raw.
		if len(data) < int(sz.Uncompressed) {
			return nil, nil, lserr.New(lserr.KindCorruptBlock, "stored-raw block shorter than declared size")
		}
		out := make([]byte, sz.Uncompressed)
		copy(out, data[:sz.Uncompressed])
		return out, nil, nil
	}
	return compress.Decompress(data, int(sz.Uncompressed), methodFlags, compress.Options{ForLSFValueBlock: forValueBlock})
}

// readBlocks splits payload (everything after the metadata block) into
// the five decompressed sections, in the version-dependent on-disk order.
func readBlocks(payload []byte, m metadata, version uint32) (rawBlocks, error) {
	var out rawBlocks
	rest := payload

	take := func(sz blockSizes, forValue bool) ([]byte, error) {
		block, r, err := sliceBlock(rest, sz)
		if err != nil {
			return nil, err
		}
		rest = r
		decoded, diag, err := decodeOneBlock(block, sz, m.CompressionFlags, forValue)
		if err != nil {
			return nil, lserr.Wrap(lserr.KindCorruptBlock, "decompressing LSF block", err)
		}
		out.Diagnostics = append(out.Diagnostics, diag...)
		return decoded, nil
	}

	var err error
	if out.Strings, err = take(m.Strings, false); err != nil {
		return out, err
	}

	if version >= 6 {
		if out.Nodes, err = take(m.Nodes, false); err != nil {
			return out, err
		}
		if out.Keys, err = take(m.Keys, false); err != nil {
			return out, err
		}
	} else {
		// No size field exists for a pre-v6 keys block; it is treated as
		// always absent (see DESIGN.md).
		if out.Nodes, err = take(m.Nodes, false); err != nil {
			return out, err
		}
	}

	if out.Attributes, err = take(m.Attributes, false); err != nil {
		return out, err
	}
	if out.Values, err = take(m.Values, true); err != nil {
		return out, err
	}
	return out, nil
}

// compressBlock compresses src under methodFlags, reporting both sizes.
// An empty input is emitted as a zero-sized on-disk block.
func compressBlock(src []byte, methodFlags byte) ([]byte, blockSizes, error) {
	if len(src) == 0 {
		return nil, blockSizes{}, nil
	}
	out, err := compress.Compress(src, methodFlags)
	if err != nil {
		return nil, blockSizes{}, err
	}
	return out, blockSizes{Uncompressed: uint32(len(src)), Compressed: uint32(len(out))}, nil
}
