package compress

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

// frameMagic is the little-endian LZ4 frame magic number. A value that
// starts with this magic is an LZ4 frame (possibly with dependent
// blocks); anything else is treated as a raw LZ4 block, which is how LSF
// always stores its compressed segments.
var frameMagic = []byte{0x04, 0x22, 0x4D, 0x18}

func isLZ4Frame(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], frameMagic)
}

func decompressLZ4(data []byte, uncompressedSize int) ([]byte, error) {
	if isLZ4Frame(data) {
		return decompressLZ4Frame(data, uncompressedSize)
	}
	return decompressLZ4Block(data, uncompressedSize)
}

// decompressLZ4Frame decodes an LZ4 frame, including the dependent-block
// variant (block-independence flag cleared): lz4.Reader maintains the
// 64 KiB sliding window internally across blocks, a behavior many LZ4
// bindings' block-only decoders lack.
func decompressLZ4Frame(data []byte, uncompressedSize int) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))

	out := make([]byte, 0, uncompressedSize)
	buf := bytes.NewBuffer(out)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressLZ4Block(data []byte, uncompressedSize int) ([]byte, error) {
	if uncompressedSize == 0 {
		return []byte{}, nil
	}
	dst := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// compressLZ4Block encodes data as a raw LZ4 block (no frame header),
// matching how LSF stores its compressed segments. Only under the LevelMax
// hint does it try the high-compression compressor first, falling back to
// the standard block encoder when that produces nothing; every other level
// uses the standard block encoder alone.
func compressLZ4Block(data []byte, level byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	if level == LevelMax {
		var c lz4.CompressorHC
		c.Level = lz4.Level9
		n, err := c.CompressBlock(data, dst)
		if err == nil && n > 0 {
			return dst[:n], nil
		}
	}

	var c lz4.Compressor
	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Incompressible input: lz4 reports n==0 when the compressed form
		// would not be smaller than the source. LSF still expects a
		// decodable block, so store it as a literals-only block.
		return storeLZ4Literals(data), nil
	}
	return dst[:n], nil
}

// storeLZ4Literals builds a minimal valid LZ4 block sequence consisting
// of a single literal run covering the whole input, used when the input
// is incompressible.
func storeLZ4Literals(data []byte) []byte {
	var out bytes.Buffer
	n := len(data)

	token := byte(0)
	if n < 15 {
		token = byte(n << 4)
		out.WriteByte(token)
	} else {
		out.WriteByte(0xF0)
		rem := n - 15
		for rem >= 255 {
			out.WriteByte(255)
			rem -= 255
		}
		out.WriteByte(byte(rem))
	}
	out.Write(data)
	return out.Bytes()
}
