package compress

import (
	"github.com/klauspost/compress/zstd"
)

func decompressZstd(data []byte, uncompressedSize int) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, make([]byte, 0, uncompressedSize))
	if err != nil {
		return nil, err
	}
	return out, nil
}

func compressZstd(data []byte, level byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdLevel(level)))
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	return enc.EncodeAll(data, nil), nil
}

func zstdLevel(level byte) zstd.EncoderLevel {
	switch level {
	case LevelFast:
		return zstd.SpeedFastest
	case LevelMax:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedDefault
	}
}
