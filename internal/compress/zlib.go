package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

func decompressZlib(data []byte, uncompressedSize int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	out := make([]byte, 0, uncompressedSize)
	buf := bytes.NewBuffer(out)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compressZlib(data []byte, level byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := zlib.NewWriterLevel(&buf, zlibLevel(level))
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func zlibLevel(level byte) int {
	switch level {
	case LevelFast:
		return zlib.BestSpeed
	case LevelMax:
		return zlib.BestCompression
	default:
		return zlib.DefaultCompression
	}
}
