// Package lsf implements the LSF binary tree codec: header and metadata
// parsing, the string interning table, the node/attribute tables, and the
// per-type value heap, version-aware across DOS2 (v3) and BG3 (v5/v6).
package lsf

import (
	"encoding/binary"

	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
	"github.com/Smotherer007/pLarianSaveTools/internal/tree"
)

const magic = "LSOF"

// header is the fixed-width preamble common to every LSF version.
type header struct {
	Version uint32
	Engine  tree.Version
	Length  int // 12 (version < 5) or 16 (version >= 5)
}

func readHeader(data []byte) (header, error) {
	if len(data) < 8 || string(data[0:4]) != magic {
		return header{}, lserr.New(lserr.KindFormat, "bad LSOF magic")
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version == 0 || version > 7 {
		return header{}, lserr.New(lserr.KindUnsupportedVersion, "LSF version outside the handled set")
	}

	if version >= 5 {
		if len(data) < 16 {
			return header{}, lserr.New(lserr.KindCorruptHeader, "truncated LSF header")
		}
		v := binary.LittleEndian.Uint64(data[8:16])
		eng := tree.Version{
			Major:    uint32((v >> 55) & 0x7F),
			Minor:    uint32((v >> 47) & 0xFF),
			Revision: uint32((v >> 31) & 0xFFFF),
			Build:    uint32(v & 0x7FFFFFFF),
		}
		return header{Version: version, Engine: eng, Length: 16}, nil
	}

	if len(data) < 12 {
		return header{}, lserr.New(lserr.KindCorruptHeader, "truncated LSF header")
	}
	v := binary.LittleEndian.Uint32(data[8:12])
	high := (v >> 24) & 0xFF
	eng := tree.Version{
		Major:    high >> 4,
		Minor:    high & 0xF,
		Revision: (v >> 16) & 0xFF,
		Build:    (v >> 8) & 0xFF,
	}
	return header{Version: version, Engine: eng, Length: 12}, nil
}

// writeHeader appends the header for lsfVersion/engine to buf and returns
// the extended buffer (12 bytes longer for version < 5, 16 otherwise).
func writeHeader(buf []byte, lsfVersion uint32, engine tree.Version) []byte {
	buf = append(buf, magic...)
	buf = appendU32(buf, lsfVersion)

	if lsfVersion >= 5 {
		v := (uint64(engine.Major)&0x7F)<<55 |
			(uint64(engine.Minor)&0xFF)<<47 |
			(uint64(engine.Revision)&0xFFFF)<<31 |
			(uint64(engine.Build) & 0x7FFFFFFF)
		return appendU64(buf, v)
	}

	high := (engine.Major << 4) | (engine.Minor & 0xF)
	v := (high&0xFF)<<24 | (engine.Revision&0xFF)<<16 | (engine.Build&0xFF)<<8
	return appendU32(buf, v)
}

func appendU16(buf []byte, v uint16) []byte {
	return append(buf, byte(v), byte(v>>8))
}

func appendU32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendU64(buf []byte, v uint64) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

func appendI32(buf []byte, v int32) []byte {
	return appendU32(buf, uint32(v))
}
