// Package lsv implements the LSV outer package codec: dual header-layout
// discovery (BG3 head-based vs DOS2 trailer-based), the fixed-width file
// list per version, and extraction/packing built on the compression
// facade and the LSF codec.
package lsv

import (
	"encoding/binary"

	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
)

const signature uint32 = 0x4B50534C // "LSPK" little-endian

// bg3Header is the 40-byte head-of-file layout used by v15/v16/v18.
type bg3Header struct {
	Signature      uint32
	Version        uint32
	FileListOffset uint64
	FileListSize   uint32
	Flags          byte
	Priority       byte
	MD5            [16]byte
	NumParts       uint16
}

const bg3HeaderSize = 40

func parseBG3Header(data []byte) (bg3Header, error) {
	if len(data) < bg3HeaderSize {
		return bg3Header{}, lserr.New(lserr.KindCorruptHeader, "truncated LSV header")
	}
	var h bg3Header
	h.Signature = binary.LittleEndian.Uint32(data[0:4])
	h.Version = binary.LittleEndian.Uint32(data[4:8])
	h.FileListOffset = binary.LittleEndian.Uint64(data[8:16])
	h.FileListSize = binary.LittleEndian.Uint32(data[16:20])
	h.Flags = data[20]
	h.Priority = data[21]
	copy(h.MD5[:], data[22:38])
	h.NumParts = binary.LittleEndian.Uint16(data[38:40])
	return h, nil
}

func writeBG3Header(h bg3Header) []byte {
	buf := make([]byte, bg3HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Signature)
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint64(buf[8:16], h.FileListOffset)
	binary.LittleEndian.PutUint32(buf[16:20], h.FileListSize)
	buf[20] = h.Flags
	buf[21] = h.Priority
	copy(buf[22:38], h.MD5[:])
	binary.LittleEndian.PutUint16(buf[38:40], h.NumParts)
	return buf
}

// legacyHeader is the 32-byte body carried by the DOS2 v10/v13 trailer:
// bg3Header's field set narrowed to fit 32 bytes, followed on disk by a
// u32 trailer size and the repeated signature (see DESIGN.md).
type legacyHeader struct {
	Signature      uint32
	Version        uint32
	FileListOffset uint32
	FileListSize   uint32
	NumParts       uint32
	Flags          uint32
	Priority       uint32
	Reserved       uint32
}

const legacyHeaderSize = 32
const legacyTrailerSize = legacyHeaderSize + 8 // + headerSize u32 + signature u32

func parseLegacyHeader(data []byte) (legacyHeader, error) {
	if len(data) < legacyHeaderSize {
		return legacyHeader{}, lserr.New(lserr.KindCorruptHeader, "truncated LSV legacy header")
	}
	var h legacyHeader
	h.Signature = binary.LittleEndian.Uint32(data[0:4])
	h.Version = binary.LittleEndian.Uint32(data[4:8])
	h.FileListOffset = binary.LittleEndian.Uint32(data[8:12])
	h.FileListSize = binary.LittleEndian.Uint32(data[12:16])
	h.NumParts = binary.LittleEndian.Uint32(data[16:20])
	h.Flags = binary.LittleEndian.Uint32(data[20:24])
	h.Priority = binary.LittleEndian.Uint32(data[24:28])
	h.Reserved = binary.LittleEndian.Uint32(data[28:32])
	return h, nil
}

func writeLegacyHeader(h legacyHeader) []byte {
	buf := make([]byte, legacyHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Signature)
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], h.FileListOffset)
	binary.LittleEndian.PutUint32(buf[12:16], h.FileListSize)
	binary.LittleEndian.PutUint32(buf[16:20], h.NumParts)
	binary.LittleEndian.PutUint32(buf[20:24], h.Flags)
	binary.LittleEndian.PutUint32(buf[24:28], h.Priority)
	binary.LittleEndian.PutUint32(buf[28:32], h.Reserved)
	return buf
}

// layout identifies which of the two on-disk shapes a package uses.
type layout int

const (
	layoutBG3 layout = iota
	layoutLegacy
)

// detectLayout implements the dual-header discovery rule: a head-of-file
// "LSPK" signature with version 15/16/18 is BG3; anything else falls
// back to the DOS2 trailer layout, verified by the trailing signature.
func detectLayout(data []byte) (layout, uint32, error) {
	if len(data) >= 8 {
		sig := binary.LittleEndian.Uint32(data[0:4])
		ver := binary.LittleEndian.Uint32(data[4:8])
		if sig == signature && (ver == 15 || ver == 16 || ver == 18) {
			return layoutBG3, ver, nil
		}
	}

	if len(data) < legacyTrailerSize {
		return 0, 0, lserr.New(lserr.KindFormat, "file too small for any known LSV layout")
	}
	tail := data[len(data)-legacyTrailerSize:]
	headerSize := binary.LittleEndian.Uint32(tail[legacyHeaderSize : legacyHeaderSize+4])
	sig := binary.LittleEndian.Uint32(tail[legacyHeaderSize+4 : legacyHeaderSize+8])
	if sig != signature || headerSize != legacyTrailerSize {
		return 0, 0, lserr.New(lserr.KindFormat, "bad LSV signature")
	}
	legacy, err := parseLegacyHeader(tail[:legacyHeaderSize])
	if err != nil {
		return 0, 0, err
	}
	return layoutLegacy, legacy.Version, nil
}
