package lsv

import (
	"encoding/binary"

	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
)

// deletedMarker is the low-56-bit sentinel value that marks a file list
// entry as a deleted/tombstoned package member.
const deletedMarker = 0xBEEFDEADBEEF

// fileEntry is the version-normalized form of one file list row.
type fileEntry struct {
	Name             string
	Offset           uint64
	Part             uint32
	Flags            byte
	SizeOnDisk       uint64
	UncompressedSize uint64
	CRC32            uint32
	Deleted          bool
}

const nameFieldSize = 256

func readName(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

func writeName(name string) []byte {
	out := make([]byte, nameFieldSize)
	copy(out, name)
	return out
}

// Entry widths per on-disk file list version.
const (
	entrySizeV18    = 272
	entrySizeV15    = 304
	entrySizeLegacy = 280
)

func parseFileList(data []byte, version uint32) ([]fileEntry, error) {
	var size int
	switch {
	case version == 18 || version == 16:
		size = entrySizeV18
	case version == 15:
		size = entrySizeV15
	case version == 13 || version == 10:
		size = entrySizeLegacy
	default:
		return nil, lserr.New(lserr.KindUnsupportedVersion, "unrecognized LSV file list version")
	}

	if len(data)%size != 0 {
		return nil, lserr.New(lserr.KindCorruptIndex, "file list size is not a multiple of the entry width")
	}
	n := len(data) / size
	out := make([]fileEntry, n)

	for i := 0; i < n; i++ {
		e := data[i*size:]
		name := readName(e[:nameFieldSize])
		rest := e[nameFieldSize:]

		var entry fileEntry
		entry.Name = name

		switch size {
		case entrySizeV18:
			combined := binary.LittleEndian.Uint64(rest[0:8])
			entry.Offset = combined & 0xFFFFFFFFFFFF
			entry.Part = uint32((combined >> 48) & 0xFF)
			entry.Flags = byte((combined >> 56) & 0xFF)
			entry.Deleted = (combined & 0x00FFFFFFFFFFFFFF) == deletedMarker
			entry.SizeOnDisk = uint64(binary.LittleEndian.Uint32(rest[8:12]))
			entry.UncompressedSize = uint64(binary.LittleEndian.Uint32(rest[12:16]))

		case entrySizeV15:
			entry.Offset = binary.LittleEndian.Uint64(rest[0:8])
			entry.SizeOnDisk = binary.LittleEndian.Uint64(rest[8:16])
			entry.UncompressedSize = binary.LittleEndian.Uint64(rest[16:24])
			entry.Part = binary.LittleEndian.Uint32(rest[24:28])
			entry.Flags = byte(binary.LittleEndian.Uint32(rest[28:32]))
			entry.CRC32 = binary.LittleEndian.Uint32(rest[32:36])
			entry.Deleted = (entry.Offset & 0x00FFFFFFFFFFFFFF) == deletedMarker

		case entrySizeLegacy:
			entry.Offset = uint64(binary.LittleEndian.Uint32(rest[0:4]))
			entry.SizeOnDisk = uint64(binary.LittleEndian.Uint32(rest[4:8]))
			entry.UncompressedSize = uint64(binary.LittleEndian.Uint32(rest[8:12]))
			entry.Part = binary.LittleEndian.Uint32(rest[12:16])
			entry.Flags = byte(binary.LittleEndian.Uint32(rest[16:20]))
			entry.CRC32 = binary.LittleEndian.Uint32(rest[20:24])
		}

		out[i] = entry
	}
	return out, nil
}

func writeFileList(entries []fileEntry, version uint32) ([]byte, error) {
	var size int
	switch {
	case version == 18 || version == 16:
		size = entrySizeV18
	case version == 15:
		size = entrySizeV15
	case version == 13 || version == 10:
		size = entrySizeLegacy
	default:
		return nil, lserr.New(lserr.KindUnsupportedVersion, "unrecognized LSV file list version")
	}

	buf := make([]byte, 0, len(entries)*size)
	for _, e := range entries {
		buf = append(buf, writeName(e.Name)...)

		switch size {
		case entrySizeV18:
			combined := (e.Offset & 0xFFFFFFFFFFFF) | (uint64(e.Part&0xFF) << 48) | (uint64(e.Flags) << 56)
			var tmp [8]byte
			binary.LittleEndian.PutUint64(tmp[:], combined)
			buf = append(buf, tmp[:]...)
			buf = appendU32(buf, uint32(e.SizeOnDisk))
			buf = appendU32(buf, uint32(e.UncompressedSize))

		case entrySizeV15:
			buf = appendU64(buf, e.Offset)
			buf = appendU64(buf, e.SizeOnDisk)
			buf = appendU64(buf, e.UncompressedSize)
			buf = appendU32(buf, e.Part)
			buf = appendU32(buf, uint32(e.Flags))
			buf = appendU32(buf, e.CRC32)
			buf = appendU32(buf, 0)
			buf = appendU32(buf, 0)
			buf = appendU32(buf, 0) // reserved tail pads the entry to 304 bytes, see DESIGN.md

		case entrySizeLegacy:
			buf = appendU32(buf, uint32(e.Offset))
			buf = appendU32(buf, uint32(e.SizeOnDisk))
			buf = appendU32(buf, uint32(e.UncompressedSize))
			buf = appendU32(buf, e.Part)
			buf = appendU32(buf, uint32(e.Flags))
			buf = appendU32(buf, e.CRC32)
		}
	}
	return buf, nil
}

func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendU64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}
