package lsv

import (
	"encoding/binary"

	"github.com/Smotherer007/pLarianSaveTools/internal/compress"
	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
)

// PackagedFile is one extracted member of an LSV package.
type PackagedFile struct {
	Name  string
	Data  []byte
	Flags byte
}

// Result is the decoded form of an LSV package.
type Result struct {
	Version  uint32
	Files    []PackagedFile
	Flags    byte
	Priority byte
}

// Read unpacks a complete LSV package from data.
func Read(data []byte) (*Result, error) {
	lay, version, err := detectLayout(data)
	if err != nil {
		return nil, err
	}

	var fileListOffset uint64
	var fileListSize uint32
	var flags, priority byte

	switch lay {
	case layoutBG3:
		h, err := parseBG3Header(data)
		if err != nil {
			return nil, err
		}
		if h.NumParts > 1 {
			return nil, lserr.New(lserr.KindUnsupported, "multi-part LSV packages are not supported")
		}
		fileListOffset, fileListSize = h.FileListOffset, h.FileListSize
		flags, priority = h.Flags, h.Priority

	case layoutLegacy:
		tail := data[len(data)-legacyTrailerSize:]
		h, err := parseLegacyHeader(tail[:legacyHeaderSize])
		if err != nil {
			return nil, err
		}
		if h.NumParts > 1 {
			return nil, lserr.New(lserr.KindUnsupported, "multi-part LSV packages are not supported")
		}
		fileListOffset, fileListSize = uint64(h.FileListOffset), h.FileListSize
		flags, priority = byte(h.Flags), byte(h.Priority)
	}

	if fileListOffset > uint64(len(data)) {
		return nil, lserr.New(lserr.KindCorruptIndex, "file list offset exceeds package size")
	}
	listRegion := data[fileListOffset:]

	var rawList []byte
	switch {
	case version == 18 || version == 16 || version == 15:
		if len(listRegion) < 8 {
			return nil, lserr.New(lserr.KindCorruptIndex, "truncated file list header")
		}
		numFiles := binary.LittleEndian.Uint32(listRegion[0:4])
		compressedSize := binary.LittleEndian.Uint32(listRegion[4:8])
		if 8+int(compressedSize) > len(listRegion) {
			return nil, lserr.New(lserr.KindCorruptIndex, "file list compressed size exceeds buffer")
		}
		decoded, _, err := compress.Decompress(listRegion[8:8+compressedSize], entrySizeFor(version)*int(numFiles), byte(compress.MethodLZ4), compress.Options{})
		if err != nil {
			return nil, lserr.Wrap(lserr.KindCorruptIndex, "decompressing LSV file list", err)
		}
		rawList = decoded

	default: // v10/v13
		if len(listRegion) < 4 {
			return nil, lserr.New(lserr.KindCorruptIndex, "truncated file list header")
		}
		numFiles := binary.LittleEndian.Uint32(listRegion[0:4])
		if int(fileListSize) < 4 || 4+int(fileListSize)-4 > len(listRegion) {
			return nil, lserr.New(lserr.KindCorruptIndex, "file list size exceeds buffer")
		}
		compressed := listRegion[4:fileListSize]
		decoded, _, err := compress.Decompress(compressed, entrySizeFor(version)*int(numFiles), byte(compress.MethodLZ4), compress.Options{})
		if err != nil {
			return nil, lserr.Wrap(lserr.KindCorruptIndex, "decompressing LSV file list", err)
		}
		rawList = decoded
	}

	entries, err := parseFileList(rawList, version)
	if err != nil {
		return nil, err
	}

	// Entry offsets are absolute: BG3 entries already include the 40-byte
	// head-of-file header, and DOS2 entries start at offset 0 because the
	// header lives in a trailer. Nothing extra to add for either layout.
	const dataOffset = 0

	files := make([]PackagedFile, 0, len(entries))
	for _, e := range entries {
		if e.Deleted {
			continue
		}
		if e.Part != 0 {
			return nil, lserr.New(lserr.KindUnsupported, "multi-part LSV entries are not supported")
		}

		start := dataOffset + e.Offset
		end := start + e.SizeOnDisk
		if end > uint64(len(data)) || start > end {
			return nil, lserr.New(lserr.KindCorruptIndex, "file entry offset/size exceeds package size")
		}
		payload := data[start:end]

		if e.Flags&0x0F != 0 {
			decoded, _, err := compress.Decompress(payload, int(e.UncompressedSize), e.Flags, compress.Options{})
			if err != nil {
				return nil, lserr.Wrap(lserr.KindCorruptPayload, "decompressing package member "+e.Name, err)
			}
			payload = decoded
		} else {
			cp := make([]byte, len(payload))
			copy(cp, payload)
			payload = cp
		}

		files = append(files, PackagedFile{Name: e.Name, Data: payload, Flags: e.Flags})
	}

	return &Result{Version: version, Files: files, Flags: flags, Priority: priority}, nil
}

func entrySizeFor(version uint32) int {
	switch {
	case version == 18 || version == 16:
		return entrySizeV18
	case version == 15:
		return entrySizeV15
	default:
		return entrySizeLegacy
	}
}
