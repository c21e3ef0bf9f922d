package lsv

import (
	"hash/crc32"

	"github.com/Smotherer007/pLarianSaveTools/internal/compress"
	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
)

// PackagedFileInput is one member to pack into an LSV, in the order it
// should appear on disk.
type PackagedFileInput struct {
	Name        string
	Data        []byte
	MethodFlags byte
}

// WriteOptions carries the package-level fields that aren't derived from
// the file list itself.
type WriteOptions struct {
	Flags    byte
	Priority byte
}

const padByte = 0xAD

func isBG3Version(version uint32) bool {
	return version == 15 || version == 16 || version == 18
}

// Write packs files into a complete LSV package of the given version.
func Write(files []PackagedFileInput, version uint32, opts WriteOptions) ([]byte, error) {
	alignment := uint64(0)
	requiresCRC := version >= 10 && version <= 16
	dataStart := uint64(bg3HeaderSize)
	if !isBG3Version(version) {
		// DOS2 layouts carry their header in a trailer, so payloads
		// start at offset 0 and align to 64-byte boundaries.
		alignment = 64
		dataStart = 0
	}

	alloc := newAllocator(dataStart)
	var dataBuf []byte
	entries := make([]fileEntry, 0, len(files))

	for _, f := range files {
		if pad := alloc.padTo(alignment); pad > 0 {
			dataBuf = append(dataBuf, paddingBytes(pad)...)
		}

		compressed, err := compress.Compress(f.Data, f.MethodFlags)
		if err != nil {
			return nil, err
		}

		offset := alloc.allocate(uint64(len(compressed)))
		dataBuf = append(dataBuf, compressed...)

		e := fileEntry{
			Name:             f.Name,
			Offset:           offset,
			Flags:            f.MethodFlags,
			SizeOnDisk:       uint64(len(compressed)),
			UncompressedSize: uint64(len(f.Data)),
		}
		if requiresCRC {
			e.CRC32 = crc32.ChecksumIEEE(compressed)
		}
		entries = append(entries, e)
	}

	rawList, err := writeFileList(entries, version)
	if err != nil {
		return nil, err
	}
	compressedList, err := compress.Compress(rawList, byte(compress.MethodLZ4))
	if err != nil {
		return nil, err
	}
	if len(compressedList) > len(rawList) {
		return nil, lserr.New(lserr.KindFormat, "compressed file list is larger than its uncompressed form")
	}

	if isBG3Version(version) {
		return assembleBG3(dataBuf, compressedList, entries, version, opts), nil
	}
	return assembleLegacy(dataBuf, compressedList, entries, version, opts), nil
}

func paddingBytes(n uint64) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = padByte
	}
	return out
}

func assembleBG3(dataBuf, compressedList []byte, entries []fileEntry, version uint32, opts WriteOptions) []byte {
	fileListOffset := uint64(bg3HeaderSize) + uint64(len(dataBuf))

	h := bg3Header{
		Signature:      signature,
		Version:        version,
		FileListOffset: fileListOffset,
		FileListSize:   uint32(len(compressedList)),
		Flags:          opts.Flags,
		Priority:       opts.Priority,
		NumParts:       1,
	}

	out := make([]byte, 0, bg3HeaderSize+len(dataBuf)+8+len(compressedList))
	out = append(out, writeBG3Header(h)...)
	out = append(out, dataBuf...)
	out = appendU32(out, uint32(len(entries)))
	out = appendU32(out, uint32(len(compressedList)))
	out = append(out, compressedList...)
	return out
}

func assembleLegacy(dataBuf, compressedList []byte, entries []fileEntry, version uint32, opts WriteOptions) []byte {
	out := make([]byte, 0, len(dataBuf)+4+len(compressedList)+legacyTrailerSize)
	out = append(out, dataBuf...)

	fileListOffset := uint32(len(dataBuf))
	out = appendU32(out, uint32(len(entries)))
	out = append(out, compressedList...)

	h := legacyHeader{
		Signature:      signature,
		Version:        version,
		FileListOffset: fileListOffset,
		FileListSize:   uint32(4 + len(compressedList)),
		NumParts:       1,
		Flags:          uint32(opts.Flags),
		Priority:       uint32(opts.Priority),
	}
	out = append(out, writeLegacyHeader(h)...)
	out = appendU32(out, legacyTrailerSize)
	out = appendU32(out, signature)
	return out
}
