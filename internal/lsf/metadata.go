package lsf

import (
	"encoding/binary"

	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
)

// blockSizes is one {uncompressed, compressed} size pair from the
// metadata block.
type blockSizes struct {
	Uncompressed uint32
	Compressed   uint32
}

// metadata describes the five (four, pre-v6) on-disk blocks following the
// header: string table, keys, node table, attribute table, value heap.
type metadata struct {
	Strings    blockSizes
	Keys       blockSizes // zero for version < 6; no size field exists to record it
	Nodes      blockSizes
	Attributes blockSizes
	Values     blockSizes

	CompressionFlags byte
	MetadataFormat   uint32
}

func readU32Pair(data []byte) blockSizes {
	return blockSizes{
		Uncompressed: binary.LittleEndian.Uint32(data[0:4]),
		Compressed:   binary.LittleEndian.Uint32(data[4:8]),
	}
}

// readMetadata parses the metadata block starting at data[0], returning
// the parsed metadata and the block's on-disk length.
func readMetadata(data []byte, version uint32) (metadata, int, error) {
	if version >= 6 {
		if len(data) < 48 {
			return metadata{}, 0, lserr.New(lserr.KindCorruptHeader, "truncated LSF metadata block")
		}
		m := metadata{
			Strings:          readU32Pair(data[0:8]),
			Keys:             readU32Pair(data[8:16]),
			Nodes:            readU32Pair(data[16:24]),
			Attributes:       readU32Pair(data[24:32]),
			Values:           readU32Pair(data[32:40]),
			CompressionFlags: data[40],
			MetadataFormat:   binary.LittleEndian.Uint32(data[44:48]),
		}
		return m, 48, nil
	}

	if len(data) < 40 {
		return metadata{}, 0, lserr.New(lserr.KindCorruptHeader, "truncated LSF metadata block")
	}
	m := metadata{
		Strings:          readU32Pair(data[0:8]),
		Nodes:            readU32Pair(data[8:16]),
		Attributes:       readU32Pair(data[16:24]),
		Values:           readU32Pair(data[24:32]),
		CompressionFlags: byte(binary.LittleEndian.Uint32(data[32:36])),
		MetadataFormat:   uint32(data[39]),
	}
	return m, 40, nil
}

func writeU32Pair(buf []byte, b blockSizes) []byte {
	buf = appendU32(buf, b.Uncompressed)
	buf = appendU32(buf, b.Compressed)
	return buf
}

func writeMetadata(buf []byte, m metadata, version uint32) []byte {
	if version >= 6 {
		buf = writeU32Pair(buf, m.Strings)
		buf = writeU32Pair(buf, m.Keys)
		buf = writeU32Pair(buf, m.Nodes)
		buf = writeU32Pair(buf, m.Attributes)
		buf = writeU32Pair(buf, m.Values)
		buf = append(buf, m.CompressionFlags, 0, 0, 0)
		buf = appendU32(buf, m.MetadataFormat)
		return buf
	}

	buf = writeU32Pair(buf, m.Strings)
	buf = writeU32Pair(buf, m.Nodes)
	buf = writeU32Pair(buf, m.Attributes)
	buf = writeU32Pair(buf, m.Values)
	buf = appendU32(buf, uint32(m.CompressionFlags))
	buf = append(buf, 0, 0, 0, byte(m.MetadataFormat))
	return buf
}
