package lsf

import (
	"encoding/binary"

	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
)

// nodeEntry is the version-normalized form of one node table row. For V2
// tables (implicit sibling order) NextSiblingIndex is left at -2, a
// sentinel meaning "derive from declaration order" rather than "no sibling".
type nodeEntry struct {
	NameRef             uint32
	ParentIndex         int32
	NextSiblingIndex    int32
	FirstAttributeIndex int32
}

const noSiblingIndex = -2

func parseNodeTable(data []byte, v3 bool) ([]nodeEntry, error) {
	size := 12
	if v3 {
		size = 16
	}
	if len(data)%size != 0 {
		return nil, lserr.New(lserr.KindCorruptIndex, "node table size not a multiple of entry width")
	}
	n := len(data) / size
	out := make([]nodeEntry, n)
	for i := 0; i < n; i++ {
		e := data[i*size:]
		if v3 {
			out[i] = nodeEntry{
				NameRef:             binary.LittleEndian.Uint32(e[0:4]),
				ParentIndex:         int32(binary.LittleEndian.Uint32(e[4:8])),
				NextSiblingIndex:    int32(binary.LittleEndian.Uint32(e[8:12])),
				FirstAttributeIndex: int32(binary.LittleEndian.Uint32(e[12:16])),
			}
		} else {
			out[i] = nodeEntry{
				NameRef:             binary.LittleEndian.Uint32(e[0:4]),
				FirstAttributeIndex: int32(binary.LittleEndian.Uint32(e[4:8])),
				ParentIndex:         int32(binary.LittleEndian.Uint32(e[8:12])),
				NextSiblingIndex:    noSiblingIndex,
			}
		}
	}
	return out, nil
}

func writeNodeTable(entries []nodeEntry, v3 bool) []byte {
	size := 12
	if v3 {
		size = 16
	}
	buf := make([]byte, 0, len(entries)*size)
	for _, e := range entries {
		buf = appendU32(buf, e.NameRef)
		if v3 {
			buf = appendI32(buf, e.ParentIndex)
			buf = appendI32(buf, e.NextSiblingIndex)
			buf = appendI32(buf, e.FirstAttributeIndex)
		} else {
			buf = appendI32(buf, e.FirstAttributeIndex)
			buf = appendI32(buf, e.ParentIndex)
		}
	}
	return buf
}

// attrEntry is the version-normalized form of one attribute table row.
// ValueOffset is authoritative for V3; V2 tables don't store offsets, so
// the parser fills them in as a running cumulative total in declaration
// order.
type attrEntry struct {
	NameRef            uint32
	Type               uint32
	Length             uint32
	NextAttributeIndex int32 // V3 only; -1 for V2 (chain is positional)
	NodeIndex          int32 // V2 only
	ValueOffset        uint32
}

func parseAttributeTable(data []byte, v3 bool) ([]attrEntry, error) {
	size := 12
	if v3 {
		size = 16
	}
	if len(data)%size != 0 {
		return nil, lserr.New(lserr.KindCorruptIndex, "attribute table size not a multiple of entry width")
	}
	n := len(data) / size
	out := make([]attrEntry, n)
	cumulative := uint32(0)
	for i := 0; i < n; i++ {
		e := data[i*size:]
		nameRef := binary.LittleEndian.Uint32(e[0:4])
		typeAndLength := binary.LittleEndian.Uint32(e[4:8])
		typ := typeAndLength & 0x3F
		length := typeAndLength >> 6

		if v3 {
			out[i] = attrEntry{
				NameRef:            nameRef,
				Type:               typ,
				Length:             length,
				NextAttributeIndex: int32(binary.LittleEndian.Uint32(e[8:12])),
				NodeIndex:          -1,
				ValueOffset:        binary.LittleEndian.Uint32(e[12:16]),
			}
		} else {
			out[i] = attrEntry{
				NameRef:            nameRef,
				Type:               typ,
				Length:             length,
				NextAttributeIndex: -1,
				NodeIndex:          int32(binary.LittleEndian.Uint32(e[8:12])),
				ValueOffset:        cumulative,
			}
			cumulative += length
		}
	}
	return out, nil
}

func writeAttributeTable(entries []attrEntry, v3 bool) []byte {
	size := 12
	if v3 {
		size = 16
	}
	buf := make([]byte, 0, len(entries)*size)
	for _, e := range entries {
		buf = appendU32(buf, e.NameRef)
		buf = appendU32(buf, (e.Length<<6)|(e.Type&0x3F))
		if v3 {
			buf = appendI32(buf, e.NextAttributeIndex)
			buf = appendU32(buf, e.ValueOffset)
		} else {
			buf = appendI32(buf, e.NodeIndex)
		}
	}
	return buf
}
