package lsf

import (
	"encoding/binary"

	"github.com/Smotherer007/pLarianSaveTools/internal/hash"
	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
)

// stringTable is the decoded form of an LSF string table: a fixed number
// of hash buckets, each holding an ordered chain of interned strings. A
// reference is the packed (bucket<<16)|chainIndex used throughout the
// node and attribute tables.
type stringTable struct {
	buckets [][]string
}

func parseStringTable(data []byte) (*stringTable, error) {
	if len(data) < 4 {
		return nil, lserr.New(lserr.KindCorruptBlock, "truncated string table")
	}
	numBuckets := binary.LittleEndian.Uint32(data[0:4])
	off := 4

	buckets := make([][]string, numBuckets)
	for b := uint32(0); b < numBuckets; b++ {
		if off+2 > len(data) {
			return nil, lserr.New(lserr.KindCorruptBlock, "truncated string table bucket header")
		}
		chainLen := binary.LittleEndian.Uint16(data[off : off+2])
		off += 2

		chain := make([]string, 0, chainLen)
		for i := uint16(0); i < chainLen; i++ {
			if off+2 > len(data) {
				return nil, lserr.New(lserr.KindCorruptBlock, "truncated string table entry")
			}
			strLen := binary.LittleEndian.Uint16(data[off : off+2])
			off += 2
			if off+int(strLen) > len(data) {
				return nil, lserr.New(lserr.KindCorruptBlock, "string table entry exceeds block")
			}
			chain = append(chain, string(data[off:off+int(strLen)]))
			off += int(strLen)
		}
		buckets[b] = chain
	}
	return &stringTable{buckets: buckets}, nil
}

// resolve looks up a packed (bucket<<16)|chainIndex reference.
func (st *stringTable) resolve(ref uint32) (string, error) {
	bucket := ref >> 16
	idx := ref & 0xFFFF
	if int(bucket) >= len(st.buckets) {
		return "", lserr.New(lserr.KindCorruptBlock, "string reference bucket out of range")
	}
	chain := st.buckets[bucket]
	if int(idx) >= len(chain) {
		return "", lserr.New(lserr.KindCorruptBlock, "string reference index out of range")
	}
	return chain[idx], nil
}

// stringInterner builds a stringTable for writing, assigning references
// by the reference tool's own hashing and bucket-fold rule (see
// internal/hash) so that output is byte-identical to the reference tool.
type stringInterner struct {
	buckets [hash.NumBuckets][]string
	refs    map[string]uint32
}

func newStringInterner() *stringInterner {
	return &stringInterner{refs: make(map[string]uint32)}
}

// intern assigns (or reuses) a reference for s, collecting new strings in
// the order first observed during the depth-first visit.
func (si *stringInterner) intern(s string) uint32 {
	if ref, ok := si.refs[s]; ok {
		return ref
	}
	b := hash.Bucket(hash.DotNetStringHash(s))
	idx := len(si.buckets[b])
	si.buckets[b] = append(si.buckets[b], s)
	ref := (b << 16) | uint32(idx)
	si.refs[s] = ref
	return ref
}

// encode serializes the interner's buckets in the on-disk layout.
func (si *stringInterner) encode() []byte {
	buf := make([]byte, 0, 4+hash.NumBuckets*2)
	buf = appendU32(buf, hash.NumBuckets)
	for b := 0; b < hash.NumBuckets; b++ {
		chain := si.buckets[b]
		buf = appendU16(buf, uint16(len(chain)))
		for _, s := range chain {
			buf = appendU16(buf, uint16(len(s)))
			buf = append(buf, s...)
		}
	}
	return buf
}
