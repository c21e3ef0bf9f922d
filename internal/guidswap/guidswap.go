// Package guidswap implements the "bswap_guids" byte convention shared by
// the LSF and LSX codecs: a UUID's first 8 bytes are stored in reversed
// groupings so that round-tripping through the reference tool reproduces
// its exact bytes.
package guidswap

import "github.com/google/uuid"

// Swap is its own inverse: applied to a canonical (RFC 4122, big-endian)
// UUID byte layout it produces the on-disk LSF/bswap_guids layout, and
// applied again it recovers the canonical layout. The transform reverses
// the first 4-byte group whole and reverses the next two 2-byte groups;
// the last two groups (bytes 8..15) are already in canonical byte order
// and are preserved unchanged.
func Swap(b [16]byte) [16]byte {
	var out [16]byte
	out[0], out[1], out[2], out[3] = b[3], b[2], b[1], b[0]
	out[4], out[5] = b[5], b[4]
	out[6], out[7] = b[7], b[6]
	copy(out[8:], b[8:])
	return out
}

// Encode parses a canonical 8-4-4-4-12 UUID string and returns its
// on-disk, byte-swapped 16-byte form.
func Encode(canonical string) ([16]byte, error) {
	id, err := uuid.Parse(canonical)
	if err != nil {
		return [16]byte{}, err
	}
	return Swap([16]byte(id)), nil
}

// Decode reverses Encode: given the on-disk 16 bytes, returns the
// canonical UUID string.
func Decode(stored [16]byte) string {
	canon := Swap(stored)
	return uuid.UUID(canon).String()
}
