// Package hash reproduces the reference tool's string hashing exactly,
// byte-for-byte, so that LSF string-table bucket assignment round-trips.
package hash

// NumBuckets is the fixed bucket count LSF writers emit; readers accept
// whatever count the table declares.
const NumBuckets = 512

// DotNetStringHash computes the .NET Framework/Core String.GetHashCode
// equivalent used by the reference tool for its string table: a 32-bit
// wrapping multiply-accumulate over UTF-16 code units.
//
//	hash = ((hash << 5) - hash + c) | 0   // for each character c
//
// This MUST use 32-bit wrapping arithmetic; using a wider integer type
// changes the result and breaks bucket assignment byte-identity.
func DotNetStringHash(s string) uint32 {
	var hash uint32
	for _, r := range s {
		if r > 0xFFFF {
			// Outside the BMP: .NET iterates UTF-16 code units, so a
			// surrogate pair contributes two hash steps. Decompose into
			// the equivalent surrogate pair code units.
			r -= 0x10000
			hi := uint32(0xD800 + (r >> 10))
			lo := uint32(0xDC00 + (r & 0x3FF))
			hash = (hash << 5) - hash + hi
			hash = (hash << 5) - hash + lo
			continue
		}
		hash = (hash << 5) - hash + uint32(r)
	}
	return hash
}

// Bucket folds a 32-bit hash down into one of NumBuckets chains, matching
// the reference tool's bucket-fold: xor the hash with three right shifts,
// then mask to 9 bits.
func Bucket(h uint32) uint32 {
	return (h ^ (h >> 9) ^ (h >> 18) ^ (h >> 27)) & (NumBuckets - 1)
}
