package lsf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Smotherer007/pLarianSaveTools/internal/hash"
)

func TestStringInternerEncodeParseRoundTrip(t *testing.T) {
	si := newStringInterner()
	names := []string{"save", "GlobalVars", "Var", "Name", "Flag", "Count"}
	refs := make([]uint32, len(names))
	for i, n := range names {
		refs[i] = si.intern(n)
	}

	// Re-interning returns the first-assigned reference.
	require.Equal(t, refs[0], si.intern("save"))

	encoded := si.encode()
	require.Equal(t, uint32(hash.NumBuckets), binary.LittleEndian.Uint32(encoded[0:4]))

	st, err := parseStringTable(encoded)
	require.NoError(t, err)
	for i, n := range names {
		got, err := st.resolve(refs[i])
		require.NoError(t, err)
		require.Equal(t, n, got)
		require.NotEmpty(t, got)
	}
}

func TestStringTableResolveRejectsBadRefs(t *testing.T) {
	si := newStringInterner()
	si.intern("only")
	st, err := parseStringTable(si.encode())
	require.NoError(t, err)

	_, err = st.resolve(uint32(hash.NumBuckets) << 16)
	require.Error(t, err)

	ref := si.intern("only")
	_, err = st.resolve(ref + 1)
	require.Error(t, err)
}

func TestFlattenedValueOffsetsCoverHeapExactly(t *testing.T) {
	root := buildSampleTree()

	_, attrs, valueHeap, _, _, err := flattenTree(root, 6)
	require.NoError(t, err)
	require.NotEmpty(t, attrs)

	// V3 invariant: offsets are non-decreasing and the recorded lengths
	// tile the value heap with no gaps.
	var cursor uint32
	for _, a := range attrs {
		require.Equal(t, cursor, a.ValueOffset)
		cursor += a.Length
	}
	require.Equal(t, int(cursor), len(valueHeap))
}
