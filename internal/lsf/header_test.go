package lsf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
	"github.com/Smotherer007/pLarianSaveTools/internal/lstesting"
	"github.com/Smotherer007/pLarianSaveTools/internal/tree"
)

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	var buf []byte
	buf = writeHeader(buf, 3, tree.Version{Major: 3, Minor: 6})
	bad := lstesting.CorruptMagic(buf, len(lstesting.LSFMagic))

	_, err := readHeader(bad)
	require.Error(t, err)
	require.True(t, lserr.Is(err, lserr.KindFormat))
}

func TestReadHeaderRoundTripsEngineVersion(t *testing.T) {
	engine := tree.Version{Major: 4, Minor: 0, Revision: 9, Build: 200}
	var buf []byte
	buf = writeHeader(buf, 6, engine)

	hdr, err := readHeader(buf)
	require.NoError(t, err)
	require.Equal(t, uint32(6), hdr.Version)
	require.Equal(t, engine, hdr.Engine)
	require.Equal(t, 16, hdr.Length)
}
