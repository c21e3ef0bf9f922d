package lsv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Smotherer007/pLarianSaveTools/internal/compress"
	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
	"github.com/Smotherer007/pLarianSaveTools/internal/lstesting"
)

func samplePackagedFiles() []PackagedFileInput {
	return []PackagedFileInput{
		{Name: "globals.lsf", Data: []byte("globals-payload"), MethodFlags: byte(compress.MethodZlib) | compress.LevelDefault},
		{Name: "meta.lsf", Data: []byte("meta-payload"), MethodFlags: byte(compress.MethodNone)},
	}
}

func TestWriteReadRoundTripBG3Latest(t *testing.T) {
	files := samplePackagedFiles()
	data, err := Write(files, 18, WriteOptions{Flags: 1, Priority: 2})
	require.NoError(t, err)

	res, err := Read(data)
	require.NoError(t, err)
	require.Equal(t, uint32(18), res.Version)
	require.Equal(t, byte(1), res.Flags)
	require.Equal(t, byte(2), res.Priority)
	require.Len(t, res.Files, len(files))
	require.Equal(t, "globals.lsf", res.Files[0].Name)
	require.Equal(t, []byte("globals-payload"), res.Files[0].Data)
	require.Equal(t, "meta.lsf", res.Files[1].Name)
	require.Equal(t, []byte("meta-payload"), res.Files[1].Data)
}

func TestWriteReadRoundTripLegacyDOS2(t *testing.T) {
	files := samplePackagedFiles()
	data, err := Write(files, 10, WriteOptions{})
	require.NoError(t, err)

	res, err := Read(data)
	require.NoError(t, err)
	require.Equal(t, uint32(10), res.Version)
	require.Len(t, res.Files, len(files))
	require.Equal(t, []byte("globals-payload"), res.Files[0].Data)
}

func TestReadRejectsBadSignature(t *testing.T) {
	files := samplePackagedFiles()
	data, err := Write(files, 18, WriteOptions{})
	require.NoError(t, err)

	bad := lstesting.CorruptMagic(data, len(lstesting.LSVSignature))
	_, err = Read(bad)
	require.Error(t, err)
	require.True(t, lserr.Is(err, lserr.KindFormat))
}

func TestLegacyAlignmentPadsWithADBytes(t *testing.T) {
	files := []PackagedFileInput{
		{Name: "a.lsf", Data: []byte("globals-payload"), MethodFlags: byte(compress.MethodNone)},
		{Name: "b.lsf", Data: []byte("meta-payload"), MethodFlags: byte(compress.MethodNone)},
	}
	data, err := Write(files, 13, WriteOptions{})
	require.NoError(t, err)

	// First payload is 15 bytes; the second must start at the next
	// 64-byte boundary with 0xAD padding in between.
	require.Equal(t, []byte("globals-payload"), data[0:15])
	for i := 15; i < 64; i++ {
		require.Equal(t, byte(0xAD), data[i], "padding byte %d", i)
	}
	require.Equal(t, []byte("meta-payload"), data[64:76])

	res, err := Read(data)
	require.NoError(t, err)
	require.Len(t, res.Files, 2)
	require.Equal(t, []byte("meta-payload"), res.Files[1].Data)
}

func TestWriteReadRoundTripV15WithCRC(t *testing.T) {
	files := samplePackagedFiles()
	data, err := Write(files, 15, WriteOptions{})
	require.NoError(t, err)

	res, err := Read(data)
	require.NoError(t, err)
	require.Equal(t, uint32(15), res.Version)
	require.Len(t, res.Files, 2)
	require.Equal(t, []byte("globals-payload"), res.Files[0].Data)
}
