package lslib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	pkg := &Package{
		Version:  PackageVersionDOS2DE,
		Flags:    2,
		Priority: 1,
		Files: []PackagedFile{
			{Name: "globals.lsf", MethodFlags: DefaultPackMethodFlags},
			{Name: "meta.lsf", MethodFlags: 0},
		},
	}

	dir := t.TempDir()
	require.NoError(t, SaveManifest(dir, ManifestOf(pkg)))

	m, ok, err := LoadManifest(dir)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(13), m.Version)
	require.Equal(t, byte(2), m.Flags)
	require.Len(t, m.Files, 2)
	require.Equal(t, "globals.lsf", m.Files[0].Name)
	require.Equal(t, DefaultPackMethodFlags, m.Files[0].Flags)
}

func TestLoadManifestAbsent(t *testing.T) {
	_, ok, err := LoadManifest(t.TempDir())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCollectFilesUsesManifestOrder(t *testing.T) {
	dir := t.TempDir()
	// Deliberately not in sorted order: the manifest, not the directory
	// listing, decides.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zz.lsf"), []byte("first"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aa.lsf"), []byte("second"), 0o644))

	m := &Manifest{
		Version: uint32(PackageVersionDOS2DE),
		Files: []ManifestEntry{
			{Name: "zz.lsf", Flags: DefaultPackMethodFlags},
			{Name: "aa.lsf", Flags: 0},
		},
	}
	require.NoError(t, SaveManifest(dir, m))

	files, loaded, err := CollectFiles(dir, 0)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, files, 2)
	require.Equal(t, "zz.lsf", files[0].Name)
	require.Equal(t, []byte("first"), files[0].Data)
	require.Equal(t, DefaultPackMethodFlags, files[0].MethodFlags)
	require.Equal(t, "aa.lsf", files[1].Name)
}

func TestCollectFilesScansAndSortsWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Mods"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zz.lsf"), []byte("z"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Mods", "meta.lsf"), []byte("m"), 0o644))

	files, loaded, err := CollectFiles(dir, DefaultPackMethodFlags)
	require.NoError(t, err)
	require.Nil(t, loaded)
	require.Len(t, files, 2)
	require.Equal(t, "Mods/meta.lsf", files[0].Name)
	require.Equal(t, "zz.lsf", files[1].Name)
	require.Equal(t, DefaultPackMethodFlags, files[0].MethodFlags)
}
