package lslib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Smotherer007/pLarianSaveTools/internal/tree"
)

func buildConvertSampleTree() *Node {
	root := tree.NewNode("save")
	region := tree.NewNode("GlobalVars")
	root.AddChild(region)
	v := region.AddChild(tree.NewNode("Var"))
	v.Key = "MyVar"
	v.SetAttribute("Name", TypeFixedString, Value{Str: "MyVar"})
	v.SetAttribute("Count", TypeInt, Value{Int: 42})
	return root
}

func TestConvertLSXToLSF(t *testing.T) {
	root := buildConvertSampleTree()
	engine := Version{Major: 4, Minor: 0, Revision: 9, Build: 200}
	lsxData := WriteLSX(root, engine, LSXOptions{})

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "globals.lsx")
	dstPath := filepath.Join(dir, "globals.lsf")
	require.NoError(t, os.WriteFile(srcPath, lsxData, 0o644))

	require.NoError(t, Convert(srcPath, dstPath))

	lsfData := readFileFixture(t, dstPath)
	gotRoot, gotEngine, err := ReadLSF(lsfData)
	require.NoError(t, err)
	require.Equal(t, engine, gotEngine)
	require.Equal(t, "GlobalVars", gotRoot.Name)
}

func TestConvertLSFToLSX(t *testing.T) {
	root := buildConvertSampleTree()
	engine := Version{Major: 3, Minor: 6, Revision: 0, Build: 0}
	lsfData, err := WriteLSF(root, engine, LSFVersionLegacy, 0)
	require.NoError(t, err)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "globals.lsf")
	dstPath := filepath.Join(dir, "globals.lsx")
	require.NoError(t, os.WriteFile(srcPath, lsfData, 0o644))

	require.NoError(t, Convert(srcPath, dstPath))

	lsxData := readFileFixture(t, dstPath)
	gotRoot, gotEngine, err := ReadLSX(lsxData)
	require.NoError(t, err)
	require.Equal(t, engine, gotEngine)
	require.Equal(t, "GlobalVars", gotRoot.Name)
}

func TestConvertSameFormatCopiesBytes(t *testing.T) {
	root := buildConvertSampleTree()
	engine := Version{Major: 3, Minor: 6, Revision: 0, Build: 0}
	lsfData, err := WriteLSF(root, engine, LSFVersionLegacy, 0)
	require.NoError(t, err)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "a.lsf")
	dstPath := filepath.Join(dir, "b.lsf")
	require.NoError(t, os.WriteFile(srcPath, lsfData, 0o644))

	require.NoError(t, Convert(srcPath, dstPath))
	require.Equal(t, lsfData, readFileFixture(t, dstPath))
}

func readFileFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestPackFromLSXConvertsMembers(t *testing.T) {
	root := buildConvertSampleTree()
	engine := Version{Major: 4, Minor: 0, Revision: 9, Build: 200}
	lsxData := WriteLSX(root, engine, LSXOptions{})

	sources := []PackagedFile{{Name: "Globals/vars.lsx", Data: lsxData}}
	pkgData, err := PackFromLSX(sources, LSFVersionBG3Extended, PackageVersionBG3Latest, PackOptions{})
	require.NoError(t, err)

	pkg, err := Unpack(pkgData)
	require.NoError(t, err)
	require.Len(t, pkg.Files, 1)
	require.Equal(t, "Globals/vars.lsf", pkg.Files[0].Name)

	gotRoot, gotEngine, err := ReadLSF(pkg.Files[0].Data)
	require.NoError(t, err)
	require.Equal(t, engine, gotEngine)
	require.Equal(t, "GlobalVars", gotRoot.Name)
}

func TestExtractLSXConvertsMembersBack(t *testing.T) {
	root := buildConvertSampleTree()
	engine := Version{Major: 4, Minor: 0, Revision: 9, Build: 200}
	lsfData, err := WriteLSF(root, engine, LSFVersionBG3Extended, DefaultPackMethodFlags)
	require.NoError(t, err)

	pkgData, err := Pack([]PackagedFile{
		{Name: "Globals/vars.lsf", Data: lsfData, MethodFlags: DefaultPackMethodFlags},
		{Name: "readme.txt", Data: []byte("not a document")},
	}, PackageVersionBG3Latest, PackOptions{})
	require.NoError(t, err)

	pkg, err := ExtractLSX(pkgData, LSXOptions{})
	require.NoError(t, err)
	require.Len(t, pkg.Files, 2)
	require.Equal(t, "Globals/vars.lsx", pkg.Files[0].Name)
	require.Equal(t, "readme.txt", pkg.Files[1].Name)
	require.Equal(t, []byte("not a document"), pkg.Files[1].Data)

	gotRoot, gotEngine, err := ReadLSX(pkg.Files[0].Data)
	require.NoError(t, err)
	require.Equal(t, engine, gotEngine)
	require.Equal(t, "GlobalVars", gotRoot.Name)
}
