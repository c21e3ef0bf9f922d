package lslib

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Smotherer007/pLarianSaveTools/internal/compress"
)

// Convert reads srcPath and writes dstPath, converting between LSF and
// LSX based on each path's file extension (".lsx" vs. anything else,
// matching the CLI collaborator's own extension-based dispatch). Source
// and destination sharing a format copy the bytes through unchanged. The
// target LSF layout version is chosen from the source document's engine
// version (BG3 lineage gets the extended v6 layout, DOS2 the legacy v3
// one); LSX output uses LSXOptions' documented zero-value defaults.
func Convert(srcPath, dstPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	srcIsLSX := strings.EqualFold(filepath.Ext(srcPath), ".lsx")
	dstIsLSX := strings.EqualFold(filepath.Ext(dstPath), ".lsx")

	var out []byte
	switch {
	case srcIsLSX && !dstIsLSX:
		root, engine, err := ReadLSX(data)
		if err != nil {
			return err
		}
		out, err = WriteLSF(root, engine, lsfVersionForEngine(engine), DefaultPackMethodFlags)
		if err != nil {
			return err
		}
	case !srcIsLSX && dstIsLSX:
		root, engine, err := ReadLSF(data)
		if err != nil {
			return err
		}
		out = WriteLSX(root, engine, LSXOptions{})
	default:
		out = data
	}

	return os.WriteFile(dstPath, out, 0o644)
}

// lsfVersionForEngine picks the LSF layout version Convert targets when
// writing LSF, from the source document's engine version.
func lsfVersionForEngine(engine Version) LSFVersion {
	if engine.IsBG3() {
		return LSFVersionBG3Extended
	}
	return LSFVersionLegacy
}

// ConvertLSFToLSX decodes an LSF document and re-encodes it as LSX, using
// engine (the LSF header's recorded engine version) as the document's
// <version> tag.
func ConvertLSFToLSX(data []byte, opts LSXOptions) ([]byte, error) {
	root, engine, err := ReadLSF(data)
	if err != nil {
		return nil, err
	}
	return WriteLSX(root, engine, opts), nil
}

// ConvertLSXToLSF decodes an LSX document and re-encodes it as LSF under
// the given version and compression method.
func ConvertLSXToLSF(data []byte, version LSFVersion, methodFlags byte) ([]byte, error) {
	root, engine, err := ReadLSX(data)
	if err != nil {
		return nil, err
	}
	return WriteLSF(root, engine, version, methodFlags)
}

// DefaultPackMethodFlags is the compression method this module packs new
// LSV members under absent an explicit choice: zlib at its default level,
// matching the reference tool's own default save behavior.
var DefaultPackMethodFlags = byte(compress.MethodZlib) | compress.LevelDefault

// ExtractLSX unpacks an LSV package and converts every LSF member to
// LSX, renaming its in-package path from ".lsf" to ".lsx". Non-LSF
// members pass through unchanged.
func ExtractLSX(data []byte, opts LSXOptions) (*Package, error) {
	pkg, err := Unpack(data)
	if err != nil {
		return nil, err
	}
	for i, f := range pkg.Files {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".lsf") {
			continue
		}
		lsxData, err := ConvertLSFToLSX(f.Data, opts)
		if err != nil {
			return nil, err
		}
		pkg.Files[i].Name = f.Name[:len(f.Name)-4] + ".lsx"
		pkg.Files[i].Data = lsxData
	}
	return pkg, nil
}

// PackFromLSX builds an LSV package from a set of LSX source documents,
// converting each to LSF before compression and renaming its in-package
// path from ".lsx" to ".lsf" — packages never carry XML members.
func PackFromLSX(sources []PackagedFile, lsfVersion LSFVersion, packVersion PackageVersion, opts PackOptions) ([]byte, error) {
	converted := make([]PackagedFile, len(sources))
	for i, src := range sources {
		methodFlags := src.MethodFlags
		if methodFlags == 0 {
			methodFlags = DefaultPackMethodFlags
		}
		lsfData, err := ConvertLSXToLSF(src.Data, lsfVersion, methodFlags)
		if err != nil {
			return nil, err
		}
		name := src.Name
		if strings.HasSuffix(strings.ToLower(name), ".lsx") {
			name = name[:len(name)-4] + ".lsf"
		}
		converted[i] = PackagedFile{Name: name, Data: lsfData, MethodFlags: methodFlags}
	}
	return Pack(converted, packVersion, opts)
}
