package lslib

import (
	"github.com/Smotherer007/pLarianSaveTools/internal/lsv"
)

// PackageVersion identifies one of the five LSV on-disk layouts this
// module reads and writes.
type PackageVersion uint32

const (
	// PackageVersionDOS2 is the original trailer-based DOS2 layout.
	PackageVersionDOS2 PackageVersion = 10
	// PackageVersionDOS2DE is the Definitive Edition trailer-based layout.
	PackageVersionDOS2DE PackageVersion = 13
	// PackageVersionBG3 is the earliest head-based BG3 layout.
	PackageVersionBG3 PackageVersion = 15
	// PackageVersionBG3Patch4 uses the same 272-byte file list entries as
	// v18; those entries have no CRC-32 field, so no checksum is stored.
	PackageVersionBG3Patch4 PackageVersion = 16
	// PackageVersionBG3Latest packs offset/part/flags into a single
	// 64-bit field per entry, per the current BG3 file list layout.
	PackageVersionBG3Latest PackageVersion = 18
)

// PackagedFile is one member of an LSV package: its in-package name, raw
// (decompressed) contents, and the compression method/level it should be
// (re-)packed under.
type PackagedFile struct {
	Name        string
	Data        []byte
	MethodFlags byte
}

// Package is the decoded form of an LSV package.
type Package struct {
	Version  PackageVersion
	Files    []PackagedFile
	Flags    byte
	Priority byte
}

// Unpack decodes a complete LSV package.
func Unpack(data []byte) (*Package, error) {
	res, err := lsv.Read(data)
	if err != nil {
		return nil, err
	}
	files := make([]PackagedFile, len(res.Files))
	for i, f := range res.Files {
		files[i] = PackagedFile{Name: f.Name, Data: f.Data, MethodFlags: f.Flags}
	}
	return &Package{
		Version:  PackageVersion(res.Version),
		Files:    files,
		Flags:    res.Flags,
		Priority: res.Priority,
	}, nil
}

// PackOptions carries the package-level fields of a packed LSV that
// aren't derived from its file list.
type PackOptions struct {
	Flags    byte
	Priority byte
}

// Pack encodes files into a complete LSV package of the given version.
// Files are written in the given order, each compressed under its own
// MethodFlags.
func Pack(files []PackagedFile, version PackageVersion, opts PackOptions) ([]byte, error) {
	in := make([]lsv.PackagedFileInput, len(files))
	for i, f := range files {
		in[i] = lsv.PackagedFileInput{Name: f.Name, Data: f.Data, MethodFlags: f.MethodFlags}
	}
	return lsv.Write(in, uint32(version), lsv.WriteOptions{Flags: opts.Flags, Priority: opts.Priority})
}
