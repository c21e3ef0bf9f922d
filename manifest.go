package lslib

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
)

// ManifestFileName is the optional per-directory index an unpack step
// leaves behind so a later pack can reproduce the original package's
// file order and per-file compression flags.
const ManifestFileName = "__manifest__.json"

// ManifestEntry records one packaged file's in-package name and the
// methodFlags byte it was originally stored under.
type ManifestEntry struct {
	Name  string `json:"name"`
	Flags byte   `json:"flags"`
}

// Manifest enumerates an unpacked package's files in the order required
// to reproduce the original package, plus the package-level header
// fields that aren't derivable from the files themselves.
type Manifest struct {
	Version  uint32          `json:"version"`
	Flags    byte            `json:"flags,omitempty"`
	Priority byte            `json:"priority,omitempty"`
	Files    []ManifestEntry `json:"files"`
}

// ManifestOf captures p's file order, per-file flags, and header fields.
func ManifestOf(p *Package) *Manifest {
	m := &Manifest{
		Version:  uint32(p.Version),
		Flags:    p.Flags,
		Priority: p.Priority,
		Files:    make([]ManifestEntry, len(p.Files)),
	}
	for i, f := range p.Files {
		m.Files[i] = ManifestEntry{Name: f.Name, Flags: f.MethodFlags}
	}
	return m
}

// SaveManifest writes m into dir as __manifest__.json.
func SaveManifest(dir string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "\t")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), append(data, '\n'), 0o644); err != nil {
		return lserr.Wrap(lserr.KindIO, "writing package manifest", err)
	}
	return nil
}

// LoadManifest reads dir's __manifest__.json. ok is false when the
// directory has no manifest; any other read or decode failure is an error.
func LoadManifest(dir string) (m *Manifest, ok bool, err error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, lserr.Wrap(lserr.KindIO, "reading package manifest", err)
	}
	var out Manifest
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false, lserr.Wrap(lserr.KindFormat, "decoding package manifest", err)
	}
	return &out, true, nil
}

// CollectFiles gathers the files a pack step should include from dir. A
// manifest, when present, supplies the file order and per-file flags;
// otherwise the directory is scanned recursively and entries are sorted
// by their slash-separated in-package path, each under defaultFlags. The
// manifest itself is never packed.
func CollectFiles(dir string, defaultFlags byte) ([]PackagedFile, *Manifest, error) {
	m, ok, err := LoadManifest(dir)
	if err != nil {
		return nil, nil, err
	}

	if ok {
		files := make([]PackagedFile, len(m.Files))
		for i, e := range m.Files {
			data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(e.Name)))
			if err != nil {
				return nil, nil, lserr.Wrap(lserr.KindIO, "reading packaged file "+e.Name, err)
			}
			files[i] = PackagedFile{Name: e.Name, Data: data, MethodFlags: e.Flags}
		}
		return files, m, nil
	}

	var names []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if name == ManifestFileName {
			return nil
		}
		names = append(names, name)
		return nil
	})
	if walkErr != nil {
		return nil, nil, lserr.Wrap(lserr.KindIO, "scanning pack directory", walkErr)
	}
	sort.Strings(names)

	files := make([]PackagedFile, len(names))
	for i, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			return nil, nil, lserr.Wrap(lserr.KindIO, "reading packaged file "+name, err)
		}
		files[i] = PackagedFile{Name: name, Data: data, MethodFlags: defaultFlags}
	}
	return files, nil, nil
}
