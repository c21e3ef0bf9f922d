package lslib

import (
	"github.com/Smotherer007/pLarianSaveTools/internal/lsf"
)

// LSFVersion selects the header/metadata/table layout used when writing an
// LSF document. Reading always auto-detects the layout from the header.
type LSFVersion uint32

// Layouts this module writes. LSFVersionLegacy targets DOS2 saves (V2 node
// and attribute tables, four-pair metadata block, no keys block).
// LSFVersionBG3Extended adds the keys block and switches to V3 tables, as
// used by Baldur's Gate 3 saves.
const (
	LSFVersionLegacy      LSFVersion = 3
	LSFVersionBG3Extended LSFVersion = 6
)

// metadataFormatFor chooses the node/attribute table layout paired with an
// LSF document version: V3 (16-byte entries, explicit chains) from version
// 6 onward, V2 (12-byte entries) below that.
func metadataFormatFor(version LSFVersion) uint32 {
	if version >= 6 {
		return 1
	}
	return 0
}

// ReadLSF decodes a complete LSF document.
func ReadLSF(data []byte) (*Node, Version, error) {
	res, err := lsf.Read(data)
	if err != nil {
		return nil, Version{}, err
	}
	return res.Root, res.Version, nil
}

// WriteLSF encodes root as an LSF document of the given version, tagged
// with engine as its header's engine-version field. methodFlags selects
// the compression method and level hint applied to every block (see
// internal/compress).
func WriteLSF(root *Node, engine Version, version LSFVersion, methodFlags byte) ([]byte, error) {
	return lsf.Write(root, engine, uint32(version), metadataFormatFor(version), methodFlags)
}
