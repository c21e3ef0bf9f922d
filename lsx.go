package lslib

import (
	"github.com/Smotherer007/pLarianSaveTools/internal/lsx"
)

// TypeNotation selects how an attribute's "type" field is rendered in
// LSX output.
type TypeNotation uint8

// Type notations. Auto follows the document version: numeric ids for
// DOS2-lineage documents (major < 4), enum names for BG3.
const (
	TypeNotationAuto TypeNotation = iota
	TypeNotationNumeric
	TypeNotationNames
)

// LSXOptions controls the formatting choices the reference tool ties to a
// document's resource version and lslib_meta string.
type LSXOptions struct {
	// Notation selects numeric type ids ("4") or type names ("Int") for
	// the attribute "type" field. The zero value follows the document
	// version.
	Notation TypeNotation
	// LSLibMeta is written as the <version lslib_meta="..."/> attribute.
	// Defaults to "v1,bswap_guids" when left empty, matching the reader's
	// assumed default UUID formatting.
	LSLibMeta string
	// ResourceVersion selects TranslatedString/TranslatedFSString attribute
	// ordering. Below 33, handle precedes value (DOS2); 33 and above,
	// value precedes handle and carries an arguments count (BG3). Zero
	// follows the document version: 33 for BG3, 28 for DOS2.
	ResourceVersion uint32
}

// DefaultLSLibMeta is the lslib_meta value this module assumes when an
// LSXOptions is left zero-valued.
const DefaultLSLibMeta = "v1,bswap_guids"

// ReadLSX decodes a complete LSX document.
func ReadLSX(data []byte) (*Node, Version, error) {
	res, err := lsx.Read(data)
	if err != nil {
		return nil, Version{}, err
	}
	return res.Root, res.Version, nil
}

// WriteLSX encodes root (and version, the document's <version> tag) as a
// complete LSX document.
func WriteLSX(root *Node, version Version, opts LSXOptions) []byte {
	lslibMeta := opts.LSLibMeta
	if lslibMeta == "" {
		lslibMeta = DefaultLSLibMeta
	}
	numeric := opts.Notation == TypeNotationNumeric ||
		(opts.Notation == TypeNotationAuto && version.Major < 4)
	resourceVersion := opts.ResourceVersion
	if resourceVersion == 0 {
		if version.IsBG3() {
			resourceVersion = 33
		} else {
			resourceVersion = 28
		}
	}
	return lsx.Write(root, version, lsx.Options{
		NumericTypes:    numeric,
		LSLibMeta:       lslibMeta,
		ResourceVersion: resourceVersion,
	})
}
