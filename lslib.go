// Package lslib reads, writes, and byte-exactly round-trips the three
// nested container formats used by Divinity: Original Sin 2 and Baldur's
// Gate 3 savegames: LSV (outer package), LSF (binary tree), and LSX (its
// XML projection).
package lslib

import "github.com/Smotherer007/pLarianSaveTools/internal/tree"

// Tree model types. These are defined in internal/tree so that the codec
// packages (internal/lsf, internal/lsx, internal/lsv) can depend on them
// without an import cycle back through this package; lslib re-exports
// them as the public API.
type (
	Node                 = tree.Node
	AttributeList        = tree.AttributeList
	Attribute            = tree.Attribute
	AttrType             = tree.AttrType
	Value                = tree.Value
	TranslatedString     = tree.TranslatedString
	TranslatedFSString   = tree.TranslatedFSString
	TranslatedFSArgument = tree.TranslatedFSArgument
	Version              = tree.Version
)

// Attribute type tags.
const (
	TypeNone               = tree.TypeNone
	TypeByte               = tree.TypeByte
	TypeShort              = tree.TypeShort
	TypeUShort             = tree.TypeUShort
	TypeInt                = tree.TypeInt
	TypeUInt               = tree.TypeUInt
	TypeFloat              = tree.TypeFloat
	TypeDouble             = tree.TypeDouble
	TypeIVec2              = tree.TypeIVec2
	TypeIVec3              = tree.TypeIVec3
	TypeIVec4              = tree.TypeIVec4
	TypeVec2               = tree.TypeVec2
	TypeVec3               = tree.TypeVec3
	TypeVec4               = tree.TypeVec4
	TypeMat2               = tree.TypeMat2
	TypeMat3               = tree.TypeMat3
	TypeMat4               = tree.TypeMat4
	TypeBool               = tree.TypeBool
	TypeString             = tree.TypeString
	TypePath               = tree.TypePath
	TypeFixedString        = tree.TypeFixedString
	TypeLSString           = tree.TypeLSString
	TypeULongLong          = tree.TypeULongLong
	TypeScratchBuffer      = tree.TypeScratchBuffer
	TypeLong               = tree.TypeLong
	TypeInt8               = tree.TypeInt8
	TypeTranslatedString   = tree.TypeTranslatedString
	TypeWString            = tree.TypeWString
	TypeLSWString          = tree.TypeLSWString
	TypeUUID               = tree.TypeUUID
	TypeInt64              = tree.TypeInt64
	TypeTranslatedFSString = tree.TypeTranslatedFSString
)

// NewNode creates an empty node ready for attributes and children.
func NewNode(name string) *Node { return tree.NewNode(name) }

// NewAttributeList creates an empty, ready-to-use attribute list.
func NewAttributeList() *AttributeList { return tree.NewAttributeList() }

// TypeByName resolves an LSX type name to its tag.
func TypeByName(name string) (AttrType, bool) { return tree.TypeByName(name) }

// DefaultVersion is the version LSX assumes when a document's <version>
// element is missing entirely.
var DefaultVersion = tree.DefaultVersion
