package tree

// AttrType is the type tag carried by every Attribute. The numbering
// matches the engine's serializer; see DESIGN.md for how the Mat2..Mat4
// shorthand collapses the nominal 0..33 range into this 32-entry table.
type AttrType uint8

// Attribute type tags.
const (
	TypeNone AttrType = iota
	TypeByte
	TypeShort
	TypeUShort
	TypeInt
	TypeUInt
	TypeFloat
	TypeDouble
	TypeIVec2
	TypeIVec3
	TypeIVec4
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMat2
	TypeMat3
	TypeMat4
	TypeBool
	TypeString
	TypePath
	TypeFixedString
	TypeLSString
	TypeULongLong
	TypeScratchBuffer
	TypeLong
	TypeInt8
	TypeTranslatedString
	TypeWString
	TypeLSWString
	TypeUUID
	TypeInt64
	TypeTranslatedFSString

	typeCount
)

var typeNames = [typeCount]string{
	TypeNone:               "None",
	TypeByte:               "Byte",
	TypeShort:              "Short",
	TypeUShort:             "UShort",
	TypeInt:                "Int",
	TypeUInt:               "UInt",
	TypeFloat:              "Float",
	TypeDouble:             "Double",
	TypeIVec2:              "IVec2",
	TypeIVec3:              "IVec3",
	TypeIVec4:              "IVec4",
	TypeVec2:               "Vec2",
	TypeVec3:               "Vec3",
	TypeVec4:               "Vec4",
	TypeMat2:               "Mat2",
	TypeMat3:               "Mat3",
	TypeMat4:               "Mat4",
	TypeBool:               "Bool",
	TypeString:             "String",
	TypePath:               "Path",
	TypeFixedString:        "FixedString",
	TypeLSString:           "LSString",
	TypeULongLong:          "ULongLong",
	TypeScratchBuffer:      "ScratchBuffer",
	TypeLong:               "Long",
	TypeInt8:               "Int8",
	TypeTranslatedString:   "TranslatedString",
	TypeWString:            "WString",
	TypeLSWString:          "LSWString",
	TypeUUID:               "UUID",
	TypeInt64:              "Int64",
	TypeTranslatedFSString: "TranslatedFSString",
}

// Name returns the type's canonical LSX name, or "" if t is out of range.
func (t AttrType) Name() string {
	if int(t) < 0 || t >= typeCount {
		return ""
	}
	return typeNames[t]
}

// TypeByName resolves an LSX type name to its tag. Unknown names resolve
// to TypeString, per the LSX reader's "unknown names map to String" rule.
func TypeByName(name string) (AttrType, bool) {
	for i, n := range typeNames {
		if n == name {
			return AttrType(i), true
		}
	}
	return TypeString, false
}

// VectorComponents returns how many numeric components a vector/matrix
// type carries, or 0 if t is not a vector/matrix type.
func (t AttrType) VectorComponents() int {
	switch t {
	case TypeIVec2, TypeVec2:
		return 2
	case TypeIVec3, TypeVec3:
		return 3
	case TypeIVec4, TypeVec4:
		return 4
	case TypeMat2:
		return 4
	case TypeMat3:
		return 9
	case TypeMat4:
		return 16
	default:
		return 0
	}
}

// IsIntegerVector reports whether t is an integer (not float) vector type.
func (t AttrType) IsIntegerVector() bool {
	switch t {
	case TypeIVec2, TypeIVec3, TypeIVec4:
		return true
	default:
		return false
	}
}

// IsMatrix reports whether t is one of the Mat2/Mat3/Mat4 types.
func (t AttrType) IsMatrix() bool {
	switch t {
	case TypeMat2, TypeMat3, TypeMat4:
		return true
	default:
		return false
	}
}

// FixedSize returns the on-disk byte length for fixed-size types, and
// false for variable-length types (strings, ScratchBuffer, translated
// strings) whose length is carried alongside the value itself.
func (t AttrType) FixedSize() (int, bool) {
	switch t {
	case TypeNone:
		return 0, true
	case TypeByte, TypeBool, TypeInt8:
		return 1, true
	case TypeShort, TypeUShort:
		return 2, true
	case TypeInt, TypeUInt, TypeFloat:
		return 4, true
	case TypeDouble, TypeULongLong, TypeLong, TypeInt64:
		return 8, true
	case TypeIVec2, TypeVec2:
		return 8, true
	case TypeIVec3, TypeVec3:
		return 12, true
	case TypeIVec4, TypeVec4:
		return 16, true
	case TypeMat2:
		return 16, true
	case TypeMat3:
		return 36, true
	case TypeMat4:
		return 64, true
	case TypeUUID:
		return 16, true
	default:
		return 0, false
	}
}

// TranslatedString is a localization-aware string carrying a handle into
// the engine's translation table.
type TranslatedString struct {
	Value  string
	Handle string
}

// TranslatedFSArgument is one substitution slot within a
// TranslatedFSString's argument list.
type TranslatedFSArgument struct {
	Key    string
	Value  string
	String *TranslatedFSString // recursive nested substitution, optional
}

// TranslatedFSString is a TranslatedString that additionally carries
// recursive argument substitutions.
type TranslatedFSString struct {
	Value     string
	Handle    string
	Arguments []TranslatedFSArgument
}

// Value is the tagged union an Attribute's payload is stored in. Exactly
// the fields relevant to the Attribute's Type are populated; callers must
// branch on Type, not on which fields are non-zero.
type Value struct {
	// Int carries every integer type's bit pattern (Byte, Short, UShort,
	// Int, UInt, Long, Int8, Int64, ULongLong); unsigned types reinterpret
	// it via uint64(Int) — the two's-complement bit pattern is identical
	// either way.
	Int  int64
	F64  float64 // Float (32-bit precision enforced at encode time), Double
	Bool bool
	// Str carries: String/Path/FixedString/LSString/WString/LSWString
	// verbatim; vectors and matrices as their space-separated component
	// text; UUID as canonical 8-4-4-4-12 hex; ScratchBuffer as base64.
	Str          string
	Translated   *TranslatedString
	TranslatedFS *TranslatedFSString
}

// Attribute is a single named, typed value attached to a Node.
type Attribute struct {
	Name  string
	Type  AttrType
	Value Value
}
