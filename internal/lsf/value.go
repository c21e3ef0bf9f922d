package lsf

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Smotherer007/pLarianSaveTools/internal/guidswap"
	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
	"github.com/Smotherer007/pLarianSaveTools/internal/tree"
)

// decodeValue reads one attribute's value out of the value heap. declaredLen
// is the attribute table's recorded byte length (typeAndLength >> 6); it is
// authoritative for fixed- and variable-length scalar types, and ignored by
// the self-describing TranslatedString/TranslatedFSString encodings.
func decodeValue(t tree.AttrType, data []byte, declaredLen int, lsfVersion uint32) (tree.Value, int, error) {
	need := func(n int) error {
		if len(data) < n {
			return lserr.New(lserr.KindCorruptPayload, "value heap truncated")
		}
		return nil
	}

	switch t {
	case tree.TypeNone:
		return tree.Value{}, 0, nil

	case tree.TypeByte:
		if err := need(1); err != nil {
			return tree.Value{}, 0, err
		}
		return tree.Value{Int: int64(data[0])}, 1, nil

	case tree.TypeBool:
		if err := need(1); err != nil {
			return tree.Value{}, 0, err
		}
		return tree.Value{Bool: data[0] != 0}, 1, nil

	case tree.TypeInt8:
		if err := need(1); err != nil {
			return tree.Value{}, 0, err
		}
		return tree.Value{Int: int64(int8(data[0]))}, 1, nil

	case tree.TypeShort:
		if err := need(2); err != nil {
			return tree.Value{}, 0, err
		}
		return tree.Value{Int: int64(int16(binary.LittleEndian.Uint16(data[:2])))}, 2, nil

	case tree.TypeUShort:
		if err := need(2); err != nil {
			return tree.Value{}, 0, err
		}
		return tree.Value{Int: int64(binary.LittleEndian.Uint16(data[:2]))}, 2, nil

	case tree.TypeInt:
		if err := need(4); err != nil {
			return tree.Value{}, 0, err
		}
		return tree.Value{Int: int64(int32(binary.LittleEndian.Uint32(data[:4])))}, 4, nil

	case tree.TypeUInt:
		if err := need(4); err != nil {
			return tree.Value{}, 0, err
		}
		return tree.Value{Int: int64(binary.LittleEndian.Uint32(data[:4]))}, 4, nil

	case tree.TypeFloat:
		if err := need(4); err != nil {
			return tree.Value{}, 0, err
		}
		f := math.Float32frombits(binary.LittleEndian.Uint32(data[:4]))
		return tree.Value{F64: float64(f)}, 4, nil

	case tree.TypeDouble:
		if err := need(8); err != nil {
			return tree.Value{}, 0, err
		}
		return tree.Value{F64: math.Float64frombits(binary.LittleEndian.Uint64(data[:8]))}, 8, nil

	case tree.TypeLong, tree.TypeInt64, tree.TypeULongLong:
		if err := need(8); err != nil {
			return tree.Value{}, 0, err
		}
		return tree.Value{Int: int64(binary.LittleEndian.Uint64(data[:8]))}, 8, nil

	case tree.TypeIVec2, tree.TypeIVec3, tree.TypeIVec4:
		n := t.VectorComponents()
		if err := need(n * 4); err != nil {
			return tree.Value{}, 0, err
		}
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			v := int32(binary.LittleEndian.Uint32(data[i*4 : i*4+4]))
			parts[i] = strconv.FormatInt(int64(v), 10)
		}
		return tree.Value{Str: strings.Join(parts, " ")}, n * 4, nil

	case tree.TypeVec2, tree.TypeVec3, tree.TypeVec4, tree.TypeMat2, tree.TypeMat3, tree.TypeMat4:
		n := t.VectorComponents()
		if err := need(n * 4); err != nil {
			return tree.Value{}, 0, err
		}
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			f := math.Float32frombits(binary.LittleEndian.Uint32(data[i*4 : i*4+4]))
			parts[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
		}
		return tree.Value{Str: strings.Join(parts, " ")}, n * 4, nil

	case tree.TypeString, tree.TypePath, tree.TypeFixedString, tree.TypeLSString, tree.TypeWString, tree.TypeLSWString:
		if err := need(declaredLen); err != nil {
			return tree.Value{}, 0, err
		}
		return tree.Value{Str: trimNUL(data[:declaredLen])}, declaredLen, nil

	case tree.TypeScratchBuffer:
		if err := need(declaredLen); err != nil {
			return tree.Value{}, 0, err
		}
		return tree.Value{Str: base64.StdEncoding.EncodeToString(data[:declaredLen])}, declaredLen, nil

	case tree.TypeUUID:
		if err := need(16); err != nil {
			return tree.Value{}, 0, err
		}
		var b [16]byte
		copy(b[:], data[:16])
		return tree.Value{Str: guidswap.Decode(b)}, 16, nil

	case tree.TypeTranslatedString:
		ts, n, err := decodeTranslatedString(data)
		if err != nil {
			return tree.Value{}, 0, err
		}
		return tree.Value{Translated: ts}, n, nil

	case tree.TypeTranslatedFSString:
		fs, n, err := decodeTranslatedFSString(data, lsfVersion)
		if err != nil {
			return tree.Value{}, 0, err
		}
		return tree.Value{TranslatedFS: fs}, n, nil

	default:
		return tree.Value{}, 0, lserr.New(lserr.KindFormat, fmt.Sprintf("unknown attribute type tag %d", t))
	}
}

// encodeValue is decodeValue read in reverse: it produces the exact bytes
// that belong at an attribute's valueOffset, with len(result) equal to the
// typeAndLength byte length the writer must record.
func encodeValue(t tree.AttrType, v tree.Value, lsfVersion uint32) ([]byte, error) {
	switch t {
	case tree.TypeNone:
		return nil, nil

	case tree.TypeByte, tree.TypeBool, tree.TypeInt8:
		var b byte
		if t == tree.TypeBool {
			if v.Bool {
				b = 1
			}
		} else {
			b = byte(v.Int)
		}
		return []byte{b}, nil

	case tree.TypeShort, tree.TypeUShort:
		return le16(uint16(v.Int)), nil

	case tree.TypeInt, tree.TypeUInt:
		return le32(uint32(v.Int)), nil

	case tree.TypeFloat:
		return le32(math.Float32bits(float32(v.F64))), nil

	case tree.TypeDouble:
		return le64(math.Float64bits(v.F64)), nil

	case tree.TypeLong, tree.TypeInt64, tree.TypeULongLong:
		return le64(uint64(v.Int)), nil

	case tree.TypeIVec2, tree.TypeIVec3, tree.TypeIVec4:
		n := t.VectorComponents()
		comps, err := splitComponents(v.Str, n)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 0, n*4)
		for _, c := range comps {
			iv, err := strconv.ParseInt(strings.TrimSpace(c), 10, 32)
			if err != nil {
				iv = 0
			}
			out = append(out, le32(uint32(int32(iv)))...)
		}
		return out, nil

	case tree.TypeVec2, tree.TypeVec3, tree.TypeVec4, tree.TypeMat2, tree.TypeMat3, tree.TypeMat4:
		n := t.VectorComponents()
		comps, err := splitComponents(v.Str, n)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 0, n*4)
		for _, c := range comps {
			fv, err := strconv.ParseFloat(strings.TrimSpace(c), 32)
			if err != nil {
				fv = 0
			}
			out = append(out, le32(math.Float32bits(float32(fv)))...)
		}
		return out, nil

	case tree.TypeString, tree.TypePath, tree.TypeFixedString, tree.TypeLSString, tree.TypeWString, tree.TypeLSWString:
		out := append([]byte(v.Str), 0)
		return out, nil

	case tree.TypeScratchBuffer:
		raw, err := base64.StdEncoding.DecodeString(v.Str)
		if err != nil {
			return nil, lserr.Wrap(lserr.KindFormat, "decoding ScratchBuffer base64", err)
		}
		return raw, nil

	case tree.TypeUUID:
		b, err := guidswap.Encode(v.Str)
		if err != nil {
			return nil, lserr.Wrap(lserr.KindFormat, "parsing UUID attribute value", err)
		}
		return b[:], nil

	case tree.TypeTranslatedString:
		if v.Translated == nil {
			return encodeTranslatedString(tree.TranslatedString{}), nil
		}
		return encodeTranslatedString(*v.Translated), nil

	case tree.TypeTranslatedFSString:
		if v.TranslatedFS == nil {
			return encodeTranslatedFSString(tree.TranslatedFSString{}, lsfVersion), nil
		}
		return encodeTranslatedFSString(*v.TranslatedFS, lsfVersion), nil

	default:
		return nil, lserr.New(lserr.KindFormat, fmt.Sprintf("unknown attribute type tag %d", t))
	}
}

func trimNUL(b []byte) string {
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return string(b)
}

func splitComponents(s string, n int) ([]string, error) {
	fields := strings.Fields(s)
	if len(fields) < n {
		for len(fields) < n {
			fields = append(fields, "0")
		}
	}
	return fields[:n], nil
}

func le16(v uint16) []byte { return []byte{byte(v), byte(v >> 8)} }
func le32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
func le64(v uint64) []byte {
	return []byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
	}
}

// decodeTranslatedString parses {i32 valueLen, value[valueLen] (NUL-terminated),
// i32 handleLen, handle[handleLen] (NUL-terminated)}.
func decodeTranslatedString(data []byte) (*tree.TranslatedString, int, error) {
	off := 0
	value, n, err := decodeLengthPrefixedNUL(data[off:])
	if err != nil {
		return nil, 0, err
	}
	off += n

	handle, n, err := decodeLengthPrefixedNUL(data[off:])
	if err != nil {
		return nil, 0, err
	}
	off += n

	return &tree.TranslatedString{Value: value, Handle: handle}, off, nil
}

func decodeLengthPrefixedNUL(data []byte) (string, int, error) {
	if len(data) < 4 {
		return "", 0, lserr.New(lserr.KindCorruptPayload, "truncated length-prefixed string")
	}
	l := int(int32(binary.LittleEndian.Uint32(data[0:4])))
	if l < 0 || 4+l > len(data) {
		return "", 0, lserr.New(lserr.KindCorruptPayload, "length-prefixed string exceeds buffer")
	}
	return trimNUL(data[4 : 4+l]), 4 + l, nil
}

func encodeTranslatedString(ts tree.TranslatedString) []byte {
	var out []byte
	out = appendLengthPrefixedNUL(out, ts.Value)
	out = appendLengthPrefixedNUL(out, ts.Handle)
	return out
}

func appendLengthPrefixedNUL(out []byte, s string) []byte {
	b := append([]byte(s), 0)
	out = append(out, le32(uint32(len(b)))...)
	out = append(out, b...)
	return out
}

// decodeTranslatedFSString parses the recursive FS-string structure: an
// optional BG3 version prefix, the base TranslatedString fields, then an
// argument list whose entries may themselves carry nested FS strings.
func decodeTranslatedFSString(data []byte, lsfVersion uint32) (*tree.TranslatedFSString, int, error) {
	off := 0
	if lsfVersion >= 5 {
		if len(data) < 2 {
			return nil, 0, lserr.New(lserr.KindCorruptPayload, "truncated TranslatedFSString version prefix")
		}
		off += 2
	}

	ts, n, err := decodeTranslatedString(data[off:])
	if err != nil {
		return nil, 0, err
	}
	off += n

	if len(data[off:]) < 4 {
		return nil, 0, lserr.New(lserr.KindCorruptPayload, "truncated TranslatedFSString argument count")
	}
	numArgs := int32(binary.LittleEndian.Uint32(data[off : off+4]))
	off += 4

	args := make([]tree.TranslatedFSArgument, 0, numArgs)
	for i := int32(0); i < numArgs; i++ {
		key, n, err := decodeLengthPrefixed(data[off:])
		if err != nil {
			return nil, 0, err
		}
		off += n

		nested, n, err := decodeTranslatedFSString(data[off:], lsfVersion)
		if err != nil {
			return nil, 0, err
		}
		off += n

		val, n, err := decodeLengthPrefixed(data[off:])
		if err != nil {
			return nil, 0, err
		}
		off += n

		args = append(args, tree.TranslatedFSArgument{Key: key, Value: val, String: nested})
	}

	return &tree.TranslatedFSString{Value: ts.Value, Handle: ts.Handle, Arguments: args}, off, nil
}

func decodeLengthPrefixed(data []byte) (string, int, error) {
	if len(data) < 4 {
		return "", 0, lserr.New(lserr.KindCorruptPayload, "truncated length-prefixed string")
	}
	l := int(int32(binary.LittleEndian.Uint32(data[0:4])))
	if l < 0 || 4+l > len(data) {
		return "", 0, lserr.New(lserr.KindCorruptPayload, "length-prefixed string exceeds buffer")
	}
	return string(data[4 : 4+l]), 4 + l, nil
}

func appendLengthPrefixed(out []byte, s string) []byte {
	out = append(out, le32(uint32(len(s)))...)
	out = append(out, s...)
	return out
}

// encodeTranslatedFSString writes a fixed version prefix of 0 for BG3
// documents; the reference tool's version field has no documented
// semantics beyond being present.
func encodeTranslatedFSString(fs tree.TranslatedFSString, lsfVersion uint32) []byte {
	var out []byte
	if lsfVersion >= 5 {
		out = append(out, 0, 0)
	}
	out = append(out, encodeTranslatedString(tree.TranslatedString{Value: fs.Value, Handle: fs.Handle})...)
	out = append(out, le32(uint32(len(fs.Arguments)))...)
	for _, a := range fs.Arguments {
		out = appendLengthPrefixed(out, a.Key)
		if a.String != nil {
			out = append(out, encodeTranslatedFSString(*a.String, lsfVersion)...)
		} else {
			out = append(out, encodeTranslatedFSString(tree.TranslatedFSString{}, lsfVersion)...)
		}
		out = appendLengthPrefixed(out, a.Value)
	}
	return out
}
