package lsx

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Smotherer007/pLarianSaveTools/internal/guidswap"
	"github.com/Smotherer007/pLarianSaveTools/internal/tree"
)

// Options controls the formatting choices the reference tool ties to
// document version and metadata, per the writer's byte-identity rules.
type Options struct {
	// NumericTypes selects numeric type ids ("4") over type names
	// ("Int") for the attribute "type" field. Write uses it as given;
	// lslib.WriteLSX sets it to version.Major < 4 when its notation is auto.
	NumericTypes bool
	// LSLibMeta is the <version lslib_meta="..."/> value. Its presence of
	// "bswap_guids" controls whether UUID attributes are re-emitted in
	// canonical form (present) or in the legacy swapped display form
	// (absent).
	LSLibMeta string
	// ResourceVersion selects TranslatedString/TranslatedFSString
	// attribute ordering: < 33 emits handle before value (the "v28"
	// convention); >= 33 emits value before handle and appends an
	// arguments count (the "v33" convention).
	ResourceVersion uint32
}

// Write encodes root (and version, the document's <version> tag) as a
// complete LSX document.
func Write(root *tree.Node, version tree.Version, opts Options) []byte {
	var buf bytes.Buffer
	buf.Write(bom)
	buf.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\r\n")
	buf.WriteString("<save>\r\n")
	writeVersionTag(&buf, version, opts.LSLibMeta)

	bswap := strings.Contains(opts.LSLibMeta, "bswap_guids")
	for _, region := range regionsOf(root) {
		writeRegion(&buf, region, 1, opts.ResourceVersion, opts.NumericTypes, bswap)
	}
	buf.WriteString("</save>")
	return buf.Bytes()
}

func regionsOf(root *tree.Node) []*tree.Node {
	if root.Name == "save" && (root.Attributes == nil || root.Attributes.Len() == 0) && len(root.Children) > 0 {
		return root.Children
	}
	return []*tree.Node{root}
}

func tabs(n int) string { return strings.Repeat("\t", n) }

func writeVersionTag(buf *bytes.Buffer, v tree.Version, lslibMeta string) {
	buf.WriteString(tabs(1))
	buf.WriteString(`<version major="`)
	buf.WriteString(strconv.FormatUint(uint64(v.Major), 10))
	buf.WriteString(`" minor="`)
	buf.WriteString(strconv.FormatUint(uint64(v.Minor), 10))
	buf.WriteString(`" revision="`)
	buf.WriteString(strconv.FormatUint(uint64(v.Revision), 10))
	buf.WriteString(`" build="`)
	buf.WriteString(strconv.FormatUint(uint64(v.Build), 10))
	buf.WriteString(`"`)
	if lslibMeta != "" {
		buf.WriteString(` lslib_meta="`)
		buf.WriteString(escapeAttr(lslibMeta))
		buf.WriteString(`"`)
	}
	buf.WriteString(" />\r\n")
}

func writeRegion(buf *bytes.Buffer, region *tree.Node, indent int, resourceVersion uint32, numericTypes, bswap bool) {
	buf.WriteString(tabs(indent))
	buf.WriteString(`<region id="`)
	buf.WriteString(escapeAttr(region.Name))
	buf.WriteString("\">\r\n")
	writeNode(buf, region, indent+1, resourceVersion, numericTypes, bswap)
	buf.WriteString(tabs(indent))
	buf.WriteString("</region>\r\n")
}

func writeNode(buf *bytes.Buffer, n *tree.Node, indent int, resourceVersion uint32, numericTypes, bswap bool) {
	buf.WriteString(tabs(indent))
	buf.WriteString(`<node id="`)
	buf.WriteString(escapeAttr(n.Name))
	buf.WriteString(`"`)
	if n.Key != "" {
		buf.WriteString(` key="`)
		buf.WriteString(escapeAttr(n.Key))
		buf.WriteString(`"`)
	}

	if n.IsEmpty() {
		buf.WriteString(" />\r\n")
		return
	}
	buf.WriteString(">\r\n")

	if n.Attributes != nil {
		for _, a := range n.Attributes.List() {
			writeAttribute(buf, a, indent+1, resourceVersion, numericTypes, bswap)
		}
	}

	if len(n.Children) > 0 {
		buf.WriteString(tabs(indent + 1))
		buf.WriteString("<children>\r\n")
		for _, c := range n.Children {
			writeNode(buf, c, indent+2, resourceVersion, numericTypes, bswap)
		}
		buf.WriteString(tabs(indent + 1))
		buf.WriteString("</children>\r\n")
	}

	buf.WriteString(tabs(indent))
	buf.WriteString("</node>\r\n")
}

func writeAttribute(buf *bytes.Buffer, a tree.Attribute, indent int, resourceVersion uint32, numericTypes, bswap bool) {
	typeStr := a.Type.Name()
	if numericTypes {
		typeStr = strconv.Itoa(int(a.Type))
	}
	base := tabs(indent) + `<attribute id="` + escapeAttr(a.Name) + `" type="` + escapeAttr(typeStr) + `"`

	switch a.Type {
	case tree.TypeTranslatedString:
		ts := a.Value.Translated
		if ts == nil {
			ts = &tree.TranslatedString{}
		}
		if resourceVersion >= 33 {
			buf.WriteString(base + ` value="` + escapeAttr(ts.Value) + `" handle="` + escapeAttr(ts.Handle) + `" />` + "\r\n")
		} else {
			buf.WriteString(base + ` handle="` + escapeAttr(ts.Handle) + `" value="` + escapeAttr(ts.Value) + `" />` + "\r\n")
		}

	case tree.TypeTranslatedFSString:
		fs := a.Value.TranslatedFS
		if fs == nil {
			fs = &tree.TranslatedFSString{}
		}
		writeFSAttribute(buf, base, *fs, indent, resourceVersion)

	default:
		val := formatValue(a.Type, a.Value, bswap)
		buf.WriteString(base + ` value="` + escapeAttr(val) + `" />` + "\r\n")
	}
}

func writeFSAttribute(buf *bytes.Buffer, base string, fs tree.TranslatedFSString, indent int, resourceVersion uint32) {
	var head string
	if resourceVersion >= 33 {
		head = base + ` value="` + escapeAttr(fs.Value) + `" handle="` + escapeAttr(fs.Handle) + `"`
		if len(fs.Arguments) > 0 {
			head += ` arguments="` + strconv.Itoa(len(fs.Arguments)) + `"`
		}
	} else {
		head = base + ` handle="` + escapeAttr(fs.Handle) + `" value="` + escapeAttr(fs.Value) + `"`
	}

	if len(fs.Arguments) == 0 {
		buf.WriteString(head + " />\r\n")
		return
	}

	buf.WriteString(head + ">\r\n")
	buf.WriteString(tabs(indent + 1))
	buf.WriteString("<arguments>\r\n")
	for _, arg := range fs.Arguments {
		writeArgument(buf, arg, indent+2, resourceVersion)
	}
	buf.WriteString(tabs(indent + 1))
	buf.WriteString("</arguments>\r\n")
	buf.WriteString(tabs(indent))
	buf.WriteString("</attribute>\r\n")
}

func writeArgument(buf *bytes.Buffer, arg tree.TranslatedFSArgument, indent int, resourceVersion uint32) {
	open := tabs(indent) + `<argument key="` + escapeAttr(arg.Key) + `" value="` + escapeAttr(arg.Value) + `"`
	if arg.String == nil {
		buf.WriteString(open + " />\r\n")
		return
	}
	buf.WriteString(open + ">\r\n")
	writeNestedFSString(buf, *arg.String, indent+1, resourceVersion)
	buf.WriteString(tabs(indent))
	buf.WriteString("</argument>\r\n")
}

func writeNestedFSString(buf *bytes.Buffer, fs tree.TranslatedFSString, indent int, resourceVersion uint32) {
	head := tabs(indent) + `<string value="` + escapeAttr(fs.Value) + `" handle="` + escapeAttr(fs.Handle) + `"`
	if len(fs.Arguments) == 0 {
		buf.WriteString(head + " />\r\n")
		return
	}
	if resourceVersion >= 33 {
		head += ` arguments="` + strconv.Itoa(len(fs.Arguments)) + `"`
	}
	buf.WriteString(head + ">\r\n")
	buf.WriteString(tabs(indent + 1))
	buf.WriteString("<arguments>\r\n")
	for _, arg := range fs.Arguments {
		writeArgument(buf, arg, indent+2, resourceVersion)
	}
	buf.WriteString(tabs(indent + 1))
	buf.WriteString("</arguments>\r\n")
	buf.WriteString(tabs(indent))
	buf.WriteString("</string>\r\n")
}

// formatValue renders every non-TranslatedString(FS) attribute type's
// value text.
func formatValue(t tree.AttrType, v tree.Value, bswap bool) string {
	switch t {
	case tree.TypeNone:
		return ""
	case tree.TypeBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case tree.TypeByte:
		return strconv.FormatUint(uint64(v.Int)&0xFF, 10)
	case tree.TypeShort, tree.TypeInt, tree.TypeLong, tree.TypeInt8, tree.TypeInt64:
		return strconv.FormatInt(v.Int, 10)
	case tree.TypeUShort, tree.TypeUInt, tree.TypeULongLong:
		return strconv.FormatUint(uint64(v.Int), 10)
	case tree.TypeFloat:
		return FormatFloat32(float32(v.F64))
	case tree.TypeDouble:
		return FormatFloat64(v.F64)
	case tree.TypeIVec2, tree.TypeIVec3, tree.TypeIVec4:
		return v.Str
	case tree.TypeVec2, tree.TypeVec3, tree.TypeVec4, tree.TypeMat2, tree.TypeMat3, tree.TypeMat4:
		return formatFloatComponents(v.Str)
	case tree.TypeUUID:
		return formatUUID(v.Str, bswap)
	default:
		return v.Str
	}
}

// formatFloatComponents re-renders each whitespace-separated component of
// a vector/matrix value through FormatFloat32, so values built directly
// (not round-tripped through LSF) still get the reference tool's
// formatting.
func formatFloatComponents(s string) string {
	fields := strings.Fields(s)
	out := make([]string, len(fields))
	for i, f := range fields {
		fv, err := strconv.ParseFloat(f, 32)
		if err != nil {
			out[i] = f
			continue
		}
		out[i] = FormatFloat32(float32(fv))
	}
	return strings.Join(out, " ")
}

// formatUUID applies the writer's bswap_guids rule: when present (the
// common case, matching how the LSF reader already decoded the stored
// bytes into canonical form), the canonical string is emitted unchanged;
// when absent, the legacy display transform is applied.
func formatUUID(canonical string, bswap bool) string {
	if bswap {
		return canonical
	}
	id, err := uuid.Parse(canonical)
	if err != nil {
		return canonical
	}
	swapped := guidswap.Swap([16]byte(id))
	return uuid.UUID(swapped).String()
}

func escapeAttr(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
