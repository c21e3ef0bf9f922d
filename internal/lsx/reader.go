// Package lsx implements the LSX XML codec: a reader built on
// encoding/xml's tokenizer, and a hand-rolled writer tuned for
// byte-identity with the reference tool's output.
package lsx

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"

	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
	"github.com/Smotherer007/pLarianSaveTools/internal/tree"
)

// Result is the decoded form of an LSX document: its tree plus the
// version recorded in the <version> element.
type Result struct {
	Root    *tree.Node
	Version tree.Version
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// Read decodes a full LSX document from data.
func Read(data []byte) (*Result, error) {
	data = bytes.TrimPrefix(data, bom)
	dec := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, lserr.Wrap(lserr.KindFormat, "parsing LSX document", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != "save" {
				return nil, lserr.New(lserr.KindFormat, "LSX document missing root <save> element")
			}
			return parseSave(dec, se)
		}
	}
	return nil, lserr.New(lserr.KindFormat, "LSX document missing root <save> element")
}

func parseSave(dec *xml.Decoder, _ xml.StartElement) (*Result, error) {
	version := tree.DefaultVersion
	var regions []*tree.Node

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, lserr.Wrap(lserr.KindFormat, "parsing <save>", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "version":
				version = parseVersion(t)
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			case "region":
				region, err := parseRegion(dec, t)
				if err != nil {
					return nil, err
				}
				regions = append(regions, region)
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			goto done
		}
	}
done:
	if len(regions) == 0 {
		return nil, lserr.New(lserr.KindFormat, "LSX <save> has no <region> elements")
	}

	root := regions[0]
	if len(regions) > 1 {
		root = tree.NewNode("save")
		root.Children = regions
	}
	return &Result{Root: root, Version: version}, nil
}

func parseVersion(start xml.StartElement) tree.Version {
	v := tree.Version{}
	for _, a := range start.Attr {
		n, _ := strconv.Atoi(a.Value)
		switch a.Name.Local {
		case "major":
			v.Major = uint32(n)
		case "minor":
			v.Minor = uint32(n)
		case "revision":
			v.Revision = uint32(n)
		case "build":
			v.Build = uint32(n)
		}
	}
	return v
}

func parseRegion(dec *xml.Decoder, start xml.StartElement) (*tree.Node, error) {
	var id string
	for _, a := range start.Attr {
		if a.Name.Local == "id" {
			id = a.Value
		}
	}
	wrapper := tree.NewNode(id)

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, lserr.Wrap(lserr.KindFormat, "parsing <region>", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "node" {
				n, err := parseNode(dec, t)
				if err != nil {
					return nil, err
				}
				wrapper.Children = append(wrapper.Children, n)
			} else if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			goto done
		}
	}
done:
	if wrapper.Attributes.Len() == 0 && len(wrapper.Children) == 1 && wrapper.Children[0].Name == id {
		return wrapper.Children[0], nil
	}
	return wrapper, nil
}

func parseNode(dec *xml.Decoder, start xml.StartElement) (*tree.Node, error) {
	n := tree.NewNode("")
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "id":
			n.Name = a.Value
		case "key":
			n.Key = a.Value
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, lserr.Wrap(lserr.KindFormat, "parsing <node>", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "attribute":
				attr, err := parseAttribute(dec, t)
				if err != nil {
					return nil, err
				}
				n.Attributes.SetAttribute(*attr)
			case "children":
				kids, err := parseNodeChildren(dec, t)
				if err != nil {
					return nil, err
				}
				n.Children = append(n.Children, kids...)
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return n, nil
		}
	}
}

func parseNodeChildren(dec *xml.Decoder, _ xml.StartElement) ([]*tree.Node, error) {
	var out []*tree.Node
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, lserr.Wrap(lserr.KindFormat, "parsing <children>", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "node" {
				n, err := parseNode(dec, t)
				if err != nil {
					return nil, err
				}
				out = append(out, n)
			} else if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return out, nil
		}
	}
}

func parseAttribute(dec *xml.Decoder, start xml.StartElement) (*tree.Attribute, error) {
	var id, typeStr, valueStr, handleStr string
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "id":
			id = a.Value
		case "type":
			typeStr = a.Value
		case "value":
			valueStr = a.Value
		case "handle":
			handleStr = a.Value
		}
	}
	t := resolveType(typeStr)

	var arguments []tree.TranslatedFSArgument
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, lserr.Wrap(lserr.KindFormat, "parsing <attribute>", err)
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			if tt.Name.Local == "arguments" {
				arguments, err = parseArguments(dec, tt)
				if err != nil {
					return nil, err
				}
			} else if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return &tree.Attribute{Name: id, Type: t, Value: buildValue(t, valueStr, handleStr, arguments)}, nil
		}
	}
}

func parseArguments(dec *xml.Decoder, _ xml.StartElement) ([]tree.TranslatedFSArgument, error) {
	var out []tree.TranslatedFSArgument
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, lserr.Wrap(lserr.KindFormat, "parsing <arguments>", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "argument" {
				arg, err := parseArgument(dec, t)
				if err != nil {
					return nil, err
				}
				out = append(out, arg)
			} else if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return out, nil
		}
	}
}

func parseArgument(dec *xml.Decoder, start xml.StartElement) (tree.TranslatedFSArgument, error) {
	var key, value string
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "key":
			key = a.Value
		case "value":
			value = a.Value
		}
	}

	var nested *tree.TranslatedFSString
	for {
		tok, err := dec.Token()
		if err != nil {
			return tree.TranslatedFSArgument{}, lserr.Wrap(lserr.KindFormat, "parsing <argument>", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "string" {
				nested, err = parseNestedFSString(dec, t)
				if err != nil {
					return tree.TranslatedFSArgument{}, err
				}
			} else if err := dec.Skip(); err != nil {
				return tree.TranslatedFSArgument{}, err
			}
		case xml.EndElement:
			return tree.TranslatedFSArgument{Key: key, Value: value, String: nested}, nil
		}
	}
}

func parseNestedFSString(dec *xml.Decoder, start xml.StartElement) (*tree.TranslatedFSString, error) {
	var value, handle string
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "value":
			value = a.Value
		case "handle":
			handle = a.Value
		}
	}

	var args []tree.TranslatedFSArgument
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, lserr.Wrap(lserr.KindFormat, "parsing nested <string>", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "arguments" {
				args, err = parseArguments(dec, t)
				if err != nil {
					return nil, err
				}
			} else if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return &tree.TranslatedFSString{Value: value, Handle: handle, Arguments: args}, nil
		}
	}
}

func resolveType(s string) tree.AttrType {
	if n, err := strconv.Atoi(s); err == nil {
		return tree.AttrType(n)
	}
	t, _ := tree.TypeByName(s)
	return t
}

func buildValue(t tree.AttrType, valueStr, handleStr string, args []tree.TranslatedFSArgument) tree.Value {
	switch t {
	case tree.TypeNone:
		return tree.Value{}
	case tree.TypeBool:
		return tree.Value{Bool: valueStr == "True" || valueStr == "true" || valueStr == "1"}
	case tree.TypeByte, tree.TypeShort, tree.TypeUShort, tree.TypeInt, tree.TypeUInt,
		tree.TypeULongLong, tree.TypeLong, tree.TypeInt8, tree.TypeInt64:
		n, _ := strconv.ParseInt(valueStr, 10, 64)
		return tree.Value{Int: n}
	case tree.TypeFloat, tree.TypeDouble:
		f, _ := strconv.ParseFloat(valueStr, 64)
		return tree.Value{F64: f}
	case tree.TypeTranslatedString:
		return tree.Value{Translated: &tree.TranslatedString{Value: valueStr, Handle: handleStr}}
	case tree.TypeTranslatedFSString:
		return tree.Value{TranslatedFS: &tree.TranslatedFSString{Value: valueStr, Handle: handleStr, Arguments: args}}
	default:
		// Vectors, matrices, UUID, plain strings, and ScratchBuffer are all
		// carried as their literal attribute text.
		return tree.Value{Str: valueStr}
	}
}
