package lsf

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/Smotherer007/pLarianSaveTools/internal/lserr"
	"github.com/Smotherer007/pLarianSaveTools/internal/tree"
)

// maxRecursionDepth bounds node/attribute chain walks so a malformed
// input with cyclic indices cannot loop forever.
const maxRecursionDepth = 1 << 20

// Result is the decoded form of an LSF document: its tree plus the engine
// version recorded in the header.
type Result struct {
	Root        *tree.Node
	Version     tree.Version
	Diagnostics []string
}

// Read decodes a full LSF document from data.
func Read(data []byte) (*Result, error) {
	hdr, err := readHeader(data)
	if err != nil {
		return nil, err
	}

	meta, metaLen, err := readMetadata(data[hdr.Length:], hdr.Version)
	if err != nil {
		return nil, err
	}

	payload := data[hdr.Length+metaLen:]
	blocks, err := readBlocks(payload, meta, hdr.Version)
	if err != nil {
		return nil, err
	}

	strings, err := parseStringTable(blocks.Strings)
	if err != nil {
		return nil, err
	}

	if meta.MetadataFormat != 0 && meta.MetadataFormat != 1 {
		return nil, lserr.New(lserr.KindFormat, "unsupported LSF metadataFormat")
	}
	v3 := meta.MetadataFormat == 1
	nodes, err := parseNodeTable(blocks.Nodes, v3)
	if err != nil {
		return nil, err
	}
	attrs, err := parseAttributeTable(blocks.Attributes, v3)
	if err != nil {
		return nil, err
	}

	treeNodes := make([]*tree.Node, len(nodes))
	for i, ne := range nodes {
		name, err := strings.resolve(ne.NameRef)
		if err != nil {
			return nil, lserr.Wrap(lserr.KindCorruptBlock, "resolving node name", err)
		}
		n := tree.NewNode(name)

		attrIdxs := attributesForNode(attrs, ne.FirstAttributeIndex, i, v3)
		for _, ai := range attrIdxs {
			ae := attrs[ai]
			attrName, err := strings.resolve(ae.NameRef)
			if err != nil {
				return nil, lserr.Wrap(lserr.KindCorruptBlock, "resolving attribute name", err)
			}
			t := tree.AttrType(ae.Type)
			if int(ae.ValueOffset) > len(blocks.Values) {
				return nil, lserr.New(lserr.KindCorruptPayload, "attribute value offset exceeds value heap")
			}
			avail := blocks.Values[ae.ValueOffset:]
			if int(ae.Length) > len(avail) {
				// Declared length overruns the value heap: render the
				// remaining bytes as hex instead of failing the read.
				n.SetAttribute(attrName, t, tree.Value{Str: hex.EncodeToString(avail)})
				blocks.Diagnostics = append(blocks.Diagnostics,
					"attribute "+attrName+" length exceeds value block, rendered as raw hex")
				continue
			}
			val, _, err := decodeValue(t, avail, int(ae.Length), hdr.Version)
			if err != nil {
				return nil, lserr.Wrap(lserr.KindCorruptPayload, "decoding attribute value", err)
			}
			n.SetAttribute(attrName, t, val)
		}
		treeNodes[i] = n
	}

	if err := assignKeys(treeNodes, nodes, blocks.Keys, strings); err != nil {
		return nil, err
	}

	var roots []*tree.Node
	childrenOf := make(map[int32][]int)
	for i, ne := range nodes {
		if ne.ParentIndex < 0 {
			roots = append(roots, treeNodes[i])
			continue
		}
		childrenOf[ne.ParentIndex] = append(childrenOf[ne.ParentIndex], i)
	}
	for i, n := range treeNodes {
		for _, ci := range childrenOf[int32(i)] {
			n.Children = append(n.Children, treeNodes[ci])
		}
	}

	var root *tree.Node
	switch len(roots) {
	case 0:
		return nil, lserr.New(lserr.KindFormat, "LSF document has no root node")
	case 1:
		root = roots[0]
	default:
		root = tree.NewNode("save")
		root.Children = roots
	}

	return &Result{Root: root, Version: hdr.Engine, Diagnostics: blocks.Diagnostics}, nil
}

// attributesForNode resolves the attribute indices belonging to node i.
// V3 tables chain explicitly via NextAttributeIndex; V2 tables are
// contiguous runs in node order, so attributes end when NodeIndex changes.
func attributesForNode(attrs []attrEntry, first int32, nodeIndex int, v3 bool) []int {
	if first < 0 || int(first) >= len(attrs) {
		return nil
	}
	var out []int
	if v3 {
		seen := make(map[int32]bool)
		idx := first
		for idx != -1 {
			if idx < 0 || int(idx) >= len(attrs) || seen[idx] || len(out) > maxRecursionDepth {
				break
			}
			seen[idx] = true
			out = append(out, int(idx))
			idx = attrs[idx].NextAttributeIndex
		}
		return out
	}

	idx := int(first)
	for idx < len(attrs) && int(attrs[idx].NodeIndex) == nodeIndex {
		out = append(out, idx)
		idx++
	}
	return out
}

// assignKeys fills in Node.Key from the keys block when present. The keys
// block's precise layout is not specified beyond its size fields; this
// models it as one optional string-table reference per node, matching the
// node table's row count and order (see DESIGN.md).
func assignKeys(treeNodes []*tree.Node, nodes []nodeEntry, keysBlock []byte, strings *stringTable) error {
	if len(keysBlock) == 0 {
		return nil
	}
	if len(keysBlock)%4 != 0 || len(keysBlock)/4 != len(nodes) {
		return nil
	}
	for i := range treeNodes {
		ref := binary.LittleEndian.Uint32(keysBlock[i*4 : i*4+4])
		if ref == 0xFFFFFFFF {
			continue
		}
		key, err := strings.resolve(ref)
		if err != nil {
			continue
		}
		treeNodes[i].Key = key
	}
	return nil
}
