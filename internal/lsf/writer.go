package lsf

import (
	"encoding/binary"

	"github.com/Smotherer007/pLarianSaveTools/internal/tree"
)

// Write encodes root (and engine, the header's engine version tag) as a
// complete LSF document. lsfVersion selects the header/metadata layout
// (>=6 uses the five-pair metadata block and emits a keys block);
// metadataFormat selects the node/attribute table layout (1 = V3,
// 16-byte entries; anything else = V2, 12-byte entries). methodFlags is
// passed straight to the compression facade for every block.
func Write(root *tree.Node, engine tree.Version, lsfVersion uint32, metadataFormat uint32, methodFlags byte) ([]byte, error) {
	v3 := metadataFormat == 1

	nodeEntries, attrEntries, valueHeap, si, keysBlock, err := flattenTree(root, lsfVersion)
	if err != nil {
		return nil, err
	}

	stringsBytes := si.encode()
	nodesBytes := writeNodeTable(nodeEntries, v3)
	attrsBytes := writeAttributeTable(attrEntries, v3)

	compStrings, szStrings, err := compressBlock(stringsBytes, methodFlags)
	if err != nil {
		return nil, err
	}
	compNodes, szNodes, err := compressBlock(nodesBytes, methodFlags)
	if err != nil {
		return nil, err
	}
	compKeys, szKeys, err := compressBlock(keysBlock, methodFlags)
	if err != nil {
		return nil, err
	}
	compAttrs, szAttrs, err := compressBlock(attrsBytes, methodFlags)
	if err != nil {
		return nil, err
	}
	compValues, szValues, err := compressBlock(valueHeap, methodFlags)
	if err != nil {
		return nil, err
	}

	meta := metadata{
		Strings:          szStrings,
		Keys:             szKeys,
		Nodes:            szNodes,
		Attributes:       szAttrs,
		Values:           szValues,
		CompressionFlags: methodFlags,
		MetadataFormat:   metadataFormat,
	}

	var out []byte
	out = writeHeader(out, lsfVersion, engine)
	out = writeMetadata(out, meta, lsfVersion)
	out = append(out, compStrings...)
	out = append(out, compNodes...)
	if lsfVersion >= 6 {
		out = append(out, compKeys...)
	}
	out = append(out, compAttrs...)
	out = append(out, compValues...)
	return out, nil
}

// flattenTree walks root in depth-first preorder, interning strings in
// the reference tool's visitation order (node name, then each attribute
// name, then recurse) so bucket chain indices match byte-for-byte. A root
// named "save" with no attributes and at least one child is treated as the
// synthetic multi-region wrapper the reader produces and is not itself
// emitted as a node.
func flattenTree(root *tree.Node, lsfVersion uint32) (
	nodeEntries []nodeEntry, attrEntries []attrEntry, valueHeap []byte,
	si *stringInterner, keysBlock []byte, err error,
) {
	si = newStringInterner()
	hasKeys := false
	var keyRefs []uint32

	var visit func(n *tree.Node, parentIdx int32) (int32, error)
	visit = func(n *tree.Node, parentIdx int32) (int32, error) {
		myIdx := int32(len(nodeEntries))
		nameRef := si.intern(n.Name)
		nodeEntries = append(nodeEntries, nodeEntry{
			NameRef:             nameRef,
			ParentIndex:         parentIdx,
			NextSiblingIndex:    -1,
			FirstAttributeIndex: -1,
		})

		if n.Key != "" {
			hasKeys = true
			keyRefs = append(keyRefs, si.intern(n.Key))
		} else {
			keyRefs = append(keyRefs, 0xFFFFFFFF)
		}

		firstAttrIdx := int32(-1)
		prevAttrIdx := int32(-1)
		if n.Attributes != nil {
			for _, a := range n.Attributes.List() {
				attrNameRef := si.intern(a.Name)
				valBytes, e := encodeValue(a.Type, a.Value, lsfVersion)
				if e != nil {
					return 0, e
				}
				voff := uint32(len(valueHeap))
				valueHeap = append(valueHeap, valBytes...)

				idx := int32(len(attrEntries))
				attrEntries = append(attrEntries, attrEntry{
					NameRef:            attrNameRef,
					Type:               uint32(a.Type),
					Length:             uint32(len(valBytes)),
					NextAttributeIndex: -1,
					NodeIndex:          myIdx,
					ValueOffset:        voff,
				})
				if firstAttrIdx == -1 {
					firstAttrIdx = idx
				}
				if prevAttrIdx != -1 {
					attrEntries[prevAttrIdx].NextAttributeIndex = idx
				}
				prevAttrIdx = idx
			}
		}
		nodeEntries[myIdx].FirstAttributeIndex = firstAttrIdx

		prevChildIdx := int32(-1)
		for _, c := range n.Children {
			ci, e := visit(c, myIdx)
			if e != nil {
				return 0, e
			}
			if prevChildIdx != -1 {
				nodeEntries[prevChildIdx].NextSiblingIndex = ci
			}
			prevChildIdx = ci
		}
		return myIdx, nil
	}

	roots := []*tree.Node{root}
	if root.Name == "save" && (root.Attributes == nil || root.Attributes.Len() == 0) && len(root.Children) > 0 {
		roots = root.Children
	}

	prevRootIdx := int32(-1)
	for _, r := range roots {
		idx, e := visit(r, -1)
		if e != nil {
			return nil, nil, nil, nil, nil, e
		}
		if prevRootIdx != -1 {
			nodeEntries[prevRootIdx].NextSiblingIndex = idx
		}
		prevRootIdx = idx
	}

	if hasKeys {
		keysBlock = make([]byte, 0, len(keyRefs)*4)
		for _, r := range keyRefs {
			keysBlock = binary.LittleEndian.AppendUint32(keysBlock, r)
		}
	}

	return nodeEntries, attrEntries, valueHeap, si, keysBlock, nil
}
