package tree

// AttributeList is an insertion-ordered map of attribute name to
// Attribute: reinserting an existing name overwrites its value while
// keeping the name's original position, matching the reference tool's
// attribute ordering guarantee.
type AttributeList struct {
	order []string
	index map[string]int
	attrs []Attribute
}

// NewAttributeList creates an empty, ready-to-use attribute list.
func NewAttributeList() *AttributeList {
	return &AttributeList{index: make(map[string]int)}
}

// Set inserts or overwrites the attribute named name. A new name is
// appended at the end; an existing name keeps its original position.
func (a *AttributeList) Set(name string, typ AttrType, value Value) {
	if a.index == nil {
		a.index = make(map[string]int)
	}
	attr := Attribute{Name: name, Type: typ, Value: value}
	if i, ok := a.index[name]; ok {
		a.attrs[i] = attr
		return
	}
	a.index[name] = len(a.attrs)
	a.order = append(a.order, name)
	a.attrs = append(a.attrs, attr)
}

// SetAttribute appends a fully-formed Attribute (equivalent to
// Set(attr.Name, attr.Type, attr.Value)).
func (a *AttributeList) SetAttribute(attr Attribute) {
	a.Set(attr.Name, attr.Type, attr.Value)
}

// Get looks up an attribute by name.
func (a *AttributeList) Get(name string) (Attribute, bool) {
	i, ok := a.index[name]
	if !ok {
		return Attribute{}, false
	}
	return a.attrs[i], true
}

// Len returns the number of attributes.
func (a *AttributeList) Len() int {
	return len(a.attrs)
}

// List returns the attributes in insertion order. The returned slice is
// a copy; mutating it does not affect the list.
func (a *AttributeList) List() []Attribute {
	out := make([]Attribute, len(a.attrs))
	copy(out, a.attrs)
	return out
}

// Names returns the attribute names in insertion order.
func (a *AttributeList) Names() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Node is one element of the tree shared by the LSF and LSX codecs: a
// name, an insertion-ordered attribute map, an ordered list of children,
// and an optional free-form key string.
type Node struct {
	Name       string
	Key        string
	Attributes *AttributeList
	Children   []*Node
}

// NewNode creates an empty node ready for attributes and children to be
// added via the builder methods below.
func NewNode(name string) *Node {
	return &Node{Name: name, Attributes: NewAttributeList()}
}

// AddChild appends child to n's children and returns child, so calls can
// be chained: parent.AddChild(NewNode("foo")).SetAttribute(...).
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// SetAttribute sets (or overwrites) an attribute on n and returns n, so
// calls can be chained.
func (n *Node) SetAttribute(name string, typ AttrType, value Value) *Node {
	if n.Attributes == nil {
		n.Attributes = NewAttributeList()
	}
	n.Attributes.Set(name, typ, value)
	return n
}

// Attribute looks up an attribute on n by name.
func (n *Node) Attribute(name string) (Attribute, bool) {
	if n.Attributes == nil {
		return Attribute{}, false
	}
	return n.Attributes.Get(name)
}

// IsEmpty reports whether n has no attributes and no children, the
// condition under which the LSX writer self-closes the element.
func (n *Node) IsEmpty() bool {
	return (n.Attributes == nil || n.Attributes.Len() == 0) && len(n.Children) == 0
}

// Walk visits n and every descendant in depth-first preorder.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
