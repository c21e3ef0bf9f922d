// Package tree defines the in-memory tree model shared by the LSF and LSX
// codecs: Node, AttributeList, Attribute, and Version.
package tree

import "fmt"

// Version identifies the engine build that produced a document, per the
// four-field layout carried by both LSF headers and LSX <version> tags.
type Version struct {
	Major    uint32
	Minor    uint32
	Revision uint32
	Build    uint32
}

// IsBG3 reports whether this version belongs to the Baldur's Gate 3
// lineage (major >= 4) as opposed to Divinity: Original Sin 2.
func (v Version) IsBG3() bool {
	return v.Major >= 4
}

// String renders the version as "major.minor.revision.build".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Revision, v.Build)
}

// DefaultVersion is the version LSX assumes when a document's <version>
// element is missing entirely.
var DefaultVersion = Version{Major: 4}
