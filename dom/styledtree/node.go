package styledtree

import (
	"strings"
	"sync/atomic"

	"github.com/npillmayer/restyle/dom/style"
	"github.com/npillmayer/restyle/tree"
	"golang.org/x/net/html"
)

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	tree.Node[*StyNode] // we build on top of general purpose tree
	htmlNode            *html.Node
	data                ElementDataCell
	dirtyDescendants    atomic.Bool
}

// NewNodeForHTMLNode creates a new styled node linked to an HTML element.
func NewNodeForHTMLNode(h *html.Node) *StyNode {
	assertThat(h != nil && h.Type == html.ElementNode, "styled nodes are created for elements only")
	sn := &StyNode{htmlNode: h}
	sn.Payload = sn // Payload will always reference the node itself
	return sn
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyNode]) *StyNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.htmlNode
}

// Data returns the cell holding the element data.
func (sn *StyNode) Data() *ElementDataCell {
	return &sn.data
}

// ParentNode returns the styled parent, or nil for the root element.
func (sn *StyNode) ParentNode() *StyNode {
	return Node(sn.Parent())
}

// ChildNodes returns the styled children in document order.
func (sn *StyNode) ChildNodes() []*StyNode {
	children := sn.Children()
	r := make([]*StyNode, len(children))
	for i, ch := range children {
		r[i] = ch.Payload
	}
	return r
}

// HasDirtyDescendants is true if some descendant has pending invalidations.
func (sn *StyNode) HasDirtyDescendants() bool {
	return sn.dirtyDescendants.Load()
}

// SetDirtyDescendants flags the node as having descendants with pending
// invalidations.
func (sn *StyNode) SetDirtyDescendants() {
	sn.dirtyDescendants.Store(true)
}

// ClearDirtyDescendants clears the flag set by SetDirtyDescendants.
func (sn *StyNode) ClearDirtyDescendants() {
	sn.dirtyDescendants.Store(false)
}

// markAncestors sets the dirty-descendants flag up to the root, stopping
// at the first ancestor already flagged.
func (sn *StyNode) markAncestors() {
	for p := sn.ParentNode(); p != nil; p = p.ParentNode() {
		if p.dirtyDescendants.Swap(true) {
			return
		}
	}
}

// ComputedValues returns the primary computed values of the element, or nil
// if it has not been styled.
func (sn *StyNode) ComputedValues() *style.ComputedValues {
	data, release := sn.data.Borrow()
	defer release()
	if data == nil || !data.HasStyles() {
		return nil
	}
	return data.Styles().Primary.Values()
}

// ElementState returns a short description of the element data's state.
func (sn *StyNode) ElementState() string {
	data, release := sn.data.Borrow()
	defer release()
	if data == nil {
		return "unstyled"
	}
	return data.State()
}

// String prints the element in selector notation, e.g. "p#intro.note".
func (sn *StyNode) String() string {
	var b strings.Builder
	b.WriteString(sn.htmlNode.Data)
	for _, a := range sn.htmlNode.Attr {
		if a.Namespace != "" {
			continue
		}
		switch a.Key {
		case "id":
			b.WriteString("#" + a.Val)
		case "class":
			for _, c := range strings.Fields(a.Val) {
				b.WriteString("." + c)
			}
		}
	}
	return b.String()
}
