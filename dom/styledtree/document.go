package styledtree

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/npillmayer/restyle/dom/style/restyle"
	"github.com/npillmayer/restyle/dom/styledata"
	"github.com/npillmayer/restyle/dom/threadstate"
	"github.com/npillmayer/restyle/tree"
	"golang.org/x/net/html"
)

// ErrNoDocumentElement is returned for HTML trees without elements.
var ErrNoDocumentElement = errors.New("HTML tree has no document element")

// Document is a styled document tree, together with the bookkeeping for
// incremental restyles.
type Document struct {
	root    *StyNode
	mx      sync.RWMutex // guards nodes and pending
	nodes   map[*html.Node]*StyNode
	pending map[*StyNode]*restyle.Snapshot
	order   []*StyNode // pending nodes in order of mutation
	pool    *SnapshotPool
	anims   atomic.Bool // animation invalidations pending
}

// Build creates the styled tree for an HTML parse tree. h is either a
// document node or an element.
func Build(h *html.Node) (*Document, error) {
	elem := documentElement(h)
	if elem == nil {
		return nil, ErrNoDocumentElement
	}
	doc := &Document{
		nodes:   make(map[*html.Node]*StyNode),
		pending: make(map[*StyNode]*restyle.Snapshot),
		pool:    NewSnapshotPool(),
	}
	doc.root = doc.build(elem)
	tracer().Debugf("built styled tree with %d elements", len(doc.nodes))
	return doc, nil
}

func documentElement(h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.Type == html.ElementNode {
		return h
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// build creates styled nodes for an element and its descendant elements.
// New nodes are unstyled, so they are flagged as dirty.
func (doc *Document) build(h *html.Node) *StyNode {
	sn := NewNodeForHTMLNode(h)
	doc.nodes[h] = sn
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			sn.AddChild(&doc.build(c).Node)
		}
	}
	if sn.ChildCount() > 0 {
		sn.SetDirtyDescendants()
	}
	return sn
}

// Root returns the styled node of the document element.
func (doc *Document) Root() *StyNode {
	return doc.root
}

// Lookup returns the styled node for an HTML element, or nil.
func (doc *Document) Lookup(h *html.Node) *StyNode {
	doc.mx.RLock()
	defer doc.mx.RUnlock()
	return doc.nodes[h]
}

// Len returns the number of elements in the styled tree.
func (doc *Document) Len() int {
	doc.mx.RLock()
	defer doc.mx.RUnlock()
	return len(doc.nodes)
}

// Snapshots returns the snapshot pool of the document.
func (doc *Document) Snapshots() *SnapshotPool {
	return doc.pool
}

// --- Mutations -------------------------------------------------------------

// NoteAttributeChange announces a change of attributes or state of an
// element, performed by mutate. Styled elements are snapshotted before the
// first mutation after a traversal. The context has to carry the main role.
func (doc *Document) NoteAttributeChange(ctx context.Context, sn *StyNode, mutate func()) {
	assertThat(threadstate.FromContext(ctx).IsScript(), "DOM mutated outside of main role")
	if styled(sn) {
		doc.mx.Lock()
		if _, ok := doc.pending[sn]; !ok {
			snap := doc.pool.Take(ctx)
			snap.Capture(sn.htmlNode)
			doc.pending[sn] = snap
			doc.order = append(doc.order, sn)
		}
		doc.mx.Unlock()
	}
	mutate()
	sn.markAncestors()
}

// SetAttribute sets an attribute of an element.
func (doc *Document) SetAttribute(ctx context.Context, sn *StyNode, key, val string) {
	doc.NoteAttributeChange(ctx, sn, func() {
		h := sn.htmlNode
		for i, a := range h.Attr {
			if a.Namespace == "" && a.Key == key {
				h.Attr[i].Val = val
				return
			}
		}
		h.Attr = append(h.Attr, html.Attribute{Key: key, Val: val})
	})
}

// RemoveAttribute removes an attribute from an element.
func (doc *Document) RemoveAttribute(ctx context.Context, sn *StyNode, key string) {
	doc.NoteAttributeChange(ctx, sn, func() {
		h := sn.htmlNode
		for i, a := range h.Attr {
			if a.Namespace == "" && a.Key == key {
				h.Attr = append(h.Attr[:i], h.Attr[i+1:]...)
				return
			}
		}
	})
}

// SetState replaces the element state of an element.
func (doc *Document) SetState(ctx context.Context, sn *StyNode, state restyle.ElementState) {
	doc.NoteAttributeChange(ctx, sn, func() {
		restyle.SetState(sn.htmlNode, state)
	})
}

// NoteInsertion announces that an element has been inserted into the HTML
// tree. Its styled subtree is created unstyled, and its later siblings are
// invalidated, as they may be matched by sibling selectors.
func (doc *Document) NoteInsertion(ctx context.Context, h *html.Node) *StyNode {
	assertThat(threadstate.FromContext(ctx).IsScript(), "DOM mutated outside of main role")
	parent := doc.Lookup(h.Parent)
	assertThat(parent != nil, "inserted element has no styled parent")
	position := 0
	for c := h.Parent.FirstChild; c != nil && c != h; c = c.NextSibling {
		if c.Type == html.ElementNode {
			position++
		}
	}
	doc.mx.Lock()
	sn := doc.build(h)
	doc.mx.Unlock()
	parent.InsertChildAt(position, &sn.Node)
	parent.SetDirtyDescendants()
	parent.markAncestors()
	doc.invalidateLaterSiblings(sn)
	return sn
}

// NoteRemoval announces that an element is about to be removed from the HTML
// tree. Its styled subtree is dropped.
func (doc *Document) NoteRemoval(ctx context.Context, sn *StyNode) {
	assertThat(threadstate.FromContext(ctx).IsScript(), "DOM mutated outside of main role")
	assertThat(sn != doc.root, "cannot remove the document element")
	doc.invalidateLaterSiblings(sn)
	sn.markAncestors()
	sn.Isolate()
	doc.mx.Lock()
	defer doc.mx.Unlock()
	sn.Walk(func(n *tree.Node[*StyNode]) bool {
		drop := n.Payload
		delete(doc.nodes, drop.htmlNode)
		if snap, ok := doc.pending[drop]; ok {
			delete(doc.pending, drop)
			doc.pool.Defer(snap)
		}
		doc.pool.Defer(drop.data.Clear()...)
		return true
	})
}

func (doc *Document) invalidateLaterSiblings(sn *StyNode) {
	next := Node(sn.NextSibling())
	if next == nil {
		return
	}
	data, release := next.data.BorrowMut()
	defer release()
	if data != nil && data.HasStyles() {
		data.EnsureRestyle().Hint.Insert(styledata.SubtreeAndLaterSiblingsHint())
	}
}

// InvalidateAnimations records that the animation values of a styled
// element have changed. The next traversal will run an animation-only pass
// first.
func (doc *Document) InvalidateAnimations(ctx context.Context, sn *StyNode) {
	assertThat(threadstate.FromContext(ctx).IsScript(), "DOM mutated outside of main role")
	data, release := sn.data.BorrowMut()
	defer release()
	if data == nil || !data.HasStyles() {
		return
	}
	data.EnsureRestyle().Hint.Insert(styledata.HintFrom(restyle.CSSAnimations))
	doc.anims.Store(true)
	sn.markAncestors()
}

// TakeAnimationsPending reports and resets whether animation invalidations
// are pending.
func (doc *Document) TakeAnimationsPending() bool {
	return doc.anims.Swap(false)
}

// Pending returns the number of snapshots not yet expanded.
func (doc *Document) Pending() int {
	doc.mx.RLock()
	defer doc.mx.RUnlock()
	return len(doc.pending)
}

// ExpandSnapshots moves the pending snapshots into the element data, where
// the next traversal will compute restyle hints from them. It returns the
// number of snapshots moved. The context has to carry the layout role.
func (doc *Document) ExpandSnapshots(ctx context.Context) int {
	assertThat(threadstate.FromContext(ctx).IsLayout(), "snapshots expanded outside of layout role")
	doc.mx.Lock()
	defer doc.mx.Unlock()
	n := 0
	for _, sn := range doc.order {
		snap, ok := doc.pending[sn]
		if !ok {
			continue
		}
		delete(doc.pending, sn)
		data, release := sn.data.BorrowMut()
		if data == nil || !data.HasStyles() {
			release()
			doc.pool.Defer(snap)
			continue
		}
		rd := data.EnsureRestyle()
		if rd.Snapshot.Ensure(ctx, func() *restyle.Snapshot { return snap }) != snap {
			doc.pool.Defer(snap)
		} else {
			n++
		}
		release()
		sn.markAncestors()
	}
	doc.order = doc.order[:0]
	tracer().Debugf("expanded %d snapshots", n)
	return n
}

func styled(sn *StyNode) bool {
	data, release := sn.data.Borrow()
	defer release()
	return data != nil && data.HasStyles()
}
