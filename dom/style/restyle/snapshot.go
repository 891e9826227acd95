package restyle

import (
	"strings"

	"golang.org/x/net/html"
)

// ElementState is a set of flags for dynamic element state, matched by
// pseudo-classes like :hover.
//
// Element state is mirrored into the DOM as attributes of namespace
// StateNamespace, e.g. an element in state Hover carries an attribute
// "restyle-hover". This way state takes part in selector matching and in
// snapshots exactly like ordinary attributes do.
type ElementState uint8

// Element state flags.
const (
	Hover ElementState = 1 << iota
	Focus
	Active
	Visited
	Target
)

// StateNamespace is the attribute namespace for element state attributes.
const StateNamespace = "restyle"

// StateAttrPrefix prefixes the keys of element state attributes.
const StateAttrPrefix = "restyle-"

var stateNames = []string{"hover", "focus", "active", "visited", "target"}

// StateFromPseudoClass returns the state flag for a pseudo-class name, without
// the colon. It returns 0 for pseudo-classes not denoting element state.
func StateFromPseudoClass(name string) ElementState {
	for i, s := range stateNames {
		if s == name {
			return 1 << i
		}
	}
	return 0
}

// PseudoClass returns the pseudo-class name of a single state flag.
func (s ElementState) PseudoClass() string {
	for i, name := range stateNames {
		if s == 1<<i {
			return name
		}
	}
	return ""
}

// AttrKey returns the key of the state attribute of a single state flag.
func (s ElementState) AttrKey() string {
	return StateAttrPrefix + s.PseudoClass()
}

// Contains is true if every flag of other is set in s.
func (s ElementState) Contains(other ElementState) bool {
	return s&other == other
}

func (s ElementState) String() string {
	var names []string
	for i, name := range stateNames {
		if s&(1<<i) != 0 {
			names = append(names, ":"+name)
		}
	}
	return "{" + strings.Join(names, " ") + "}"
}

// StateFromAttributes collects element state from a list of attributes.
func StateFromAttributes(attrs []html.Attribute) ElementState {
	var state ElementState
	for _, a := range attrs {
		if a.Namespace == StateNamespace && strings.HasPrefix(a.Key, StateAttrPrefix) {
			state |= StateFromPseudoClass(strings.TrimPrefix(a.Key, StateAttrPrefix))
		}
	}
	return state
}

// StateOf returns the element state of an element.
func StateOf(n *html.Node) ElementState {
	return StateFromAttributes(n.Attr)
}

// SetState replaces the state attributes of an element. Clients wanting
// incremental restyles have to snapshot the element beforehand.
func SetState(n *html.Node, state ElementState) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace != StateNamespace {
			attrs = append(attrs, a)
		}
	}
	for i := range stateNames {
		if flag := ElementState(1 << i); state.Contains(flag) {
			attrs = append(attrs, html.Attribute{Namespace: StateNamespace, Key: flag.AttrKey()})
		}
	}
	n.Attr = attrs
}

// Snapshot captures the attributes and the state of an element before it has
// been mutated. Comparing it with the current attributes and state tells which
// selectors may have changed their result for the element.
//
// HasAttrs and HasState tell which part of the snapshot has been captured.
type Snapshot struct {
	Attrs    []html.Attribute
	State    ElementState
	HasAttrs bool
	HasState bool
}

// NewSnapshot captures the current attributes and state of n.
func NewSnapshot(n *html.Node) *Snapshot {
	s := &Snapshot{}
	s.Capture(n)
	return s
}

// Capture (re-)fills a snapshot from an element.
func (s *Snapshot) Capture(n *html.Node) {
	s.Attrs = append(s.Attrs[:0], n.Attr...)
	s.State = StateOf(n)
	s.HasAttrs = true
	s.HasState = true
	tracer().Debugf("snapshot of <%s> with %d attributes", n.Data, len(s.Attrs))
}

// Reset clears a snapshot for re-use.
func (s *Snapshot) Reset() {
	s.Attrs = s.Attrs[:0]
	s.State = 0
	s.HasAttrs = false
	s.HasState = false
}

// Attr returns the value of a captured attribute.
func (s *Snapshot) Attr(key string) (string, bool) {
	for _, a := range s.Attrs {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// ID returns the captured id attribute.
func (s *Snapshot) ID() string {
	id, _ := s.Attr("id")
	return id
}

// Classes returns the captured class names.
func (s *Snapshot) Classes() []string {
	c, _ := s.Attr("class")
	return strings.Fields(c)
}
