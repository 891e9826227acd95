package restyle

import "strings"

// Hint is a set of flags telling the style traversal what needs to be
// recomputed for an element.
type Hint uint8

// Restyle hint flags.
const (
	Self           Hint = 1 << iota // the element needs selector matching
	Descendants                     // every descendant needs selector matching
	LaterSiblings                   // later siblings of the element need to be checked
	StyleAttribute                  // replace the rules of the style attribute
	CSSAnimations                   // replace animation rules; set in animation-only traversals
)

var hintNames = []string{"self", "descendants", "later-siblings", "style-attribute", "css-animations"}

// ForSelf is the set of hints which affect the element itself, either by
// re-matching or by replacing rules.
func ForSelf() Hint {
	return Self | StyleAttribute | CSSAnimations
}

// ForReplacements is the set of hints which may be satisfied by replacing
// rules instead of re-matching selectors.
func ForReplacements() Hint {
	return StyleAttribute | CSSAnimations
}

// Contains is true if every flag of other is set in h.
func (h Hint) Contains(other Hint) bool {
	return h&other == other
}

// Intersects is true if h and other share at least one flag.
func (h Hint) Intersects(other Hint) bool {
	return h&other != 0
}

// Insert unites other into h.
func (h *Hint) Insert(other Hint) {
	*h |= other
}

// Remove clears every flag of other from h.
func (h *Hint) Remove(other Hint) {
	*h &^= other
}

// IsEmpty is true if no flag is set.
func (h Hint) IsEmpty() bool {
	return h == 0
}

func (h Hint) String() string {
	if h == 0 {
		return "{}"
	}
	var names []string
	for i, name := range hintNames {
		if h&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return "{" + strings.Join(names, "|") + "}"
}

// TraversalFlags describe the kind of a style traversal.
type TraversalFlags uint8

const (
	// AnimationOnly traversals only update animation rules.
	AnimationOnly TraversalFlags = 1 << iota
)

// ForAnimationOnly is true for animation-only traversals.
func (f TraversalFlags) ForAnimationOnly() bool {
	return f&AnimationOnly != 0
}

func (f TraversalFlags) String() string {
	if f.ForAnimationOnly() {
		return "animation-only"
	}
	return "normal"
}
