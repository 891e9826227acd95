package styledata

import (
	"github.com/npillmayer/restyle/dom/style/restyle"
)

// StoredRestyleHint is the restyle hint stored for an element between
// traversals. Hints only grow, by Insert, until they are consumed by
// Propagate or replaced by RestyleData.ComputeFinalHint.
type StoredRestyleHint struct {
	hint restyle.Hint
}

// EmptyHint is a hint requiring nothing.
func EmptyHint() StoredRestyleHint {
	return StoredRestyleHint{}
}

// SubtreeHint forces restyling an element and all its descendants.
func SubtreeHint() StoredRestyleHint {
	return StoredRestyleHint{hint: restyle.Self | restyle.Descendants}
}

// SubtreeAndLaterSiblingsHint forces restyling an element, its later
// siblings, and all of their descendants.
func SubtreeAndLaterSiblingsHint() StoredRestyleHint {
	return StoredRestyleHint{hint: restyle.Self | restyle.Descendants | restyle.LaterSiblings}
}

// HintFrom wraps a restyle hint.
func HintFrom(h restyle.Hint) StoredRestyleHint {
	return StoredRestyleHint{hint: h}
}

// Insert unites another hint into h.
func (h *StoredRestyleHint) Insert(other StoredRestyleHint) {
	h.hint |= other.hint
}

// IsEmpty is true if nothing needs to be restyled.
func (h StoredRestyleHint) IsEmpty() bool {
	return h.hint == 0
}

// HasSelfInvalidations is true if the style of the element itself may be
// invalid.
func (h StoredRestyleHint) HasSelfInvalidations() bool {
	return h.hint.Intersects(restyle.ForSelf())
}

// HasSiblingInvalidations is true if styles of later siblings may be invalid.
func (h StoredRestyleHint) HasSiblingInvalidations() bool {
	return h.hint.Intersects(restyle.LaterSiblings)
}

// HasAnimationHint is true if the hint asks for an animation-only restyle.
func (h StoredRestyleHint) HasAnimationHint() bool {
	return h.hint.Contains(restyle.CSSAnimations)
}

// Bits returns the underlying restyle hint.
func (h StoredRestyleHint) Bits() restyle.Hint {
	return h.hint
}

func (h StoredRestyleHint) String() string {
	return h.hint.String()
}

// Propagate consumes the hint for an element and returns the hint its
// children inherit.
//
// Animation-only traversals consume the animation hint and do not propagate
// anything. Normal traversals clear the hint; children get a subtree hint if
// the hint included Descendants, and nothing otherwise.
func (h *StoredRestyleHint) Propagate(flags restyle.TraversalFlags) StoredRestyleHint {
	if flags.ForAnimationOnly() {
		h.hint.Remove(restyle.CSSAnimations)
		return EmptyHint()
	}
	assertThat(!h.HasAnimationHint(), "animation hint %v in normal traversal", h.hint)
	old := h.hint
	h.hint = 0
	if old.Contains(restyle.Descendants) {
		return SubtreeHint()
	}
	return EmptyHint()
}
