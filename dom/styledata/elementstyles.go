package styledata

import (
	"github.com/npillmayer/restyle/dom/style/css"
)

// ElementStyles are the styles of an element and its pseudo-elements.
type ElementStyles struct {
	Primary       ComputedStyle      // the element's own style
	Pseudos       EagerPseudoStyles  // styles of eager pseudo-elements
	CachedPseudos PseudoElementCache // styles of lazy pseudo-elements, resolved on demand
}

// NewElementStyles creates element styles for a primary style, without any
// pseudo-element styles.
func NewElementStyles(primary ComputedStyle) *ElementStyles {
	return &ElementStyles{Primary: primary}
}

// IsDisplayNone is true if the element generates no box.
func (es *ElementStyles) IsDisplayNone() bool {
	return css.DisplayOf(es.Primary.Values()) == css.DisplayNone
}
