//go:build !topdownframes

package styledata

import "github.com/npillmayer/restyle/dom/style/selectors"

// PseudoElementCache caches the styles of lazy pseudo-elements.
// The zero value is an empty cache.
type PseudoElementCache struct {
	m map[selectors.PseudoElement]*ComputedStyle
}

// Get returns the cached style of a pseudo-element, or nil.
func (c *PseudoElementCache) Get(pe selectors.PseudoElement) *ComputedStyle {
	return c.m[pe]
}

// Insert caches the style of a lazy pseudo-element.
func (c *PseudoElementCache) Insert(pe selectors.PseudoElement, cs ComputedStyle) {
	assertThat(!pe.IsEager(), "eager pseudo-element %v does not go into the cache", pe)
	if c.m == nil {
		c.m = make(map[selectors.PseudoElement]*ComputedStyle)
	}
	c.m[pe] = &cs
}

// Remove drops a pseudo-element from the cache.
func (c *PseudoElementCache) Remove(pe selectors.PseudoElement) {
	delete(c.m, pe)
}

// Len returns the number of cached styles.
func (c *PseudoElementCache) Len() int {
	return len(c.m)
}
