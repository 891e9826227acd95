//go:build topdownframes

package styledata

import "github.com/npillmayer/restyle/dom/style/selectors"

// PseudoElementCache is not needed with top-down frame construction,
// which resolves lazy pseudo-elements itself.
type PseudoElementCache struct{}

// Get always returns nil.
func (c *PseudoElementCache) Get(pe selectors.PseudoElement) *ComputedStyle {
	return nil
}

// Insert does nothing.
func (c *PseudoElementCache) Insert(pe selectors.PseudoElement, cs ComputedStyle) {}

// Remove does nothing.
func (c *PseudoElementCache) Remove(pe selectors.PseudoElement) {}

// Len always returns 0.
func (c *PseudoElementCache) Len() int {
	return 0
}
