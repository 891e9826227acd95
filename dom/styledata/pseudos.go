package styledata

import (
	"github.com/npillmayer/restyle/dom/style/ruletree"
	"github.com/npillmayer/restyle/dom/style/selectors"
)

// EagerPseudoStyles holds the styles of the eager pseudo-elements of an
// element, one slot per eager pseudo-element.
//
// Most elements do not have any pseudo-elements, so the slot array is only
// allocated on first insert and dropped again when the last slot is taken.
// The zero value is empty.
type EagerPseudoStyles struct {
	arr *[selectors.EagerPseudoCount]*ComputedStyle
}

// IsEmpty is true if no pseudo-element has a style.
func (ps *EagerPseudoStyles) IsEmpty() bool {
	return ps.arr == nil
}

// Get returns the style of an eager pseudo-element, if present.
func (ps *EagerPseudoStyles) Get(pe selectors.PseudoElement) (ComputedStyle, bool) {
	if cs := ps.GetMut(pe); cs != nil {
		return *cs, true
	}
	return ComputedStyle{}, false
}

// GetMut returns the style of an eager pseudo-element for mutation in place,
// or nil.
func (ps *EagerPseudoStyles) GetMut(pe selectors.PseudoElement) *ComputedStyle {
	i := pe.EagerIndex()
	if ps.arr == nil {
		return nil
	}
	return ps.arr[i]
}

// Has is true if an eager pseudo-element has a style.
func (ps *EagerPseudoStyles) Has(pe selectors.PseudoElement) bool {
	return ps.GetMut(pe) != nil
}

// Insert sets the style of an eager pseudo-element. The slot must be empty.
func (ps *EagerPseudoStyles) Insert(pe selectors.PseudoElement, cs ComputedStyle) {
	i := pe.EagerIndex()
	if ps.arr == nil {
		ps.arr = new([selectors.EagerPseudoCount]*ComputedStyle)
	}
	assertThat(ps.arr[i] == nil, "pseudo-element %v already has a style", pe)
	ps.arr[i] = &cs
}

// Take removes the style of an eager pseudo-element and returns it.
func (ps *EagerPseudoStyles) Take(pe selectors.PseudoElement) (ComputedStyle, bool) {
	i := pe.EagerIndex()
	if ps.arr == nil || ps.arr[i] == nil {
		return ComputedStyle{}, false
	}
	cs := ps.arr[i]
	ps.arr[i] = nil
	empty := true
	for _, slot := range ps.arr {
		if slot != nil {
			empty = false
			break
		}
	}
	if empty {
		ps.arr = nil
	}
	return *cs, true
}

// Keys returns the pseudo-elements having a style, in slot order.
func (ps *EagerPseudoStyles) Keys() []selectors.PseudoElement {
	if ps.arr == nil {
		return nil
	}
	var keys []selectors.PseudoElement
	for i, slot := range ps.arr {
		if slot != nil {
			keys = append(keys, selectors.PseudoFromEagerIndex(i))
		}
	}
	return keys
}

// SetRules replaces the rule node of a pseudo-element's style, leaving its
// values alone. The pseudo-element must have a style. SetRules returns true
// if the rule node changed.
func (ps *EagerPseudoStyles) SetRules(pe selectors.PseudoElement, rules ruletree.StrongRuleNode) bool {
	cs := ps.GetMut(pe)
	assertThat(cs != nil, "cannot set rules of absent pseudo-element %v", pe)
	changed := cs.Rules != rules
	cs.Rules = rules
	return changed
}
