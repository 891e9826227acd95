package traversal

import (
	"github.com/npillmayer/restyle/dom/style/selectors"
	"github.com/npillmayer/restyle/dom/styledata"
	"github.com/npillmayer/restyle/dom/styledtree"
)

// ResolvePseudo returns the style of a pseudo-element of a styled element.
// Eager pseudo-elements have been styled by the traversal. Lazy ones are
// matched and cascaded on first request and kept in the element's pseudo
// cache until the element is restyled.
//
// It returns nil for unstyled elements and for pseudo-elements no rule
// applies to. It must not be called while a traversal runs.
func (t *Traversal) ResolvePseudo(sn *styledtree.StyNode, pe selectors.PseudoElement) *styledata.ComputedStyle {
	data, release := sn.Data().BorrowMut()
	defer release()
	if data == nil || !data.HasStyles() {
		return nil
	}
	styles := data.Styles()
	if pe == selectors.NoPseudoElement {
		cs := styles.Primary
		return &cs
	}
	if pe.IsEager() {
		if cs, ok := styles.Pseudos.Get(pe); ok {
			return &cs
		}
		return nil
	}
	if cs := styles.CachedPseudos.Get(pe); cs != nil {
		return cs
	}
	h := sn.HTMLNode()
	rules := t.Stylist.MatchRules(h, pe)
	if rules.IsRoot() {
		return nil
	}
	cs := styledata.NewComputedStyle(rules, t.Stylist.Cascade(h, pe, rules, styles.Primary.Values()))
	styles.CachedPseudos.Insert(pe, cs)
	tracer().Debugf("%v::%v resolved lazily", sn, pe)
	if cached := styles.CachedPseudos.Get(pe); cached != nil {
		return cached
	}
	return &cs
}
