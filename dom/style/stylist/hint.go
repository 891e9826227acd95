package stylist

import (
	"strings"

	"github.com/npillmayer/restyle/dom/style/restyle"
	"github.com/npillmayer/restyle/dom/style/selectors"
	"golang.org/x/net/html"
)

// ComputeRestyleHint derives a restyle hint for an element from a snapshot,
// taken before the element has been mutated. It compares the snapshot with
// the current attributes of n and consults the selectors depending on what
// has changed.
func (s *Stylist) ComputeRestyleHint(n *html.Node, snap *restyle.Snapshot) restyle.Hint {
	if snap == nil || !snap.HasAttrs {
		return 0
	}
	changed := ChangedKeys(snap.Attrs, n.Attr)
	if len(changed) == 0 {
		return 0
	}
	var hint restyle.Hint
	for _, key := range changed {
		if key == "attr:style" {
			hint.Insert(restyle.StyleAttribute)
		}
		for _, d := range s.deps[key] {
			switch d.pos {
			case selectors.Subject:
				if !hint.Contains(restyle.Self) && d.e.sel.Match(n) != d.e.sel.MatchAttrs(n, snap.Attrs) {
					hint.Insert(restyle.Self)
				}
			case selectors.Ancestor:
				hint.Insert(restyle.Descendants)
			case selectors.Sibling:
				hint.Insert(restyle.LaterSiblings)
			}
		}
	}
	tracer().Debugf("restyle hint for <%s> is %v, changed %v", n.Data, hint, changed)
	return hint
}

// ChangedKeys lists the dependency keys affected by a change of attributes
// from old to new. Keys have the same form as selector dependencies.
func ChangedKeys(old, new []html.Attribute) []string {
	before := attrMap(old)
	after := attrMap(new)
	var keys []string
	note := func(name string, was, is string, wasSet, isSet bool) {
		if wasSet == isSet && was == is {
			return
		}
		if state, ok := stateName(name); ok {
			keys = append(keys, "state:"+state)
			return
		}
		keys = append(keys, "attr:"+name)
		switch name {
		case "id":
			keys = append(keys, "id")
		case "class":
			keys = append(keys, changedClasses(was, is)...)
		}
	}
	for name, was := range before {
		is, isSet := after[name]
		note(name, was, is, true, isSet)
	}
	for name, is := range after {
		if _, wasSet := before[name]; !wasSet {
			note(name, "", is, false, true)
		}
	}
	return keys
}

// Attributes are keyed by name, state attributes carrying their namespace.
func attrMap(attrs []html.Attribute) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		switch a.Namespace {
		case "":
			m[a.Key] = a.Val
		case restyle.StateNamespace:
			m[restyle.StateNamespace+":"+a.Key] = a.Val
		}
	}
	return m
}

func stateName(name string) (string, bool) {
	prefix := restyle.StateNamespace + ":" + restyle.StateAttrPrefix
	if !strings.HasPrefix(name, prefix) {
		return "", false
	}
	return strings.TrimPrefix(name, prefix), true
}

// changedClasses returns the class keys for the symmetric difference of two
// class attributes.
func changedClasses(was, is string) []string {
	before := make(map[string]bool)
	for _, c := range strings.Fields(was) {
		before[c] = true
	}
	after := make(map[string]bool)
	for _, c := range strings.Fields(is) {
		after[c] = true
	}
	var keys []string
	for c := range before {
		if !after[c] {
			keys = append(keys, "class:"+c)
		}
	}
	for c := range after {
		if !before[c] {
			keys = append(keys, "class:"+c)
		}
	}
	return keys
}
