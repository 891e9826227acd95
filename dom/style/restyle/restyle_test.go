package restyle

import (
	"testing"

	"github.com/npillmayer/restyle/dom/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func TestHintSet(t *testing.T) {
	h := Self
	h.Insert(Descendants)
	if !h.Contains(Self | Descendants) {
		t.Errorf("expected hint to contain self and descendants, is %s", h)
	}
	if h.Intersects(ForReplacements()) {
		t.Errorf("expected hint %s not to intersect replacements", h)
	}
	h.Remove(Self)
	if h != Descendants {
		t.Errorf("expected hint to be {descendants}, is %s", h)
	}
	assert.Equal(t, "{self|style-attribute|css-animations}", ForSelf().String())
	assert.Equal(t, "{}", Hint(0).String())
}

func TestTraversalFlags(t *testing.T) {
	var f TraversalFlags
	if f.ForAnimationOnly() {
		t.Errorf("expected zero flags to denote a normal traversal")
	}
	if !AnimationOnly.ForAnimationOnly() {
		t.Errorf("expected AnimationOnly to denote an animation-only traversal")
	}
}

func values(kvs ...string) *style.ComputedValues {
	pmap := style.InitializeDefaultPropertyValues(nil)
	for i := 0; i+1 < len(kvs); i += 2 {
		pmap.Add(kvs[i], style.Property(kvs[i+1]))
	}
	return style.NewComputedValues(pmap)
}

func TestComputeDamage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	//
	base := values()
	if d := ComputeDamage(nil, base); d != Rebuild() {
		t.Errorf("expected first style to require a rebuild, is %s", d)
	}
	if d := ComputeDamage(base, values()); !d.IsEmpty() {
		t.Errorf("expected equal values to cause no damage, is %s", d)
	}
	if d := ComputeDamage(base, values("color", "red")); d != Repaint {
		t.Errorf("expected color change to cause repaint only, is %s", d)
	}
	if d := ComputeDamage(base, values("display", "inline")); d != Rebuild() {
		t.Errorf("expected display change to require a rebuild, is %s", d)
	}
	if d := ComputeDamage(base, values("margin-top", "3px")); !d.Contains(Reflow) {
		t.Errorf("expected margin change to require reflow, is %s", d)
	}
	if d := ComputeDamage(base, values("border-top-color", "red")); d != Repaint {
		t.Errorf("expected border color change to cause repaint only, is %s", d)
	}
	if d := ComputeDamage(base, values("border-top-width", "thick")); !d.Contains(Reflow) {
		t.Errorf("expected border width change to require reflow, is %s", d)
	}
	d := ComputeDamage(base, values("position", "absolute"))
	if !d.Contains(Reposition|ReflowOutOfFlow) || d.Contains(ReconstructFlow) {
		t.Errorf("expected position change to cause repositioning, is %s", d)
	}
}

func TestSnapshot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	//
	n := &html.Node{Type: html.ElementNode, Data: "p", Attr: []html.Attribute{
		{Key: "id", Val: "x"}, {Key: "class", Val: "a  b"},
	}}
	SetState(n, Hover|Focus)
	s := NewSnapshot(n)
	n.Attr[0].Val = "y"
	SetState(n, Active)
	if s.ID() != "x" {
		t.Errorf("expected snapshot to keep id=x, is %q", s.ID())
	}
	assert.Equal(t, []string{"a", "b"}, s.Classes())
	if !s.State.Contains(Hover) || s.State.Contains(Active) {
		t.Errorf("expected state to be {:hover :focus}, is %s", s.State)
	}
	if StateOf(n) != Active || len(n.Attr) != 3 {
		t.Errorf("expected element to be in state {:active} only, is %s", StateOf(n))
	}
	s.Reset()
	if s.HasAttrs || len(s.Attrs) != 0 {
		t.Errorf("expected reset snapshot to be empty")
	}
	if StateFromPseudoClass("visited") != Visited || Visited.AttrKey() != "restyle-visited" {
		t.Errorf("expected :visited to map to Visited")
	}
	if StateFromPseudoClass("first-child") != 0 {
		t.Errorf("expected :first-child not to denote element state")
	}
}
