package styledata

import (
	"context"
	"math/rand"
	"testing"

	"github.com/npillmayer/restyle/dom/style"
	"github.com/npillmayer/restyle/dom/style/restyle"
	"github.com/npillmayer/restyle/dom/style/ruletree"
	"github.com/npillmayer/restyle/dom/style/selectors"
	"github.com/npillmayer/restyle/dom/threadstate"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var rules = ruletree.NewTree()

func values(display string) *style.ComputedValues {
	pmap := style.InitializeDefaultPropertyValues(nil)
	pmap.Add("display", style.Property(display))
	return style.NewComputedValues(pmap)
}

func completeStyle(display string) ComputedStyle {
	return NewComputedStyle(rules.Root(), values(display))
}

func layoutContext() context.Context {
	return threadstate.With(context.Background(), threadstate.Layout|threadstate.Worker)
}

func TestComputedStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	cs := NewPartialComputedStyle(rules.Root())
	if !cs.IsPartial() {
		t.Errorf("expected style without values to be partial")
	}
	assert.Panics(t, func() { cs.Values() })
	v := values("block")
	cs.SetValues(v)
	if cs.IsPartial() || cs.Values() != v {
		t.Errorf("expected style to be complete after setting values")
	}
	assert.Panics(t, func() { NewComputedStyle(rules.Root(), nil) })
	assert.Contains(t, cs.String(), "RuleNode[]")
}

func TestEagerPseudoStylesBasics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	var ps EagerPseudoStyles
	if !ps.IsEmpty() || ps.Has(selectors.Before) || ps.Keys() != nil {
		t.Fatalf("expected zero pseudo styles to be empty")
	}
	if ps.GetMut(selectors.After) != nil || ps.arr != nil {
		t.Errorf("expected lookup not to allocate")
	}
	after := completeStyle("inline")
	ps.Insert(selectors.After, after)
	ps.Insert(selectors.Before, completeStyle("block"))
	got, ok := ps.Get(selectors.After)
	if !ok || got.Values() != after.Values() {
		t.Errorf("expected to get inserted ::after style")
	}
	assert.Equal(t, []selectors.PseudoElement{selectors.Before, selectors.After}, ps.Keys())
	assert.Panics(t, func() { ps.Insert(selectors.After, after) })
	assert.Panics(t, func() { ps.Has(selectors.Selection) })
	taken, ok := ps.Take(selectors.After)
	if !ok || taken.Values() != after.Values() || ps.Has(selectors.After) {
		t.Errorf("expected take to remove ::after style")
	}
	if ps.IsEmpty() {
		t.Errorf("expected ::before style to remain")
	}
	if _, ok := ps.Take(selectors.After); ok {
		t.Errorf("expected second take to find nothing")
	}
	ps.Take(selectors.Before)
	if !ps.IsEmpty() || ps.arr != nil {
		t.Errorf("expected slot array to be dropped with the last style")
	}
}

func TestEagerPseudoStylesRandomOps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	rnd := rand.New(rand.NewSource(4711))
	var ps EagerPseudoStyles
	present := make(map[selectors.PseudoElement]bool)
	for i := 0; i < 1000; i++ {
		pe := selectors.PseudoFromEagerIndex(rnd.Intn(selectors.EagerPseudoCount))
		if present[pe] {
			_, ok := ps.Take(pe)
			require.True(t, ok, "take of present %v", pe)
			delete(present, pe)
		} else {
			ps.Insert(pe, completeStyle("block"))
			present[pe] = true
		}
		if ps.IsEmpty() != (len(present) == 0) {
			t.Fatalf("step %d: expected IsEmpty=%v with %d styles", i, len(present) == 0, len(present))
		}
		if ps.IsEmpty() != (ps.arr == nil) {
			t.Fatalf("step %d: slot array allocated for empty pseudo styles", i)
		}
		if len(ps.Keys()) != len(present) {
			t.Fatalf("step %d: expected %d keys, have %v", i, len(present), ps.Keys())
		}
	}
}

func TestEagerPseudoStylesSetRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	var ps EagerPseudoStyles
	assert.Panics(t, func() { ps.SetRules(selectors.FirstLine, rules.Root()) })
	before := completeStyle("block")
	ps.Insert(selectors.FirstLine, before)
	if ps.SetRules(selectors.FirstLine, rules.Root()) {
		t.Errorf("expected equal rule node not to count as change")
	}
	other := rules.InsertOrdered([]ruletree.LevelledSource{
		{Source: &ruletree.Source{Rule: nil}, Level: ruletree.AuthorNormal}})
	if !ps.SetRules(selectors.FirstLine, other) {
		t.Errorf("expected new rule node to count as change")
	}
	cs := ps.GetMut(selectors.FirstLine)
	if cs.Rules != other || cs.Values() != before.Values() {
		t.Errorf("expected rules replaced and values untouched")
	}
}

func TestElementStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	es := NewElementStyles(completeStyle("none"))
	if !es.IsDisplayNone() {
		t.Errorf("expected display:none to be detected")
	}
	if !es.Pseudos.IsEmpty() {
		t.Errorf("expected new element styles to have no pseudo styles")
	}
	es = NewElementStyles(completeStyle("inline-block"))
	if es.IsDisplayNone() {
		t.Errorf("expected inline-block not to be display:none")
	}
}

func TestPropagate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	all := restyle.Self | restyle.Descendants | restyle.LaterSiblings |
		restyle.StyleAttribute | restyle.CSSAnimations
	for bits := restyle.Hint(0); bits <= all; bits++ {
		// animation-only traversal
		h := HintFrom(bits)
		child := h.Propagate(restyle.AnimationOnly)
		if !child.IsEmpty() || h.HasAnimationHint() {
			t.Errorf("%v: expected animation-only propagation to consume animation bit", bits)
		}
		if h.Bits() != bits&^restyle.CSSAnimations {
			t.Errorf("%v: expected other bits to survive, is %v", bits, h)
		}
		// normal traversal
		h = HintFrom(bits)
		if bits.Contains(restyle.CSSAnimations) {
			assert.Panics(t, func() { h.Propagate(0) }, "%v", bits)
			continue
		}
		child = h.Propagate(0)
		if !h.IsEmpty() {
			t.Errorf("%v: expected propagation to reset the hint, is %v", bits, h)
		}
		if bits.Contains(restyle.Descendants) {
			if child != SubtreeHint() {
				t.Errorf("%v: expected child hint to be self+descendants, is %v", bits, child)
			}
		} else if !child.IsEmpty() {
			t.Errorf("%v: expected empty child hint, is %v", bits, child)
		}
	}
}

func TestStoredHintPredicates(t *testing.T) {
	h := EmptyHint()
	h.Insert(HintFrom(restyle.StyleAttribute))
	if !h.HasSelfInvalidations() || h.HasSiblingInvalidations() {
		t.Errorf("expected style attribute hint to invalidate self only")
	}
	if HintFrom(restyle.Descendants).HasSelfInvalidations() {
		t.Errorf("expected bare descendants hint not to invalidate self")
	}
	if !SubtreeAndLaterSiblingsHint().HasSiblingInvalidations() {
		t.Errorf("expected later-siblings hint to invalidate siblings")
	}
}

func TestSnapshotOption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	so := EmptySnapshot()
	created := 0
	create := func() *restyle.Snapshot {
		created++
		return &restyle.Snapshot{}
	}
	assert.Panics(t, func() { so.Ensure(context.Background(), create) })
	ctx := layoutContext()
	s1 := so.Ensure(ctx, create)
	s2 := so.Ensure(ctx, create)
	if s1 != s2 || created != 1 {
		t.Errorf("expected ensure to create the snapshot once, created %d", created)
	}
	if !so.IsSome() || so.Get() != s1 {
		t.Errorf("expected snapshot to be observable")
	}
	so.Destroy()
	if so.IsSome() || so.Get() != nil {
		t.Errorf("expected destroyed snapshot to be absent")
	}
	if so.snapshot == nil {
		t.Errorf("expected backing snapshot to outlive destroy")
	}
	s3 := so.Ensure(ctx, create)
	if s3 == s1 || created != 2 || !so.IsSome() {
		t.Errorf("expected ensure to replace a destroyed snapshot")
	}
	so.Destroy()
	released := so.Release()
	if len(released) != 2 || released[0] != s1 || released[1] != s3 {
		t.Errorf("expected release to hand out the replaced and the current snapshot, is %v", released)
	}
	if so.Release() != nil {
		t.Errorf("expected backing snapshots to be handed out once only")
	}
	so.Ensure(ctx, create)
	if released := so.Release(); len(released) != 1 {
		t.Errorf("expected a live snapshot to be released alone, is %v", released)
	}
}

type countingDeriver struct {
	hint  restyle.Hint
	calls int
}

func (d *countingDeriver) ComputeRestyleHint(*html.Node, *restyle.Snapshot) restyle.Hint {
	d.calls++
	return d.hint
}

func TestComputeFinalHint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	elem := &html.Node{Type: html.ElementNode, Data: "p"}
	deriver := &countingDeriver{hint: restyle.Self | restyle.LaterSiblings}
	rd := &RestyleData{}
	rd.Hint.Insert(HintFrom(restyle.StyleAttribute))
	rd.Snapshot.Ensure(layoutContext(), func() *restyle.Snapshot { return restyle.NewSnapshot(elem) })
	if !rd.HasInvalidations() || !rd.HasSiblingInvalidations() {
		t.Errorf("expected unexpanded snapshot to count as invalidation")
	}
	if !rd.ComputeFinalHint(elem, deriver) {
		t.Errorf("expected derived later-siblings bit to be reported")
	}
	want := restyle.Self | restyle.StyleAttribute
	if rd.Hint.Bits() != want {
		t.Errorf("expected stored hint %v, is %v", want, rd.Hint)
	}
	if rd.Snapshot.IsSome() {
		t.Errorf("expected snapshot to be absent after computing the final hint")
	}
	if rd.ComputeFinalHint(elem, deriver) {
		t.Errorf("expected later-siblings bit not to be reported again")
	}
	if deriver.calls != 1 || rd.Hint.Bits() != want {
		t.Errorf("expected second call to change nothing, derived %d times, hint is %v",
			deriver.calls, rd.Hint)
	}
	if rd.HasSiblingInvalidations() {
		t.Errorf("expected no sibling invalidations after final hint")
	}
}

func TestComputeFinalHintWithoutSnapshot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	rd := &RestyleData{Hint: SubtreeAndLaterSiblingsHint()}
	deriver := &countingDeriver{}
	if !rd.ComputeFinalHint(&html.Node{Type: html.ElementNode}, deriver) {
		t.Errorf("expected later siblings to be reported")
	}
	if rd.Hint != SubtreeHint() {
		t.Errorf("expected stored hint to be self+descendants, is %v", rd.Hint)
	}
	if deriver.calls != 0 {
		t.Errorf("expected no hint derivation without snapshot")
	}
}

func TestRestyleKindScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	d := NewElementData(nil)
	if d.HasStyles() || d.HasCurrentStyles() {
		t.Errorf("expected new element data to be unstyled")
	}
	if rk := d.RestyleKind(); rk.Kind != MatchAndCascade {
		t.Errorf("expected unstyled element to need MatchAndCascade, is %v", rk)
	}
	assert.Panics(t, func() { d.EnsureRestyle() })
	assert.Panics(t, func() { d.Styles() })
	d.SetStyles(NewElementStyles(completeStyle("block")))
	if !d.HasCurrentStyles() || d.State() != "clean" {
		t.Errorf("expected freshly styled element to be clean")
	}
	assert.Panics(t, func() { d.RestyleKind() })
	//
	d.EnsureRestyle().Hint.Insert(SubtreeHint())
	if d.HasCurrentStyles() {
		t.Errorf("expected element with subtree hint to be dirty")
	}
	if rk := d.RestyleKind(); rk.Kind != MatchAndCascade {
		t.Errorf("expected self hint to need MatchAndCascade, is %v", rk)
	}
	d.ClearRestyle()
	if !d.HasCurrentStyles() || d.HasRestyle() {
		t.Errorf("expected element to be clean after clearing restyle data")
	}
	//
	d.EnsureRestyle().Hint.Insert(HintFrom(restyle.StyleAttribute))
	rk := d.RestyleKind()
	if rk.Kind != CascadeWithReplacements || rk.Hint != restyle.StyleAttribute {
		t.Errorf("expected CascadeWithReplacements(style-attribute), is %v", rk)
	}
	//
	d.Restyle().Hint = EmptyHint()
	d.Restyle().Recascade = true
	if rk := d.RestyleKind(); rk.Kind != CascadeOnly {
		t.Errorf("expected recascade to need CascadeOnly, is %v", rk)
	}
	styles, rd := d.StylesAndRestyle()
	if styles != d.GetStyles() || rd != d.GetRestyle() {
		t.Errorf("expected styles and restyle data to be returned together")
	}
}

func TestRestyleKindMatchesWhenUnstyled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	d := NewElementData(NewElementStyles(completeStyle("block")))
	d.EnsureRestyle().Hint.Insert(HintFrom(restyle.StyleAttribute))
	d.ClearStyles()
	if d.HasRestyle() {
		t.Errorf("expected clearing styles to drop restyle data")
	}
	if rk := d.RestyleKind(); rk.Kind != MatchAndCascade {
		t.Errorf("expected unstyled element to need MatchAndCascade, is %v", rk)
	}
}

func TestSetStylesNeedsExpandedSnapshot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	elem := &html.Node{Type: html.ElementNode, Data: "div"}
	d := NewElementData(NewElementStyles(completeStyle("block")))
	rd := d.EnsureRestyle()
	snap := rd.Snapshot.Ensure(layoutContext(), func() *restyle.Snapshot { return restyle.NewSnapshot(elem) })
	assert.PanicsWithValue(t, "styledata: traversal should have expanded snapshots", func() {
		d.SetStyles(NewElementStyles(completeStyle("inline")))
	})
	rd.ComputeFinalHint(elem, &countingDeriver{hint: restyle.Self})
	d.SetStyles(NewElementStyles(completeStyle("inline")))
	if d.Styles().IsDisplayNone() {
		t.Errorf("expected new styles to be set")
	}
	if released := d.ClearRestyle(); len(released) != 1 || released[0] != snap {
		t.Errorf("expected clearing restyle data to hand out the snapshot")
	}
}

func TestRestyleKindPanicsWithoutReason(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.data")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	d := NewElementData(NewElementStyles(completeStyle("block")))
	d.EnsureRestyle()
	// an empty hint without recascade leaves the element clean
	assert.Panics(t, func() { d.RestyleKind() })
	assert.Equal(t, "ElementData{clean, RestyleData{hint: {}, recascade: false, damage: {}, snapshot: false}}",
		d.String())
}
