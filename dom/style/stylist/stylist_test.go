package stylist

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/restyle/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/restyle/dom/style/restyle"
	"github.com/npillmayer/restyle/dom/style/ruletree"
	"github.com/npillmayer/restyle/dom/style/selectors"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var testCSS = `
p { color: blue; margin: 2px; }
.warn { color: red !important; }
#main p { color: green; }
div:hover p { font-weight: bold; }
p.a + p { color: yellow; }
p::before { content: "*"; }
`

var testHTML = `<html><body>
<div id="main"><p id="p1" class="a">One</p><p id="p2" style="color: black">Two</p></div>
<p id="p3" class="warn">Three</p>
</body></html>`

func setup(t *testing.T) (*Stylist, *html.Node) {
	sheet, err := douceuradapter.Parse(testCSS)
	require.NoError(t, err)
	doc, err := html.Parse(strings.NewReader(testHTML))
	require.NoError(t, err)
	return New(sheet), doc
}

func TestMatchRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	s, doc := setup(t)
	p1 := findByID(doc, "p1")
	rules := s.MatchRules(p1, selectors.NoPseudoElement)
	sources := rules.Sources()
	if len(sources) != 2 {
		t.Fatalf("expected 2 rules to match #p1, have %v", rules)
	}
	if sel := sources[1].Source.Rule.Selector(); sel != "#main p" {
		t.Errorf("expected more specific rule to come last, is %q", sel)
	}
	again := s.MatchRules(p1, selectors.NoPseudoElement)
	if again != rules {
		t.Errorf("expected matching twice to result in the same rule node")
	}
	p3 := findByID(doc, "p3")
	rules = s.MatchRules(p3, selectors.NoPseudoElement)
	if rules.Level() != ruletree.AuthorImportant {
		t.Errorf("expected !important rule to be the leaf, is %v", rules)
	}
	before := s.MatchRules(p3, selectors.Before)
	if before.IsRoot() {
		t.Errorf("expected p::before to match")
	}
}

func TestStyleAttribute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	s, doc := setup(t)
	p2 := findByID(doc, "p2")
	rules := s.MatchRules(p2, selectors.NoPseudoElement)
	if rules.Level() != ruletree.StyleAttributeNormal {
		t.Fatalf("expected style attribute to be the leaf, is %v", rules)
	}
	values := s.Cascade(p2, selectors.NoPseudoElement, rules, nil)
	if c := values.Value("color"); c != "black" {
		t.Errorf("expected style attribute to win, color is %q", c)
	}
	setAttr(p2, "style", "color: white !important")
	replaced := s.ReplaceStyleAttribute(p2, rules)
	if replaced.Level() != ruletree.StyleAttributeImportant {
		t.Errorf("expected important style attribute to be the leaf, is %v", replaced)
	}
	if replaced != s.MatchRules(p2, selectors.NoPseudoElement) {
		t.Errorf("expected replacing to agree with a full match")
	}
}

func TestCascade(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	s, doc := setup(t)
	main := findByID(doc, "main")
	p1 := findByID(doc, "p1")
	parentRules := s.RuleTree().InsertOrdered([]ruletree.LevelledSource{
		{Source: &ruletree.Source{Rule: mustRule(t, "color: purple; margin-top: 5px")}, Level: ruletree.AuthorNormal},
	})
	parent := s.Cascade(main, selectors.NoPseudoElement, parentRules, nil)
	if parent.Display() != "block" {
		t.Errorf("expected <div> to be display:block, is %q", parent.Display())
	}
	values := s.Cascade(p1, selectors.NoPseudoElement, s.MatchRules(p1, selectors.NoPseudoElement), parent)
	if c := values.Value("color"); c != "green" {
		t.Errorf("expected color green, is %q", c)
	}
	if m := values.Value("margin-top"); m != "2px" {
		t.Errorf("expected margin-top not to be inherited, is %q", m)
	}
	plain := s.Cascade(p1, selectors.NoPseudoElement, s.RuleTree().Root(), parent)
	if c := plain.Value("color"); c != "purple" {
		t.Errorf("expected color to be inherited, is %q", c)
	}
	pseudo := s.Cascade(p1, selectors.Before, s.MatchRules(p1, selectors.Before), values)
	if pseudo.Display() != "inline" {
		t.Errorf("expected ::before to be inline, is %q", pseudo.Display())
	}
}

func TestUserAgentImportantWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	ua, err := douceuradapter.Parse(`p { color: blue !important; }`)
	require.NoError(t, err)
	author, err := douceuradapter.Parse(`#p3 { color: red !important; }`)
	require.NoError(t, err)
	_, doc := setup(t)
	s := New()
	s.AppendSheet(ua, ruletree.UserAgent)
	s.AppendSheet(author, ruletree.AuthorNormal)
	p3 := findByID(doc, "p3")
	rules := s.MatchRules(p3, selectors.NoPseudoElement)
	if rules.Level() != ruletree.UserAgentImportant {
		t.Errorf("expected UA !important rule to be the leaf, is %v", rules)
	}
	if c := s.Cascade(p3, selectors.NoPseudoElement, rules, nil).Value("color"); c != "blue" {
		t.Errorf("expected UA !important to outrank author !important, color is %q", c)
	}
}

func TestChangedKeys(t *testing.T) {
	old := []html.Attribute{
		{Key: "id", Val: "a"},
		{Key: "class", Val: "x y"},
		{Key: "title", Val: "t"},
	}
	new := []html.Attribute{
		{Key: "id", Val: "a"},
		{Key: "class", Val: "y z"},
		{Namespace: restyle.StateNamespace, Key: restyle.Hover.AttrKey()},
	}
	keys := ChangedKeys(old, new)
	sort.Strings(keys)
	expected := []string{"attr:class", "attr:title", "class:x", "class:z", "state:hover"}
	if diff := cmp.Diff(expected, keys); diff != "" {
		t.Errorf("changed keys mismatch (-want +got):\n%s", diff)
	}
	if keys := ChangedKeys(old, old); len(keys) != 0 {
		t.Errorf("expected no changes, have %v", keys)
	}
}

func TestComputeRestyleHint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	s, doc := setup(t)
	p3 := findByID(doc, "p3")
	snap := restyle.NewSnapshot(p3)
	setAttr(p3, "class", "")
	if hint := s.ComputeRestyleHint(p3, snap); hint != restyle.Self {
		t.Errorf("expected removing .warn to restyle self, hint is %v", hint)
	}
	p1 := findByID(doc, "p1")
	snap = restyle.NewSnapshot(p1)
	setAttr(p1, "class", "b")
	if hint := s.ComputeRestyleHint(p1, snap); hint != restyle.LaterSiblings {
		t.Errorf("expected removing .a to restyle later siblings, hint is %v", hint)
	}
	main := findByID(doc, "main")
	snap = restyle.NewSnapshot(main)
	restyle.SetState(main, restyle.Hover)
	if hint := s.ComputeRestyleHint(main, snap); hint != restyle.Descendants {
		t.Errorf("expected hovering the <div> to restyle descendants, hint is %v", hint)
	}
	p2 := findByID(doc, "p2")
	snap = restyle.NewSnapshot(p2)
	setAttr(p2, "style", "color: gray")
	if hint := s.ComputeRestyleHint(p2, snap); hint != restyle.StyleAttribute {
		t.Errorf("expected a style attribute hint, is %v", hint)
	}
	snap = restyle.NewSnapshot(p2)
	setAttr(p2, "lang", "de")
	if hint := s.ComputeRestyleHint(p2, snap); !hint.IsEmpty() {
		t.Errorf("expected an irrelevant attribute not to cause a restyle, hint is %v", hint)
	}
	if hint := s.ComputeRestyleHint(p2, nil); !hint.IsEmpty() {
		t.Errorf("expected empty hint without snapshot, is %v", hint)
	}
}

// --- Helpers ---------------------------------------------------------------

func mustRule(t *testing.T, decls string) *douceuradapter.Rule {
	r, err := douceuradapter.ParseStyleAttribute(decls)
	require.NoError(t, err)
	return r
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
