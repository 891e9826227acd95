package selectors

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/restyle/dom/style/restyle"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestEagerIndexBijection(t *testing.T) {
	for i := 0; i < EagerPseudoCount; i++ {
		pe := PseudoFromEagerIndex(i)
		if !pe.IsEager() {
			t.Errorf("expected %v to be eager", pe)
		}
		if pe.EagerIndex() != i {
			t.Errorf("expected index of %v to be %d, is %d", pe, i, pe.EagerIndex())
		}
	}
	if Selection.IsEager() || NoPseudoElement.IsEager() {
		t.Errorf("expected ::selection and no pseudo-element to be lazy")
	}
	assert.Panics(t, func() { Marker.EagerIndex() })
	assert.Panics(t, func() { PseudoFromEagerIndex(EagerPseudoCount) })
	assert.Len(t, EagerPseudoElements(), EagerPseudoCount)
}

func TestParsePseudoElement(t *testing.T) {
	pe, ok := ParsePseudoElement("first-letter")
	if !ok || pe != FirstLetter {
		t.Errorf("expected first-letter to be parsed, is %v", pe)
	}
	if _, ok := ParsePseudoElement("spelling-error"); ok {
		t.Errorf("expected ::spelling-error to be unsupported")
	}
	assert.Equal(t, "::before", Before.String())
}

func TestSelectorMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	doc, err := html.Parse(strings.NewReader(
		`<html><body><div class="x"><p id="a" class="c">Hello</p></div></body></html>`))
	require.NoError(t, err)
	p := findByID(doc, "a")
	require.NotNil(t, p)
	sels, err := ParseGroup("div.x > p, p::before")
	require.NoError(t, err)
	require.Len(t, sels, 2)
	if !sels[0].Match(p) {
		t.Errorf("expected %v to match <p>", sels[0])
	}
	if sels[1].Pseudo() != Before {
		t.Errorf("expected second selector to end in ::before, is %v", sels[1].Pseudo())
	}
	s, err := Parse("p.d")
	require.NoError(t, err)
	if s.Match(p) {
		t.Errorf("expected p.d not to match <p class=c>")
	}
	if !s.MatchAttrs(p, []html.Attribute{{Key: "class", Val: "d"}}) {
		t.Errorf("expected p.d to match shadow <p class=d>")
	}
	if p.Attr[1].Val != "c" {
		t.Errorf("expected MatchAttrs to leave element untouched")
	}
}

func TestStatePseudoClass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	s, err := Parse("a:hover")
	require.NoError(t, err)
	a := &html.Node{Type: html.ElementNode, Data: "a"}
	if s.Match(a) {
		t.Errorf("expected a:hover not to match idle link")
	}
	restyle.SetState(a, restyle.Hover)
	if !s.Match(a) {
		t.Errorf("expected a:hover to match hovered link")
	}
	if s.Specificity() != [3]int{0, 1, 1} {
		t.Errorf("expected specificity of a:hover to be 0,1,1, is %v", s.Specificity())
	}
	if _, err := Parse("a:nonsense"); err == nil {
		t.Errorf("expected unknown pseudo-class to be an error")
	}
}

func TestDependencies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	for _, test := range []struct {
		sel  string
		deps []Dependency
	}{
		{"p", nil},
		{"#main .box", []Dependency{{"id", Ancestor}, {"class:box", Subject}}},
		{"li.a + li:focus", []Dependency{{"class:a", Sibling}, {"state:focus", Subject}}},
		{"div[lang|=en] ~ p > span:not(.x)", []Dependency{
			{"attr:lang", Sibling}, {"class:x", Subject}}},
		{"input:checked::before", []Dependency{{"attr:checked", Subject}}},
		{".my-class[title=\"a.b c\"]", []Dependency{{"class:my-class", Subject}, {"attr:title", Subject}}},
	} {
		s, err := Parse(test.sel)
		require.NoError(t, err, test.sel)
		if diff := cmp.Diff(test.deps, s.Dependencies()); diff != "" {
			t.Errorf("dependencies of %q differ (-want +got):\n%s", test.sel, diff)
		}
	}
}

func findByID(n *html.Node, id string) *html.Node {
	for _, a := range n.Attr {
		if a.Key == "id" && a.Val == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if r := findByID(c, id); r != nil {
			return r
		}
	}
	return nil
}
