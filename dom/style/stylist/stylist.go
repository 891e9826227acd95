package stylist

import (
	"sort"
	"sync"

	"github.com/npillmayer/restyle/dom/style"
	"github.com/npillmayer/restyle/dom/style/cssom"
	"github.com/npillmayer/restyle/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/restyle/dom/style/ruletree"
	"github.com/npillmayer/restyle/dom/style/selectors"
	"golang.org/x/net/html"
)

// Stylist holds compiled stylesheets and the rule tree for their rules.
type Stylist struct {
	rules   *ruletree.Tree
	entries []*entry
	deps    map[string][]depEntry // selectors indexed by dependency key
	initial *style.PropertyMap    // initial values of all properties
	mx      sync.Mutex            // guards attrs
	attrs   map[string]*attrSources
}

// entry is a compiled selector of a rule.
type entry struct {
	sel       *selectors.Selector
	normal    *ruletree.Source // nil if the rule has no normal declarations
	important *ruletree.Source // nil if the rule has no important declarations
	level     ruletree.CascadeLevel
	order     int
}

type depEntry struct {
	e   *entry
	pos selectors.Position
}

// Sources for the declarations of a style attribute. Attributes with equal
// text share sources, and therefore rule nodes.
type attrSources struct {
	normal, important []*ruletree.Source
}

// New creates a stylist for author stylesheets.
func New(sheets ...cssom.StyleSheet) *Stylist {
	s := &Stylist{
		rules:   ruletree.NewTree(),
		deps:    make(map[string][]depEntry),
		initial: style.InitializeDefaultPropertyValues(nil),
		attrs:   make(map[string]*attrSources),
	}
	for _, sheet := range sheets {
		s.AppendSheet(sheet, ruletree.AuthorNormal)
	}
	return s
}

// AppendSheet compiles the rules of a stylesheet, which will apply at level
// UserAgent or AuthorNormal. Rules with selectors we cannot parse are skipped.
// Sheets have to be appended before the stylist is used.
func (s *Stylist) AppendSheet(sheet cssom.StyleSheet, level ruletree.CascadeLevel) {
	for _, rule := range sheet.Rules() {
		sels, err := selectors.ParseGroup(rule.Selector())
		if err != nil {
			tracer().Infof("skipping rule: %v", err)
			continue
		}
		normal, important := sourcesFor(rule)
		for _, sel := range sels {
			e := &entry{sel: sel, normal: normal, important: important, level: level,
				order: len(s.entries)}
			s.entries = append(s.entries, e)
			for _, dep := range sel.Dependencies() {
				s.deps[dep.Key] = append(s.deps[dep.Key], depEntry{e: e, pos: dep.Position})
			}
		}
	}
	tracer().Debugf("stylist holds %d selectors", len(s.entries))
}

func sourcesFor(rule cssom.Rule) (normal, important *ruletree.Source) {
	if len(cssom.Declarations(rule, false)) > 0 {
		normal = &ruletree.Source{Rule: rule}
	}
	if cssom.HasImportant(rule) {
		important = &ruletree.Source{Rule: rule, Important: true}
	}
	return
}

// RuleTree returns the rule tree of the stylist.
func (s *Stylist) RuleTree() *ruletree.Tree {
	return s.rules
}

// MatchRules matches all rules against an element, or one of its
// pseudo-elements, and returns the rule node for the matching rules.
func (s *Stylist) MatchRules(n *html.Node, pseudo selectors.PseudoElement) ruletree.StrongRuleNode {
	var matched []*entry
	for _, e := range s.entries {
		if e.sel.Pseudo() == pseudo && e.sel.Match(n) {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.level != b.level {
			return a.level < b.level
		}
		return a.sel.Specificity().Less(b.sel.Specificity())
	})
	var attr *attrSources
	if pseudo == selectors.NoPseudoElement {
		attr = s.styleAttribute(n)
	}
	var chain []ruletree.LevelledSource
	for _, e := range matched {
		if e.normal != nil {
			chain = append(chain, ruletree.LevelledSource{Source: e.normal, Level: e.level})
		}
	}
	if attr != nil {
		chain = appendSources(chain, attr.normal, ruletree.StyleAttributeNormal)
	}
	for _, e := range matched {
		if e.important != nil {
			chain = append(chain, ruletree.LevelledSource{Source: e.important, Level: e.level.Important()})
		}
	}
	if attr != nil {
		chain = appendSources(chain, attr.important, ruletree.StyleAttributeImportant)
	}
	// UA !important outranks everything but transitions
	ruletree.SortByLevel(chain)
	return s.rules.InsertOrdered(chain)
}

func appendSources(chain []ruletree.LevelledSource, sources []*ruletree.Source,
	level ruletree.CascadeLevel) []ruletree.LevelledSource {
	for _, src := range sources {
		chain = append(chain, ruletree.LevelledSource{Source: src, Level: level})
	}
	return chain
}

// ReplaceStyleAttribute replaces the style attribute rules of a rule node by
// the current style attribute of an element.
func (s *Stylist) ReplaceStyleAttribute(n *html.Node, rules ruletree.StrongRuleNode) ruletree.StrongRuleNode {
	var normal, important []*ruletree.Source
	if attr := s.styleAttribute(n); attr != nil {
		normal, important = attr.normal, attr.important
	}
	rules = s.rules.ReplaceRules(rules, ruletree.StyleAttributeNormal, normal)
	return s.rules.ReplaceRules(rules, ruletree.StyleAttributeImportant, important)
}

func (s *Stylist) styleAttribute(n *html.Node) *attrSources {
	text, ok := styleAttr(n)
	if !ok {
		return nil
	}
	s.mx.Lock()
	defer s.mx.Unlock()
	if attr, ok := s.attrs[text]; ok {
		return attr
	}
	attr := &attrSources{}
	if rule := douceuradapter.StyleAttribute(n); rule != nil {
		normal, important := sourcesFor(rule)
		if normal != nil {
			attr.normal = []*ruletree.Source{normal}
		}
		if important != nil {
			attr.important = []*ruletree.Source{important}
		}
	}
	s.attrs[text] = attr
	return attr
}

func styleAttr(n *html.Node) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "style" {
			return a.Val, true
		}
	}
	return "", false
}

// Cascade computes the values for an element, or one of its pseudo-elements,
// from its rule node and the values of its parent. parent is nil for the root
// element.
func (s *Stylist) Cascade(n *html.Node, pseudo selectors.PseudoElement, rules ruletree.StrongRuleNode,
	parent *style.ComputedValues) *style.ComputedValues {
	//
	pmap := s.initial.Clone()
	if pseudo == selectors.NoPseudoElement {
		pmap.Add("display", style.DisplayPropertyForHTMLNode(n))
	} else {
		pmap.Add("display", "inline")
	}
	if parent != nil {
		for _, kv := range parent.Inherited() {
			pmap.Add(kv.Key, kv.Value)
		}
	}
	for _, ls := range rules.Sources() {
		for _, kv := range cssom.Declarations(ls.Source.Rule, ls.Source.Important) {
			switch {
			case kv.Value.IsInherit():
				v := style.NullStyle
				if parent != nil {
					v = parent.Value(kv.Key)
				}
				pmap.Add(kv.Key, v)
			case kv.Value.IsInitial():
				v, ok := s.initial.Property(kv.Key)
				if !ok {
					v = style.GetUserAgentDefaultProperty(n, kv.Key)
				}
				pmap.Add(kv.Key, v)
			default:
				pmap.Add(kv.Key, kv.Value)
			}
		}
	}
	return style.NewComputedValues(pmap)
}
