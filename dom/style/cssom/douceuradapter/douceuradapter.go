/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet,
based on the douceur CSS parser.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/restyle/dom/style"
	"github.com/npillmayer/restyle/dom/style/cssom"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func tracer() tracing.Trace {
	return tracing.Select("restyle.cssom")
}

// CSSStyles is an adapter for interface cssom.StyleSheet.
// For an explanation of the motivation behind this design, please refer
// to documentation for interface cssom.StyleSheet.
type CSSStyles struct {
	css   css.Stylesheet
	rules []cssom.Rule
}

// Wrap a douceur.css.Stylesheet into CssStyles.
// The stylesheet is now managed by the wrapper.
//
// At-rules are not supported and will be dropped, with the exception of
// rules nested into @media, which are flattened into the sheet.
func Wrap(sheet *css.Stylesheet) *CSSStyles {
	w := &CSSStyles{css: *sheet}
	w.rules = flatten(sheet.Rules, nil)
	return w
}

func flatten(rules []*css.Rule, into []cssom.Rule) []cssom.Rule {
	for _, r := range rules {
		switch {
		case r.Kind == css.QualifiedRule:
			into = append(into, &Rule{r: r})
		case r.Name == "@media":
			into = flatten(r.Rules, into)
		default:
			tracer().Debugf("dropping at-rule %s", r.Name)
		}
	}
	return into
}

// Parse parses CSS text into a stylesheet.
func Parse(text string) (*CSSStyles, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing stylesheet: %w", err)
	}
	return Wrap(sheet), nil
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.rules) == 0
}

// AppendRules appends rules from another stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	if othercss, ok := other.(*CSSStyles); ok {
		sheet.css.Rules = append(sheet.css.Rules, othercss.css.Rules...)
	}
	sheet.rules = append(sheet.rules, other.Rules()...)
}

// Rules returns all the rules of a stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	return sheet.rules
}

var _ cssom.StyleSheet = &CSSStyles{}

// Rule is an adapter for interface cssom.Rule.
type Rule struct {
	r *css.Rule
}

// Selector returns the prelude / selectors of the rule.
func (r *Rule) Selector() string {
	return r.r.Prelude
}

// Properties returns the property keys of a rule,
// e.g. "margin-top"
func (r *Rule) Properties() []string {
	decl := r.r.Declarations
	props := make([]string, 0, len(decl))
	for _, d := range decl {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property values for given key with this rule, e.g. "15px".
// If a property is declared more than once, the last declaration wins.
func (r *Rule) Value(key string) style.Property {
	if d := r.lookup(key); d != nil {
		return style.Property(d.Value)
	}
	return ""
}

// IsImportant returns true if a style key is marked as important ("!").
func (r *Rule) IsImportant(key string) bool {
	if d := r.lookup(key); d != nil {
		return d.Important
	}
	return false
}

func (r *Rule) lookup(key string) *css.Declaration {
	decl := r.r.Declarations
	for i := len(decl) - 1; i >= 0; i-- {
		if decl[i].Property == key {
			return decl[i]
		}
	}
	return nil
}

func (r *Rule) String() string {
	return r.r.String()
}

var _ cssom.Rule = &Rule{}

// ParseStyleAttribute parses the content of an HTML style attribute, e.g.
//
//     <p style="color: red; margin: 3px">
//
// into a rule without a selector.
func ParseStyleAttribute(text string) (*Rule, error) {
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, fmt.Errorf("parsing style attribute: %w", err)
	}
	r := css.NewRule(css.QualifiedRule)
	r.Declarations = decls
	return &Rule{r: r}, nil
}

// StyleAttribute returns the style attribute of an HTML element, parsed
// into a rule. It returns nil if the element has no (valid) style attribute.
func StyleAttribute(n *html.Node) *Rule {
	for _, a := range n.Attr {
		if a.Key != "style" || strings.TrimSpace(a.Val) == "" {
			continue
		}
		r, err := ParseStyleAttribute(a.Val)
		if err != nil {
			tracer().Infof("ignoring style attribute of <%s>: %v", n.Data, err)
			return nil
		}
		return r
	}
	return nil
}

// ExtractStyleElements visits <head> and <body> elements in an HTML parse
// tree and searches for embedded <style>s. It returns the content of
// style-elements as style sheets.
func ExtractStyleElements(htmldoc *html.Node) []*CSSStyles {
	head := findElement(atom.Head, htmldoc)
	body := findElement(atom.Body, htmldoc)
	css := extractStyles(head)
	css = append(css, extractStyles(body)...)
	return css
}

func extractStyles(h *html.Node) []*CSSStyles {
	if h == nil {
		return nil
	}
	var css []*CSSStyles
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom == atom.Style && ch.FirstChild != nil {
			c, err := Parse(ch.FirstChild.Data)
			if err != nil {
				tracer().Errorf("<style> element: %v", err)
				continue
			}
			css = append(css, c)
		}
	}
	return css
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(a, ch); r != nil {
			return r
		}
	}
	return nil
}
