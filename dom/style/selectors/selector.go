package selectors

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/restyle/dom/style/restyle"
	"golang.org/x/net/html"
)

// Position tells where in a complex selector a compound selector occurs.
type Position uint8

// Positions of compound selectors relative to the subject of a selector.
const (
	Subject  Position = iota // the right-most compound, matched against the element
	Ancestor                 // left of a descendant or child combinator
	Sibling                  // left of a sibling combinator
)

func (p Position) String() string {
	switch p {
	case Subject:
		return "subject"
	case Ancestor:
		return "ancestor"
	}
	return "sibling"
}

// Dependency is something a selector's matching result depends on.
// Keys have one of the forms
//
//     id
//     class:<name>
//     attr:<name>
//     state:<pseudo-class>
type Dependency struct {
	Key      string
	Position Position
}

func (d Dependency) String() string {
	return d.Key + "@" + d.Position.String()
}

// Selector is a compiled (complex) CSS selector, possibly ending in a
// pseudo-element.
type Selector struct {
	sel    cascadia.Sel
	source string
	pseudo PseudoElement
	deps   []Dependency
}

// Parse compiles a single selector.
func Parse(text string) (*Selector, error) {
	sel, err := cascadia.ParseWithPseudoElement(rewriteStatePseudoClasses(text))
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", text, err)
	}
	return newSelector(sel, text)
}

// ParseGroup compiles a comma-separated group of selectors into a selector
// for each member of the group.
func ParseGroup(text string) ([]*Selector, error) {
	group, err := cascadia.ParseGroupWithPseudoElements(rewriteStatePseudoClasses(text))
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", text, err)
	}
	sels := make([]*Selector, 0, len(group))
	for _, sel := range group {
		s, err := newSelector(sel, text)
		if err != nil {
			tracer().Infof("%v", err)
			continue
		}
		sels = append(sels, s)
	}
	return sels, nil
}

func newSelector(sel cascadia.Sel, source string) (*Selector, error) {
	pseudo, ok := ParsePseudoElement(sel.PseudoElement())
	if !ok {
		return nil, fmt.Errorf("selector %q: unsupported pseudo-element ::%s", source, sel.PseudoElement())
	}
	s := &Selector{sel: sel, source: source, pseudo: pseudo}
	s.deps = dependencies(sel.String())
	return s, nil
}

func (s *Selector) String() string {
	return s.sel.String()
}

// Match is true if the selector matches an element.
func (s *Selector) Match(n *html.Node) bool {
	return s.sel.Match(n)
}

// MatchAttrs is true if the selector would match an element if it carried
// attrs instead of its current attributes. Relatives of the element are
// matched as they are.
func (s *Selector) MatchAttrs(n *html.Node, attrs []html.Attribute) bool {
	shadow := *n
	shadow.Attr = attrs
	return s.sel.Match(&shadow)
}

// Pseudo returns the pseudo-element the selector ends in, if any.
func (s *Selector) Pseudo() PseudoElement {
	return s.pseudo
}

// Specificity returns the specificity of the selector.
func (s *Selector) Specificity() cascadia.Specificity {
	return s.sel.Specificity()
}

// Dependencies returns what the matching result of the selector depends on.
func (s *Selector) Dependencies() []Dependency {
	return s.deps
}

// --- Dependency analysis ---------------------------------------------------

// cascadia does not support state pseudo-classes, so we rewrite them into
// selectors for state attributes.
func rewriteStatePseudoClasses(text string) string {
	if !strings.Contains(text, ":") {
		return text
	}
	var b strings.Builder
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(text) {
				b.WriteByte(c)
				i++
				c = text[i]
			} else if c == quote {
				quote = 0
			}
		case c == '\\' && i+1 < len(text):
			b.WriteByte(c)
			i++
			c = text[i]
		case c == '"' || c == '\'':
			quote = c
		case c == ':' && (i+1 >= len(text) || text[i+1] != ':') && (i == 0 || text[i-1] != ':'):
			name, end := readIdent(text, i+1)
			if end < len(text) && text[end] == '(' {
				break
			}
			if state := restyle.StateFromPseudoClass(strings.ToLower(name)); state != 0 {
				b.WriteString("[" + state.AttrKey() + "]")
				i = end - 1
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// dependencies analyses the canonical string form of a compiled selector.
func dependencies(canonical string) []Dependency {
	compounds, combinators := splitCompounds(canonical)
	var deps []Dependency
	seen := make(map[Dependency]bool)
	for i, compound := range compounds {
		pos := Subject
		if i < len(compounds)-1 {
			pos = Ancestor
			if c := combinators[i]; c == '+' || c == '~' {
				pos = Sibling
			}
		}
		for _, key := range compoundKeys(compound) {
			d := Dependency{Key: key, Position: pos}
			if !seen[d] {
				seen[d] = true
				deps = append(deps, d)
			}
		}
	}
	return deps
}

// splitCompounds splits a complex selector at its combinators. combinators[i]
// is the combinator between compounds[i] and compounds[i+1].
func splitCompounds(text string) (compounds []string, combinators []byte) {
	var quote byte
	depth := 0
	start := -1
	var comb byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		atTop := depth == 0
		switch c {
		case '\\':
			if start < 0 {
				start = i
			}
			i++
			continue
		case '"', '\'':
			quote = c
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
		if atTop && (c == ' ' || c == '>' || c == '+' || c == '~') {
			if start >= 0 {
				compounds = append(compounds, text[start:i])
				start = -1
				comb = ' '
			}
			if c != ' ' {
				comb = c
			}
			continue
		}
		if start < 0 {
			if len(compounds) > 0 {
				combinators = append(combinators, comb)
			}
			start = i
		}
	}
	if start >= 0 {
		compounds = append(compounds, text[start:])
	}
	return
}

// compoundKeys extracts the dependency keys of a compound selector,
// including those of selectors nested into functional pseudo-classes.
func compoundKeys(compound string) []string {
	var keys []string
	for i := 0; i < len(compound); i++ {
		switch c := compound[i]; c {
		case '\\':
			i++
		case '"', '\'':
			i = skipString(compound, i)
		case '#':
			_, end := readIdent(compound, i+1)
			keys = append(keys, "id")
			i = end - 1
		case '.':
			name, end := readIdent(compound, i+1)
			if name != "" {
				keys = append(keys, "class:"+name)
			}
			i = end - 1
		case '[':
			j := i + 1
			for j < len(compound) && compound[j] == ' ' {
				j++
			}
			name, end := readIdent(compound, j)
			if strings.HasPrefix(name, restyle.StateAttrPrefix) {
				keys = append(keys, "state:"+strings.TrimPrefix(name, restyle.StateAttrPrefix))
			} else if name != "" {
				keys = append(keys, "attr:"+name)
			}
			i = skipAttrValue(compound, end)
		case ':':
			if i+1 < len(compound) && compound[i+1] == ':' {
				_, end := readIdent(compound, i+2)
				i = end - 1
				continue
			}
			name, end := readIdent(compound, i+1)
			if attr, ok := attributePseudoClasses[name]; ok {
				keys = append(keys, "attr:"+attr)
			}
			i = end - 1
		}
	}
	return keys
}

// Pseudo-classes cascadia matches against attributes.
var attributePseudoClasses = map[string]string{
	"checked":  "checked",
	"disabled": "disabled",
	"enabled":  "disabled",
	"link":     "href",
}

// readIdent reads a CSS identifier starting at position i, resolving
// escapes. It returns the identifier and the position after it.
func readIdent(s string, i int) (string, int) {
	var b strings.Builder
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			b.WriteByte(s[i+1])
			i += 2
			continue
		}
		if c == '-' || c == '_' || c >= 0x80 ||
			('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
			i++
			continue
		}
		break
	}
	return b.String(), i
}

// skipString returns the position of the closing quote of a string
// starting at position i.
func skipString(s string, i int) int {
	quote := s[i]
	for i++; i < len(s); i++ {
		if s[i] == '\\' {
			i++
		} else if s[i] == quote {
			return i
		}
	}
	return len(s)
}

// skipAttrValue returns the position of the ']' closing an attribute
// selector.
func skipAttrValue(s string, i int) int {
	for ; i < len(s); i++ {
		switch s[i] {
		case '"', '\'':
			i = skipString(s, i)
		case ']':
			return i
		}
	}
	return len(s)
}
