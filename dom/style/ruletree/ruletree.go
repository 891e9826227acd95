package ruletree

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"weak"

	"github.com/npillmayer/restyle/dom/style/cssom"
)

// CascadeLevel is the origin and importance of a declaration block, in
// ascending order of precedence.
type CascadeLevel uint8

// Cascade levels.
const (
	UserAgent CascadeLevel = iota
	AuthorNormal
	StyleAttributeNormal
	Animations
	AuthorImportant
	StyleAttributeImportant
	UserAgentImportant
	Transitions
)

var levelNames = []string{"ua", "author", "style-attr", "animations", "author!",
	"style-attr!", "ua!", "transitions"}

func (l CascadeLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "?"
}

// IsImportant is true for levels holding !important declarations.
func (l CascadeLevel) IsImportant() bool {
	return l == AuthorImportant || l == StyleAttributeImportant || l == UserAgentImportant
}

// Important returns the level of the !important declarations of a sheet
// appended at level l.
func (l CascadeLevel) Important() CascadeLevel {
	switch l {
	case UserAgent:
		return UserAgentImportant
	case StyleAttributeNormal:
		return StyleAttributeImportant
	}
	return AuthorImportant
}

// Source is a declaration block in the rule tree. Sources are identified by
// pointer, i.e. a rule must be wrapped into a Source only once.
//
// Important tells which declarations of Rule the source stands for.
type Source struct {
	Rule      cssom.Rule
	Important bool
}

func (s *Source) String() string {
	if s == nil {
		return "<none>"
	}
	if s.Important {
		return s.Rule.Selector() + "!"
	}
	return s.Rule.Selector()
}

// LevelledSource is a source together with the cascade level it applies at.
type LevelledSource struct {
	Source *Source
	Level  CascadeLevel
}

type childKey struct {
	source *Source
	level  CascadeLevel
}

type ruleNode struct {
	parent   *ruleNode
	source   *Source
	level    CascadeLevel
	children map[childKey]weak.Pointer[ruleNode] // guarded by Tree.mx
}

// StrongRuleNode is a handle for a node of the rule tree. Rule nodes are
// compared by identity. The zero value is an absent rule node.
type StrongRuleNode struct {
	node *ruleNode
}

// IsNone is true for the zero StrongRuleNode.
func (r StrongRuleNode) IsNone() bool {
	return r.node == nil
}

// IsRoot is true for the root of a rule tree.
func (r StrongRuleNode) IsRoot() bool {
	return r.node != nil && r.node.parent == nil
}

// Level returns the cascade level of the node's source.
func (r StrongRuleNode) Level() CascadeLevel {
	return r.node.level
}

// Source returns the declaration block of a node, which is nil for the root.
func (r StrongRuleNode) Source() *Source {
	return r.node.source
}

// Parent returns the parent node; the root's parent is absent.
func (r StrongRuleNode) Parent() StrongRuleNode {
	return StrongRuleNode{node: r.node.parent}
}

// Sources returns the declaration blocks along the path from the root to
// the node, in ascending order of precedence.
func (r StrongRuleNode) Sources() []LevelledSource {
	var sources []LevelledSource
	for n := r.node; n != nil && n.parent != nil; n = n.parent {
		sources = append(sources, LevelledSource{Source: n.source, Level: n.level})
	}
	for i, j := 0, len(sources)-1; i < j; i, j = i+1, j-1 {
		sources[i], sources[j] = sources[j], sources[i]
	}
	return sources
}

func (r StrongRuleNode) String() string {
	if r.node == nil {
		return "RuleNode<none>"
	}
	var b strings.Builder
	b.WriteString("RuleNode[")
	for i, ls := range r.Sources() {
		if i > 0 {
			b.WriteString(" > ")
		}
		fmt.Fprintf(&b, "%s@%s", ls.Source, ls.Level)
	}
	b.WriteString("]")
	return b.String()
}

// Tree is a rule tree. It is safe for concurrent use.
type Tree struct {
	mx   sync.Mutex
	root *ruleNode
}

// NewTree creates an empty rule tree.
func NewTree() *Tree {
	return &Tree{root: &ruleNode{}}
}

// Root returns the root node of the tree, standing for "no rules matched".
func (t *Tree) Root() StrongRuleNode {
	return StrongRuleNode{node: t.root}
}

// InsertOrdered returns the node for a chain of sources, which must already
// be in cascade order. Nodes are created on demand.
func (t *Tree) InsertOrdered(sources []LevelledSource) StrongRuleNode {
	t.mx.Lock()
	defer t.mx.Unlock()
	return StrongRuleNode{node: t.insert(t.root, sources)}
}

func (t *Tree) insert(from *ruleNode, sources []LevelledSource) *ruleNode {
	n := from
	for _, ls := range sources {
		assertThat(ls.Source != nil, "cannot insert nil source into rule tree")
		assertThat(ls.Level >= n.level || n.parent == nil,
			"sources out of cascade order: %s after %s", ls.Level, n.level)
		n = n.child(ls)
	}
	return n
}

func (n *ruleNode) child(ls LevelledSource) *ruleNode {
	key := childKey{source: ls.Source, level: ls.Level}
	if wp, ok := n.children[key]; ok {
		if ch := wp.Value(); ch != nil {
			return ch
		}
	}
	ch := &ruleNode{parent: n, source: ls.Source, level: ls.Level}
	if n.children == nil {
		n.children = make(map[childKey]weak.Pointer[ruleNode])
	}
	n.children[key] = weak.Make(ch)
	return ch
}

// ReplaceRules returns the node for the chain of node, with all sources at
// cascade level replaced by sources. If nothing changes, node itself is
// returned.
func (t *Tree) ReplaceRules(node StrongRuleNode, level CascadeLevel, sources []*Source) StrongRuleNode {
	assertThat(!node.IsNone(), "cannot replace rules of absent rule node")
	old := node.Sources()
	chain := make([]LevelledSource, 0, len(old)+len(sources))
	var replaced []*Source
	inserted := false
	for _, ls := range old {
		if ls.Level == level {
			replaced = append(replaced, ls.Source)
			continue
		}
		if !inserted && ls.Level > level {
			chain = appendAtLevel(chain, sources, level)
			inserted = true
		}
		chain = append(chain, ls)
	}
	if !inserted {
		chain = appendAtLevel(chain, sources, level)
	}
	if equalSources(replaced, sources) {
		return node
	}
	tracer().Debugf("rule tree: replacing %d sources at level %s", len(replaced), level)
	return t.InsertOrdered(chain)
}

func appendAtLevel(chain []LevelledSource, sources []*Source, level CascadeLevel) []LevelledSource {
	for _, s := range sources {
		chain = append(chain, LevelledSource{Source: s, Level: level})
	}
	return chain
}

func equalSources(a, b []*Source) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// GC sweeps interning entries of nodes no longer held by anyone.
// It returns the number of entries removed.
func (t *Tree) GC() int {
	t.mx.Lock()
	defer t.mx.Unlock()
	return sweep(t.root)
}

func sweep(n *ruleNode) int {
	swept := 0
	for key, wp := range n.children {
		ch := wp.Value()
		if ch == nil {
			delete(n.children, key)
			swept++
			continue
		}
		swept += sweep(ch)
	}
	return swept
}

// Size returns the number of live nodes in the tree, including the root.
func (t *Tree) Size() int {
	t.mx.Lock()
	defer t.mx.Unlock()
	return size(t.root)
}

func size(n *ruleNode) int {
	s := 1
	for _, wp := range n.children {
		if ch := wp.Value(); ch != nil {
			s += size(ch)
		}
	}
	return s
}

// SortByLevel sorts sources into cascade order, keeping the relative order of
// sources at the same level.
func SortByLevel(sources []LevelledSource) {
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Level < sources[j].Level
	})
}
