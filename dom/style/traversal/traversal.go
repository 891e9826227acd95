package traversal

import (
	"context"
	"errors"
	"runtime"

	"github.com/npillmayer/restyle/dom/style"
	"github.com/npillmayer/restyle/dom/style/restyle"
	"github.com/npillmayer/restyle/dom/style/ruletree"
	"github.com/npillmayer/restyle/dom/style/selectors"
	"github.com/npillmayer/restyle/dom/style/stylist"
	"github.com/npillmayer/restyle/dom/styledata"
	"github.com/npillmayer/restyle/dom/styledtree"
	"github.com/npillmayer/restyle/dom/threadstate"
	"github.com/npillmayer/restyle/tree"
	"golang.org/x/sync/errgroup"
)

// ErrNoStylist is returned for traversals without a stylist.
var ErrNoStylist = errors.New("traversal needs a stylist")

// Traversal restyles styled document trees.
type Traversal struct {
	Stylist *stylist.Stylist
	Flags   restyle.TraversalFlags
	Workers int // maximum number of concurrent workers, GOMAXPROCS if <= 0

	// OnDamage, if set, receives the layout damage of every restyled
	// element. It is called concurrently by the workers, with a context
	// carrying the worker role.
	OnDamage func(ctx context.Context, sn *styledtree.StyNode, damage restyle.Damage)
}

// Restyle brings the styles of a document up to date. Pending animation
// invalidations are processed by an animation-only pass first. Then pending
// snapshots are expanded and the normal traversal runs.
//
// The document must not be mutated while the traversal runs. If the
// traversal is cancelled, elements keep the state they had been brought to.
func (t *Traversal) Restyle(ctx context.Context, doc *styledtree.Document) (Stats, error) {
	if t.Stylist == nil {
		return Stats{}, ErrNoStylist
	}
	ctx = threadstate.With(ctx, threadstate.FromContext(ctx)|threadstate.Layout)
	if t.Flags.ForAnimationOnly() {
		return t.run(ctx, doc)
	}
	var animStats Stats
	if doc.TakeAnimationsPending() {
		anim := *t
		anim.Flags |= restyle.AnimationOnly
		var err error
		if animStats, err = anim.run(ctx, doc); err != nil {
			return animStats, err
		}
		tracer().Debugf("animation-only pass: %v", animStats)
	}
	snapshots := doc.ExpandSnapshots(ctx)
	stats, err := t.run(ctx, doc)
	stats = stats.add(animStats)
	stats.Snapshots = snapshots
	tracer().Infof("restyle: %v", stats)
	return stats, err
}

func (t *Traversal) run(ctx context.Context, doc *styledtree.Document) (Stats, error) {
	workers := t.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	w := &walker{
		t:   t,
		doc: doc,
		g:   g,
		ctx: threadstate.With(gctx, workerRole(ctx)),
	}
	g.Go(func() error {
		root := doc.Root()
		out := w.visit(root, nil, styledata.EmptyHint(), false, 0)
		if !out.descend {
			return nil
		}
		return w.children(root, out)
	})
	err := g.Wait()
	return w.c.stats(0), err
}

// workerRole derives the role of traversal workers from the role of the
// caller. Workers never act in the main role.
func workerRole(ctx context.Context) threadstate.ThreadState {
	return threadstate.FromContext(ctx)&^threadstate.Script | threadstate.Layout | threadstate.Worker
}

// walker holds the state shared by the workers of one traversal pass.
type walker struct {
	t   *Traversal
	doc *styledtree.Document
	g   *errgroup.Group
	ctx context.Context
	c   counters
}

// outcome of visiting an element, which is input for its children.
type outcome struct {
	values        *style.ComputedValues
	childHint     styledata.StoredRestyleHint
	recascade     bool // children have to recascade
	laterSiblings bool // later siblings have to be restyled
	descend       bool // children have to be visited
	handled       restyle.Damage
}

// children visits the children of sn in sibling order. Children with
// descendants to visit are handed to other workers if possible.
func (w *walker) children(sn *styledtree.StyNode, parent outcome) error {
	var siblingHint styledata.StoredRestyleHint
	for _, ch := range sn.ChildNodes() {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		hint := parent.childHint
		hint.Insert(siblingHint)
		if !w.needsVisit(ch, hint, parent.recascade) {
			continue
		}
		out := w.visit(ch, parent.values, hint, parent.recascade, parent.handled)
		if out.laterSiblings {
			siblingHint = styledata.SubtreeHint()
		}
		if !out.descend {
			continue
		}
		ch := ch
		if !w.g.TryGo(func() error { return w.children(ch, out) }) {
			if err := w.children(ch, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) needsVisit(sn *styledtree.StyNode, hint styledata.StoredRestyleHint, recascade bool) bool {
	if sn.HasDirtyDescendants() {
		return true
	}
	data, release := sn.Data().Borrow()
	defer release()
	if w.t.Flags.ForAnimationOnly() {
		return recascade || (data != nil && data.HasRestyle() && data.GetRestyle().Hint.HasAnimationHint())
	}
	return !hint.IsEmpty() || recascade || data == nil || !data.HasStyles() || data.HasRestyle()
}

// visit brings the style of a single element up to date.
func (w *walker) visit(sn *styledtree.StyNode, parent *style.ComputedValues,
	hint styledata.StoredRestyleHint, recascade bool, handled restyle.Damage) outcome {
	//
	w.c.visited.Add(1)
	data, release := sn.Data().Ensure()
	defer release()
	h := sn.HTMLNode()
	animOnly := w.t.Flags.ForAnimationOnly()
	var out outcome
	if data.HasStyles() && (!hint.IsEmpty() || recascade) {
		rd := data.EnsureRestyle()
		rd.Hint.Insert(hint)
		rd.Recascade = rd.Recascade || recascade
	}
	if rd := data.GetRestyle(); rd != nil && !animOnly {
		out.laterSiblings = rd.ComputeFinalHint(h, w.t.Stylist)
	}
	var wasDisplayNone, inheritedChanged bool
	if old := data.GetStyles(); old != nil {
		wasDisplayNone = old.IsDisplayNone()
	}
	if animOnly {
		// There are no animation rules to replace, so animated elements and
		// their children are cascaded again. Elements with unexpanded
		// snapshots are left to the normal traversal.
		rd := data.GetRestyle()
		if rd != nil && (rd.Hint.HasAnimationHint() || rd.Recascade) && rd.Snapshot.IsNone() {
			kind := styledata.RestyleKind{Kind: styledata.CascadeWithReplacements, Hint: restyle.CSSAnimations}
			inheritedChanged = w.restyle(sn, data, kind, parent)
		} else if rd != nil && rd.Hint.HasAnimationHint() {
			rd.Recascade = true
		}
	} else if !data.HasCurrentStyles() {
		inheritedChanged = w.restyle(sn, data, data.RestyleKind(), parent)
	}
	if !data.HasStyles() {
		return out
	}
	out.handled = handled
	if rd := data.GetRestyle(); rd != nil {
		rd.SetDamageHandled(handled)
		out.childHint = rd.Hint.Propagate(w.t.Flags)
		if damage := rd.Damage &^ rd.DamageHandled(); !damage.IsEmpty() {
			w.c.addDamage(damage)
			if w.t.OnDamage != nil {
				w.t.OnDamage(w.ctx, sn, damage)
			}
			out.handled |= rd.Damage
		}
		rd.Damage = 0
		if !animOnly || !(rd.HasInvalidations() || rd.HasSiblingInvalidations()) {
			w.doc.Snapshots().Defer(data.ClearRestyle()...)
		}
	}
	styles := data.Styles()
	if styles.IsDisplayNone() {
		w.clearSubtree(sn)
		return out
	}
	out.values = styles.Primary.Values()
	out.recascade = inheritedChanged
	out.descend = sn.HasDirtyDescendants() || !out.childHint.IsEmpty() || out.recascade || wasDisplayNone
	if !animOnly {
		sn.ClearDirtyDescendants()
	}
	return out
}

// restyle recomputes the styles of an element according to the kind of
// restyle it needs. It returns true if inherited values have changed.
func (w *walker) restyle(sn *styledtree.StyNode, data *styledata.ElementData,
	kind styledata.RestyleKind, parent *style.ComputedValues) bool {
	//
	h := sn.HTMLNode()
	st := w.t.Stylist
	old := data.GetStyles()
	var rules ruletree.StrongRuleNode
	switch kind.Kind {
	case styledata.MatchAndCascade:
		rules = st.MatchRules(h, selectors.NoPseudoElement)
		w.c.matched.Add(1)
	case styledata.CascadeWithReplacements:
		rules = old.Primary.Rules
		replacements := kind.Hint & restyle.ForReplacements()
		if replacements.Contains(restyle.StyleAttribute) {
			rules = st.ReplaceStyleAttribute(h, rules)
		}
		if replacements.IsEmpty() {
			w.c.recascaded.Add(1)
		} else {
			w.c.replaced.Add(1)
		}
	case styledata.CascadeOnly:
		rules = old.Primary.Rules
		w.c.recascaded.Add(1)
	}
	values := st.Cascade(h, selectors.NoPseudoElement, rules, parent)
	styles := styledata.NewElementStyles(styledata.NewComputedStyle(rules, values))
	for _, pe := range selectors.EagerPseudoElements() {
		var prules ruletree.StrongRuleNode
		if kind.Kind == styledata.MatchAndCascade {
			prules = st.MatchRules(h, pe)
		} else if cs, ok := old.Pseudos.Get(pe); ok {
			prules = cs.Rules
		}
		if prules.IsNone() || prules.IsRoot() {
			continue
		}
		styles.Pseudos.Insert(pe, styledata.NewComputedStyle(prules, st.Cascade(h, pe, prules, values)))
	}
	var oldValues *style.ComputedValues
	damage := restyle.Rebuild()
	if old != nil {
		oldValues = old.Primary.Values()
		damage = restyle.ComputeDamage(oldValues, values) | pseudoDamage(old, styles)
	}
	tracer().Debugf("%v: %v, damage %v", sn, kind, damage)
	data.SetStyles(styles)
	rd := data.EnsureRestyle()
	rd.Damage.Insert(damage)
	rd.Recascade = false
	return oldValues == nil || !oldValues.InheritedEqual(values)
}

func pseudoDamage(old, new *styledata.ElementStyles) restyle.Damage {
	var damage restyle.Damage
	for _, pe := range selectors.EagerPseudoElements() {
		was, hadIt := old.Pseudos.Get(pe)
		is, hasIt := new.Pseudos.Get(pe)
		switch {
		case hadIt != hasIt:
			return restyle.Rebuild()
		case hasIt:
			damage |= restyle.ComputeDamage(was.Values(), is.Values())
		}
	}
	return damage
}

// clearSubtree drops the styles of all descendants of a display:none
// element.
func (w *walker) clearSubtree(sn *styledtree.StyNode) {
	for _, ch := range sn.ChildNodes() {
		ch.Walk(func(n *tree.Node[*styledtree.StyNode]) bool {
			d := n.Payload
			if !d.Data().HasData() && !d.HasDirtyDescendants() {
				return false
			}
			w.doc.Snapshots().Defer(d.Data().Clear()...)
			d.ClearDirtyDescendants()
			w.c.cleared.Add(1)
			return true
		})
	}
	sn.ClearDirtyDescendants()
}
