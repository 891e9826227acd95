package restyle

import (
	"strings"

	"github.com/npillmayer/restyle/dom/style"
)

// Damage is a set of flags describing the work layout has to do as the
// consequence of a style change.
type Damage uint8

// Damage flags, in increasing order of severity.
const (
	Repaint         Damage = 1 << iota // repaint the node itself
	Reposition                         // recompute the position of the node
	StoreOverflow                      // recompute the overflow regions
	BubbleISizes                       // recompute intrinsic inline sizes, bubbling up
	ReflowOutOfFlow                    // reflow out-of-flow descendants
	Reflow                             // reflow the node and its descendants
	ReconstructFlow                    // rebuild the box of the node
)

var damageNames = []string{"repaint", "reposition", "store-overflow", "bubble-isizes",
	"reflow-out-of-flow", "reflow", "reconstruct-flow"}

// Rebuild is the damage for a node which has to be rebuilt from scratch.
func Rebuild() Damage {
	return Repaint | Reposition | StoreOverflow | BubbleISizes | ReflowOutOfFlow |
		Reflow | ReconstructFlow
}

// Insert unites other into d.
func (d *Damage) Insert(other Damage) {
	*d |= other
}

// Contains is true if every flag of other is set in d.
func (d Damage) Contains(other Damage) bool {
	return d&other == other
}

// IsEmpty is true if no flag is set.
func (d Damage) IsEmpty() bool {
	return d == 0
}

func (d Damage) String() string {
	if d == 0 {
		return "{}"
	}
	var names []string
	for i, name := range damageNames {
		if d&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return "{" + strings.Join(names, "|") + "}"
}

var damageForGroup = map[string]Damage{
	style.PGMargins:   Reflow | ReflowOutOfFlow | BubbleISizes | StoreOverflow | Reposition | Repaint,
	style.PGPadding:   Reflow | ReflowOutOfFlow | BubbleISizes | StoreOverflow | Reposition | Repaint,
	style.PGDimension: Reflow | ReflowOutOfFlow | BubbleISizes | StoreOverflow | Reposition | Repaint,
	style.PGText:      Reflow | ReflowOutOfFlow | BubbleISizes | StoreOverflow | Repaint,
	style.PGRegion:    ReconstructFlow | Reflow | Repaint,
	style.PGColor:     Repaint,
	style.PGX:         Repaint,
}

// ComputeDamage compares two sets of computed values and returns the layout
// damage implied by the differences. A nil old value means the element has
// not been styled before, which requires a rebuild.
func ComputeDamage(old, new *style.ComputedValues) Damage {
	if old == nil || new == nil {
		return Rebuild()
	}
	var damage Damage
	for _, group := range old.DifferingGroups(new) {
		switch group {
		case style.PGDisplay:
			damage.Insert(displayDamage(old, new))
		case style.PGBorder:
			damage.Insert(borderDamage(old.Group(group), new.Group(group)))
		default:
			d, ok := damageForGroup[group]
			if !ok {
				d = Repaint
			}
			damage.Insert(d)
		}
	}
	return damage
}

func displayDamage(old, new *style.ComputedValues) Damage {
	if old.Value("display") != new.Value("display") {
		return Rebuild()
	}
	var damage Damage
	if old.Value("position") != new.Value("position") || old.Value("float") != new.Value("float") {
		damage.Insert(Reposition | ReflowOutOfFlow | Reflow | StoreOverflow | Repaint)
	}
	for _, inset := range []string{"top", "right", "bottom", "left"} {
		if old.Value(inset) != new.Value(inset) {
			damage.Insert(Reposition | ReflowOutOfFlow | StoreOverflow | Repaint)
		}
	}
	if old.Value("visibility") != new.Value("visibility") {
		damage.Insert(Repaint)
	}
	return damage
}

// Border widths change the geometry of boxes, all other border properties
// just need repainting.
func borderDamage(old, new *style.PropertyGroup) Damage {
	damage := Repaint
	for _, side := range []string{"top", "right", "bottom", "left"} {
		key := "border-" + side + "-width"
		o, _ := old.Get(key)
		n, _ := new.Get(key)
		if o != n {
			damage.Insert(Reflow | ReflowOutOfFlow | BubbleISizes | StoreOverflow | Reposition)
		}
	}
	return damage
}
