package styledata

import (
	"fmt"

	"github.com/npillmayer/restyle/dom/style/restyle"
	"golang.org/x/net/html"
)

// HintDeriver computes a restyle hint from the snapshot of an element,
// comparing it to the element's current state.
type HintDeriver interface {
	ComputeRestyleHint(element *html.Node, snapshot *restyle.Snapshot) restyle.Hint
}

// RestyleData is the invalidation record of an element. It is created when an
// invalidation has to be recorded and dropped when the element has been
// processed. The zero value records nothing.
type RestyleData struct {
	Hint          StoredRestyleHint // which elements need selector matching
	Recascade     bool              // values have to be recascaded, e.g. for changed inherited values
	Damage        restyle.Damage    // layout damage caused by the restyle
	damageHandled damageHandled
	Snapshot      SnapshotOption // state of the element before it has been mutated
}

// ComputeFinalHint expands the snapshot, if any, into a restyle hint and
// stores it together with the hint recorded so far. The later-siblings bit is
// stripped off the stored hint and returned, for the caller to pass on to
// later siblings. The snapshot is destroyed.
func (rd *RestyleData) ComputeFinalHint(element *html.Node, deriver HintDeriver) bool {
	hint := rd.Hint.Bits()
	if snap := rd.Snapshot.Get(); snap != nil {
		derived := deriver.ComputeRestyleHint(element, snap)
		tracer().Debugf("<%s>: snapshot expanded to hint %v", element.Data, derived)
		hint.Insert(derived)
	}
	laterSiblings := hint.Contains(restyle.LaterSiblings)
	hint.Remove(restyle.LaterSiblings)
	rd.Hint = HintFrom(hint)
	rd.Snapshot.Destroy()
	return laterSiblings
}

// HasInvalidations is true if the restyle data may invalidate the element's
// style. A snapshot not yet expanded counts as an invalidation.
func (rd *RestyleData) HasInvalidations() bool {
	return rd.Hint.HasSelfInvalidations() || rd.Recascade || rd.Snapshot.IsSome()
}

// HasSiblingInvalidations is true if the restyle data may invalidate styles of
// later siblings. A snapshot not yet expanded counts as an invalidation.
func (rd *RestyleData) HasSiblingInvalidations() bool {
	return rd.Hint.HasSiblingInvalidations() || rd.Snapshot.IsSome()
}

// DamageHandled returns the damage already handled by ancestors.
func (rd *RestyleData) DamageHandled() restyle.Damage {
	return rd.damageHandled.get()
}

// SetDamageHandled records the damage already handled by ancestors.
func (rd *RestyleData) SetDamageHandled(d restyle.Damage) {
	rd.damageHandled.set(d)
}

func (rd *RestyleData) String() string {
	return fmt.Sprintf("RestyleData{hint: %v, recascade: %v, damage: %v, snapshot: %v}",
		rd.Hint, rd.Recascade, rd.Damage, rd.Snapshot.IsSome())
}
