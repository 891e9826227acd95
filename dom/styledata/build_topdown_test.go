//go:build topdownframes

package styledata

import (
	"testing"

	"github.com/npillmayer/restyle/dom/style/restyle"
	"github.com/npillmayer/restyle/dom/style/selectors"
)

func TestDamageHandledIsTracked(t *testing.T) {
	var rd RestyleData
	rd.SetDamageHandled(restyle.Reflow)
	if rd.DamageHandled() != restyle.Reflow {
		t.Errorf("expected damage handled to be reflow, is %v", rd.DamageHandled())
	}
}

func TestPseudoElementCacheIsEmpty(t *testing.T) {
	es := NewElementStyles(completeStyle("block"))
	es.CachedPseudos.Insert(selectors.Selection, completeStyle("inline"))
	if es.CachedPseudos.Len() != 0 || es.CachedPseudos.Get(selectors.Selection) != nil {
		t.Errorf("expected pseudo-element cache to stay empty")
	}
}
