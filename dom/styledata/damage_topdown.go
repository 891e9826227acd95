//go:build topdownframes

package styledata

import "github.com/npillmayer/restyle/dom/style/restyle"

type damageHandled struct {
	d restyle.Damage
}

func (dh damageHandled) get() restyle.Damage { return dh.d }

func (dh *damageHandled) set(d restyle.Damage) { dh.d = d }
