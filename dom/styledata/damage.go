//go:build !topdownframes

package styledata

import "github.com/npillmayer/restyle/dom/style/restyle"

// Damage handled by ancestors is not tracked without top-down frame
// construction.
type damageHandled struct{}

func (damageHandled) get() restyle.Damage { return 0 }

func (*damageHandled) set(restyle.Damage) {}
