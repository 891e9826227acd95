/*
Package style holds the raw material of styling: CSS property values, grouped
into property groups, collected into property maps, and frozen into computed
values once the cascade for an element is done.

Overview

CSS knows a whole lot of properties. We split them up into organisational
groups (margins, padding, border, display, …), which is also the granularity
used for deciding which kind of layout damage a style change implies.

A ComputedValues is the immutable result of cascading the rules matched for an
element. It is shared between elements and pseudo-elements whenever possible and
never mutated after construction, so it may safely be read from any goroutine.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'restyle.style'
func tracer() tracing.Trace {
	return tracing.Select("restyle.style")
}
