/*
Package selectors compiles CSS selectors and knows about pseudo-elements.

Pseudo-Elements

Pseudo-elements come in two flavours. Eager pseudo-elements (::before,
::after, ::first-line, ::first-letter) are styled together with their
originating element and get a fixed slot in the element's style data.
Lazy pseudo-elements are styled on demand only.

Selectors

Selector matching is done by cascadia. On top of that, a Selector knows
which attributes, classes, ids and element states it depends on, and where in
the selector these dependencies occur. This is what incremental restyling
needs for deciding how far a mutation of an element reaches.

Pseudo-classes for element state (:hover, :focus, …) are matched against the
state attributes maintained by package restyle.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package selectors

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'restyle.style'
func tracer() tracing.Trace {
	return tracing.Select("restyle.style")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("selectors: "+msg, msgargs...)
		panic(msg)
	}
}
