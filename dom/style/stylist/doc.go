/*
Package stylist matches CSS rules against elements, cascades property values
and derives restyle hints from element snapshots.

Overview

A Stylist is created from a set of stylesheets. Every rule is compiled once
into selectors and wrapped into rule tree sources. Matching an element
results in a rule node of the stylist's rule tree, which is then cascaded into
computed values, given the computed values of the parent element.

Restyle hints are derived from snapshots without matching the whole document:
the stylist indexes its selectors by the attributes, classes, ids and element
states they depend on. A mutation of an element may then only affect the
selectors depending on what has changed, and the position of the dependency
within a selector tells how far the effects reach.

The stylist is safe for concurrent use by traversal workers, once all sheets
have been appended.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package stylist

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'restyle.style'
func tracer() tracing.Trace {
	return tracing.Select("restyle.style")
}
