/*
Package restyle holds the vocabulary of incremental restyling: restyle hints
telling the style traversal what to recompute, layout damage telling layout
what to redo, and snapshots capturing the state of an element before it has
been mutated.

Hints

A Hint is a small bitset. Self means the element itself needs selector
matching again, Descendants that every element of the subtree needs it,
LaterSiblings that the following siblings of the element have to be checked.
StyleAttribute and CSSAnimations denote replacements: only the rules of the
corresponding cascade level need replacing, selector matching may be skipped.

Damage

Damage is a bitset as well, ordered roughly by the amount of work a layout
engine has to do for it. ComputeDamage derives it from two sets of computed
values by comparing property groups.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package restyle

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'restyle.data'
func tracer() tracing.Trace {
	return tracing.Select("restyle.data")
}
