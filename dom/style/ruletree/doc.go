/*
Package ruletree implements a rule tree: the ordered chains of rules matched
for elements, interned and shared between elements.

Overview

Every path from the root of the tree to a node represents the rules matched for
an element, ordered by cascade level and specificity. Elements matching the same
rules share the same node, which makes the node a cheap identity for the set of
matched rules: two elements (or one element at two points in time) with equal
rule nodes will cascade to equal values, given equal parent values.

Nodes are immutable once created. Children are interned by weak reference,
so a chain lives exactly as long as some style holds it; GC sweeps the dead
entries from the interning maps.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ruletree

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
		msg = fmt.Sprintf("ruletree: "+msg, msgargs...)
		panic(msg)
	}
}
