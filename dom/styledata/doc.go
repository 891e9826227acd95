/*
Package styledata holds the style data attached to every element: the styles
computed for the element last time, and the invalidations pending for it.

Overview

For every element the style system has to answer two questions cheaply, even
while other elements are being processed concurrently: "what style did we
compute last time?" and "what, if anything, must be recomputed now?".
ElementData answers both. It carries optional ElementStyles, present once the
element has been styled, and optional RestyleData, present only while an
invalidation is pending.

An element is in one of three states:

    Unstyled       no styles
    Styled-Clean   styles, no pending invalidations
    Styled-Dirty   styles and restyle data with pending invalidations

The style traversal queries ElementData to classify the work to do for an
element (see RestyleKind), expands snapshots of mutated elements into restyle
hints, and writes fresh styles back.

Concurrency

ElementData is not synchronized. Clients have to guard every instance with an
exclusive-access cell (see package styledtree). Snapshots may be created by
layout workers only (see package threadstate); their release is deferred to
the owner of the snapshot pool.

Contract violations, like reading the values of a partial style or setting
styles before a snapshot has been expanded, are programming errors and panic.

Build Tags

With build tag 'topdownframes', restyle data tracks the damage already handled
by ancestors, and element styles drop the cache for lazy pseudo-elements.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledata

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'restyle.data'
func tracer() tracing.Trace {
	return tracing.Select("restyle.data")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("styledata: "+msg, msgargs...)
		tracer().Errorf(msg)
		panic(msg)
	}
}
