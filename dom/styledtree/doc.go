/*
Package styledtree is the styled document tree: a tree of element nodes,
mirroring the elements of an HTML parse tree, each carrying the style data of
its element.

Overview

A Document is built from an HTML parse tree. Mutations of the HTML tree are
announced to the document by the main role, which snapshots elements before
their attributes or state change. Before the next traversal, the layout role
moves pending snapshots into the element data, where the traversal will
expand them into restyle hints.

Element data is guarded by a runtime-checked borrow cell. Traversal workers
borrow the data of the element they style mutably, and the data of its parent
for reading only. A conflicting borrow is a bug of the traversal and panics.

Snapshots are recycled through a pool owned by the main role. Workers hand
back released snapshots with Defer; the main role reclaims them once the
traversal is done.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.dom'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.dom")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("styledtree: "+msg, msgargs...)
		tracer().Errorf(msg)
		panic(msg)
	}
}
