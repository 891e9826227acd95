/*
Package traversal restyles a styled document tree, top-down and in parallel.

Overview

A traversal visits the elements needing a restyle, parents before children.
The children of an element are processed in sibling order by a single worker,
so that an invalidation of later siblings reaches every following sibling.
Independent subtrees are handed to other workers, up to a configurable limit.

For every element, the traversal expands its snapshot into a final restyle
hint, classifies the work to do, then matches rules and cascades values as
required. The hint left over for the element's children is propagated
downwards, and children whose inherited values changed are recascaded.
Subtrees of elements with display:none have their styles dropped.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package traversal

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.traversal'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.traversal")
}
