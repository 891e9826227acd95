/*
Package dom is the root of the per-element style machinery for HTML documents.

Styling an HTML document involves a couple of trees. The HTML parse tree
(golang.org/x/net/html) is owned by the script side, which mutates it.
For every element we keep a styled node (package styledtree) on top of the
generic concurrent tree type of package tree. A styled node carries the
element's style data (package styledata): the cached computed values, the
restyle bookkeeping and, between a mutation and the next style pass, a
snapshot of the element's attributes and state.

The style traversal (package style/traversal) walks the styled tree, asks
the stylist (package style/stylist) to match and cascade where needed and
clears the invalidation bits on its way down. Package threadstate marks
which role (script, layout or worker) a goroutine is acting in, which
guards the mutating operations of style data.

Package domdbg prints styled trees for debugging.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom
