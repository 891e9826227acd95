/*
Package css provides functionality for CSS styling.

CSS properties are plentyful and some of them are complicated.
This package trys to shield clients from the cumbersome handling of
CSS properties resulting from the textual nature of CSS properties.
Currently it interprets the box-generating property "display", which
decides whether an element generates a box at all and of which kind.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

// see
// https://developer.mozilla.org/en-US/docs/Web/CSS/Reference#dom-css_cssom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.style'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.style")
}
