/*
Package cssom provides the CSS object model the styling engine consumes.

Overview

CSSOM is the "CSS Object Model", similar to the DOM for HTML. The style
engine does not care about how CSS text is parsed. It consumes stylesheets
and rules through the interfaces StyleSheet and Rule. Concrete implementations
may be found in sub-packages (see package douceuradapter).

Selectors of rules are kept as raw strings; compiling and matching them is the
business of package selectors. The same goes for the order of rules: a
stylesheet returns its rules in document order and the stylist is responsible
for sorting them into the cascade.

A good explanation of styling may be found in

   https://hacks.mozilla.org/2017/08/inside-a-super-fast-css-engine-quantum-css-aka-stylo/

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'restyle.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.cssom")
}
