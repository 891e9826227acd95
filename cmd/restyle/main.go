/*
Command restyle styles an HTML document, applies a set of mutations, and
restyles the document incrementally, reporting the work done.

Usage:

	restyle [flags] document.html

Flags may be given in a configuration file restyle.yaml or as environment
variables, prefixed with RESTYLE_.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
