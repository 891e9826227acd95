/*
Package threadstate tags goroutines with the role they play in styling.

Go does not know about thread-local storage, so the role travels with the
context.Context handed down to every operation which needs to check it. The
main role owns the DOM; layout workers run the style traversal. Some state
may only be created by a layout worker, or released on the main role once the
traversal has finished.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package threadstate

import (
	"context"
	"strings"
)

// ThreadState is a set of role flags.
type ThreadState uint8

// Roles a goroutine may play.
const (
	Script ThreadState = 1 << iota // the main role, owning the DOM
	Layout                         // permission to create layout-only state
	Worker                         // a traversal worker
)

// IsScript is true for the main role.
func (ts ThreadState) IsScript() bool {
	return ts&Script != 0
}

// IsLayout is true if the role is permitted to create layout state.
func (ts ThreadState) IsLayout() bool {
	return ts&Layout != 0
}

// IsWorker is true for traversal workers.
func (ts ThreadState) IsWorker() bool {
	return ts&Worker != 0
}

func (ts ThreadState) String() string {
	var roles []string
	for i, name := range []string{"script", "layout", "worker"} {
		if ts&(1<<i) != 0 {
			roles = append(roles, name)
		}
	}
	if len(roles) == 0 {
		return "none"
	}
	return strings.Join(roles, "|")
}

type ctxKey struct{}

// With returns a context carrying a role.
func With(ctx context.Context, ts ThreadState) context.Context {
	return context.WithValue(ctx, ctxKey{}, ts)
}

// FromContext returns the role carried by a context, or 0.
func FromContext(ctx context.Context) ThreadState {
	if ctx == nil {
		return 0
	}
	ts, _ := ctx.Value(ctxKey{}).(ThreadState)
	return ts
}
