//go:build !release

// Package assert checks internal invariants. A failed assertion is a bug in this module, never
// bad caller input, so it panics instead of returning an error. Release builds compile it out.
package assert

import "github.com/rotisserie/eris"

// That panics with an eris error, which keeps the stack of the failing call site, when cond is
// false.
func That(cond bool, format string, args ...any) { //nolint:goprintffuncname // it's ok
	if !cond {
		panic(eris.Errorf(format, args...))
	}
}
