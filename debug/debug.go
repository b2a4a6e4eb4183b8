//go:build !debug

// Package debug exposes the build-time debug flag; compile with -tags=debug
// to keep logging enabled under go test and to turn on internal assertions.
package debug

const Debug = false

// Assert does nothing unless the debug build tag is set.
func Assert(condition bool, message ...string) {}
