//go:build race

package testutil

// Race is true when the race detector is enabled; ShouldNotAllocate skips
// itself in that case since -race instrumentation allocates on its own.
const Race = true
