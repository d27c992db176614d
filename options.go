package decrbfs

import "github.com/rs/zerolog"

// defaultPriorityBuildThreshold is the subtree-size cutoff passed to every
// per-vertex PriorityStructure's parallel build when no WithPriorityBuildThreshold
// option overrides it.
const defaultPriorityBuildThreshold = 32

// Edge is a directed graph edge, the unit batch_delete operates on.
type Edge struct {
	U, V int
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithLogger attaches a logger the Tree uses for epoch-level tracing:
// construction, batch-delete start/end, per-phase suspect counts in Pass 3,
// and the event immediately preceding any internal-inconsistency panic. A
// nil logger (the default) disables all logging.
func WithLogger(l *zerolog.Logger) Option {
	return func(t *Tree) { t.log = l }
}

// WithPriorityBuildThreshold overrides the sequential-fallback subtree size
// used when each vertex's PriorityStructure is built at construction.
func WithPriorityBuildThreshold(n int) Option {
	return func(t *Tree) {
		if n > 0 {
			t.buildThreshold = n
		}
	}
}
