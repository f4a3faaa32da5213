package bptree

import (
	"cmp"

	"github.com/rs/zerolog"
)

// Option configures a Tree at construction time.
type Option[K cmp.Ordered, V any] func(*Tree[K, V])

// WithLogger attaches a zerolog.Logger that receives debug-level events for
// the two root-edge transformations Tree itself owns: the root splitting
// (tree grows upward) and the root collapsing (tree shrinks downward). The
// per-node splits, rotations, and merges a delegated insert/delete performs
// while rebalancing are not logged individually; node carries no logger.
// The default logger is zerolog.Nop(), so a Tree is silent unless a caller
// opts in.
func WithLogger[K cmp.Ordered, V any](logger zerolog.Logger) Option[K, V] {
	return func(t *Tree[K, V]) {
		t.log = logger
	}
}
