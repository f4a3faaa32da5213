package bptree

import (
	"cmp"

	"github.com/rs/zerolog"
)

// Tree is a thin owner of an optional root node plus the tree-wide
// max_count parameter. It routes Search/Insert/Delete to the root and
// handles the two root-edge cases no Node call can handle on its own:
// creating the root on first insert and splitting it on overflow (the
// tree grows upward), and dropping the root on underflow (the tree
// shrinks downward, possibly to empty).
type Tree[K cmp.Ordered, V any] struct {
	root     *node[K, V]
	maxCount int
	log      zerolog.Logger
}

// New creates an empty tree with the given per-node key capacity.
// max_count must be >= 2; an effective branching factor of max_count+1
// follows from it.
func New[K cmp.Ordered, V any](maxCount int, opts ...Option[K, V]) (*Tree[K, V], error) {
	if err := validateMaxCount(maxCount); err != nil {
		return nil, err
	}
	t := &Tree[K, V]{
		maxCount: maxCount,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Search returns the value stored under k, or the zero value and false if
// the tree is empty or k is absent.
func (t *Tree[K, V]) Search(k K) (V, bool) {
	if t.root == nil {
		var zero V
		return zero, false
	}
	return t.root.search(k)
}

// Insert stores (k, v), overwriting any existing value for k. This is the
// only place a new root leaf is created (first insert into an empty
// tree) and the only place the tree grows a level (root split on
// overflow).
func (t *Tree[K, V]) Insert(k K, v V) {
	if t.root == nil {
		t.root = newLeaf[K, V](t.maxCount)
		t.root.insertKVAt(0, k, v)
		return
	}

	t.root.insert(k, v)

	if t.root.isFull() {
		sepK, sepV, left, right := t.root.split()
		t.log.Debug().Any("separator", sepK).Msg("root split")
		newRoot := &node[K, V]{maxCount: t.maxCount}
		newRoot.keys = append(newRoot.keys, sepK)
		newRoot.values = append(newRoot.values, sepV)
		newRoot.children = append(newRoot.children, left, right)
		t.root = newRoot
	}
}

// Delete removes k if present; absence is a silent no-op. This is the
// only place the tree shrinks a level (root collapse on underflow),
// possibly all the way to empty.
func (t *Tree[K, V]) Delete(k K) {
	if t.root == nil {
		return
	}

	t.root.delete(k)

	if len(t.root.keys) == 0 {
		if t.root.isLeaf() {
			t.root = nil
			t.log.Debug().Msg("root collapsed to empty")
		} else {
			t.log.Debug().Msg("root collapsed one level")
			t.root = t.root.children[0]
		}
	}
}
