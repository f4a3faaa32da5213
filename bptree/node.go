package bptree

import (
	"cmp"
	"sort"
)

// node is a single B-tree node: parallel key/value vectors plus an
// optional child vector. A node with no children is a leaf; one with
// children holds exactly len(keys)+1 of them.
type node[K cmp.Ordered, V any] struct {
	keys     []K
	values   []V
	children []*node[K, V]
	maxCount int
}

func newLeaf[K cmp.Ordered, V any](maxCount int) *node[K, V] {
	return &node[K, V]{maxCount: maxCount}
}

func (n *node[K, V]) isLeaf() bool {
	return len(n.children) == 0
}

func (n *node[K, V]) minCount() int {
	return n.maxCount / 2
}

func (n *node[K, V]) isFull() bool {
	return len(n.keys) >= n.maxCount
}

func (n *node[K, V]) isMoreThanMinCount() bool {
	return len(n.keys) > n.minCount()
}

// find returns the insertion index of k among n.keys (the count of keys
// strictly less than k) and whether k is present at that index.
func (n *node[K, V]) find(k K) (int, bool) {
	i := sort.Search(len(n.keys), func(i int) bool {
		return n.keys[i] >= k
	})
	return i, i < len(n.keys) && n.keys[i] == k
}

// search implements the binary-ordered lookup: present at i, else recurse
// into children[i] unless this is a leaf.
func (n *node[K, V]) search(k K) (V, bool) {
	i, found := n.find(k)
	if found {
		return n.values[i], true
	}
	if n.isLeaf() {
		var zero V
		return zero, false
	}
	return n.children[i].search(k)
}

func (n *node[K, V]) insertKVAt(i int, k K, v V) {
	var zeroK K
	var zeroV V
	n.keys = append(n.keys, zeroK)
	copy(n.keys[i+1:], n.keys[i:])
	n.keys[i] = k
	n.values = append(n.values, zeroV)
	copy(n.values[i+1:], n.values[i:])
	n.values[i] = v
}

func (n *node[K, V]) insertChildAt(i int, c *node[K, V]) {
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
}

func (n *node[K, V]) removeKVAt(i int) (K, V) {
	k, v := n.keys[i], n.values[i]
	n.keys = append(n.keys[:i], n.keys[i+1:]...)
	n.values = append(n.values[:i], n.values[i+1:]...)
	return k, v
}

func (n *node[K, V]) removeChildAt(i int) *node[K, V] {
	c := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	return c
}

// insert implements the bottom-up split-on-overflow discipline: overwrite
// if present, insert directly at a leaf, otherwise recurse and repair the
// one child that may have overflowed on the way back up. n itself may
// return in an overflowed state (len(keys) == maxCount); only Tree
// resolves an overflowed root.
func (n *node[K, V]) insert(k K, v V) {
	i, found := n.find(k)
	if found {
		n.values[i] = v
		return
	}
	if n.isLeaf() {
		n.insertKVAt(i, k, v)
		return
	}
	n.children[i].insert(k, v)
	if n.children[i].isFull() {
		sepK, sepV, left, right := n.children[i].split()
		n.insertKVAt(i, sepK, sepV)
		n.children[i] = left
		n.insertChildAt(i+1, right)
	}
}

// split implements split_node: the separator is the median entry, left
// takes everything before it, right everything after. Both halves inherit
// maxCount; children split the same way when n is internal.
func (n *node[K, V]) split() (sepK K, sepV V, left, right *node[K, V]) {
	mid := len(n.keys) / 2
	sepK, sepV = n.keys[mid], n.values[mid]

	left = &node[K, V]{maxCount: n.maxCount}
	left.keys = append(left.keys, n.keys[:mid]...)
	left.values = append(left.values, n.values[:mid]...)

	right = &node[K, V]{maxCount: n.maxCount}
	right.keys = append(right.keys, n.keys[mid+1:]...)
	right.values = append(right.values, n.values[mid+1:]...)

	if !n.isLeaf() {
		left.children = append(left.children, n.children[:mid+1]...)
		right.children = append(right.children, n.children[mid+1:]...)
	}
	return sepK, sepV, left, right
}

// sinkMerge concatenates left and right around a separator entry that
// SURVIVES the merge (it is not being deleted, only sinking one level
// down). Also used by Case A's key-removal merge in deleteFound when the
// two children are internal: there the separator is the key being deleted,
// and deleteFound removes it from the merged node right afterwards.
func sinkMerge[K cmp.Ordered, V any](left, right *node[K, V], sepK K, sepV V, maxCount int) *node[K, V] {
	merged := &node[K, V]{maxCount: maxCount}
	merged.keys = append(merged.keys, left.keys...)
	merged.keys = append(merged.keys, sepK)
	merged.keys = append(merged.keys, right.keys...)
	merged.values = append(merged.values, left.values...)
	merged.values = append(merged.values, sepV)
	merged.values = append(merged.values, right.values...)
	if !left.isLeaf() {
		merged.children = append(merged.children, left.children...)
		merged.children = append(merged.children, right.children...)
	}
	return merged
}

// concatLeaves merges two leaves with no separator: used by Case A when
// the key at keys[i] is being removed outright and both adjacent children
// are leaves, matching the literal "concatenate keys/values/children"
// merge contract in §4.1.
func concatLeaves[K cmp.Ordered, V any](left, right *node[K, V], maxCount int) *node[K, V] {
	merged := &node[K, V]{maxCount: maxCount}
	merged.keys = append(merged.keys, left.keys...)
	merged.keys = append(merged.keys, right.keys...)
	merged.values = append(merged.values, left.values...)
	merged.values = append(merged.values, right.values...)
	return merged
}

// splitIfOversized re-divides merged the same way an overflowed insert is
// split if concatenating its two source children left it with more than
// max_count-1 keys. Donor checks ahead of a merge only ever inspect a
// boundary leaf's own count (see popMaxFromRightmostLeaf), never the
// merged children's own top-level key counts, so the concatenation can
// land anywhere up to twice max_count-1; one median split always brings
// both halves back within bounds.
func splitIfOversized[K cmp.Ordered, V any](merged *node[K, V]) (sepK K, sepV V, left, right *node[K, V], oversized bool) {
	if len(merged.keys) <= merged.maxCount-1 {
		return sepK, sepV, nil, nil, false
	}
	sepK, sepV, left, right = merged.split()
	return sepK, sepV, left, right, true
}

// delete removes k from the subtree rooted at n, restoring invariants 1,
// 2, and 4 on it. n itself may come back holding fewer than min_count
// keys: when n is a child, its parent's deleteDescend repairs that with
// fixUnderflowAt; Tree alone handles the true root's occupancy.
func (n *node[K, V]) delete(k K) {
	i, found := n.find(k)
	if found {
		n.deleteFound(i)
		return
	}
	if n.isLeaf() {
		return // absent: no-op
	}
	n.deleteDescend(k, i)
}

// deleteFound implements Case A: the key lives at keys[i] in this node.
func (n *node[K, V]) deleteFound(i int) {
	if n.isLeaf() {
		n.removeKVAt(i)
		return
	}

	left, right := n.children[i], n.children[i+1]

	if rk, rv, ok := left.popMaxFromRightmostLeaf(); ok {
		n.keys[i], n.values[i] = rk, rv
		return
	}
	if rk, rv, ok := right.popMinFromLeftmostLeaf(); ok {
		n.keys[i], n.values[i] = rk, rv
		return
	}

	// Neither child can donate: Merge / MergeToSelf. The key at keys[i]
	// is being removed outright, not sunk down, so it only survives as
	// a bridging separator long enough to keep invariant 5 consistent
	// when the children are internal (see DESIGN.md), and is deleted
	// from the merged result immediately after.
	bothLeaves := left.isLeaf() && right.isLeaf()
	bridgeK, bridgeV := n.keys[i], n.values[i]

	var merged *node[K, V]
	if bothLeaves {
		merged = concatLeaves(left, right, n.maxCount)
	} else {
		merged = sinkMerge(left, right, bridgeK, bridgeV, n.maxCount)
		merged.delete(bridgeK)
	}

	n.removeKVAt(i)
	n.removeChildAt(i + 1)

	// The donor check above only ever inspected a boundary leaf, never
	// left's or right's own key counts, so merged's size has no relation to
	// max_count: it can come back holding as many as (max_count-1)*2
	// keys. Re-split it exactly like an overflowed child of insert and
	// splice the new separator plus both halves into n in place of the
	// single merged node, instead of installing an oversized node.
	if sepK, sepV, l, r, oversized := splitIfOversized(merged); oversized {
		n.children[i] = l
		n.insertChildAt(i+1, r)
		n.insertKVAt(i, sepK, sepV)
		return
	}

	if len(n.keys) == 0 {
		// MergeToSelf: this node held exactly one key; collapse into
		// the merged child entirely.
		*n = *merged
		return
	}

	// Merge: splice the merged node back in as children[i].
	n.children[i] = merged
}

// popMaxFromRightmostLeaf harvests the predecessor entry: the largest key
// in this subtree, found by always descending into the last child. Only
// allowed when the donor leaf is more_than_min_count, so the pop leaves it
// still within bounds.
func (n *node[K, V]) popMaxFromRightmostLeaf() (K, V, bool) {
	if n.isLeaf() {
		if !n.isMoreThanMinCount() {
			return zeroKV[K, V]()
		}
		k, v := n.removeKVAt(len(n.keys) - 1)
		return k, v, true
	}
	last := len(n.children) - 1
	k, v, ok := n.children[last].popMaxFromRightmostLeaf()
	if ok && len(n.children[last].keys) < n.children[last].minCount() {
		n.fixUnderflowAt(last)
	}
	return k, v, ok
}

// popMinFromLeftmostLeaf is the successor-side mirror.
func (n *node[K, V]) popMinFromLeftmostLeaf() (K, V, bool) {
	if n.isLeaf() {
		if !n.isMoreThanMinCount() {
			return zeroKV[K, V]()
		}
		k, v := n.removeKVAt(0)
		return k, v, true
	}
	k, v, ok := n.children[0].popMinFromLeftmostLeaf()
	if ok && len(n.children[0].keys) < n.children[0].minCount() {
		n.fixUnderflowAt(0)
	}
	return k, v, ok
}

func zeroKV[K cmp.Ordered, V any]() (K, V, bool) {
	var k K
	var v V
	return k, v, false
}

// rotateRightAt moves one entry from the left sibling of children[pos]
// through this node and down into children[pos]: donor is children[pos-1].
func (n *node[K, V]) rotateRightAt(pos int) {
	left, right := n.children[pos-1], n.children[pos]

	right.keys = append([]K{n.keys[pos-1]}, right.keys...)
	right.values = append([]V{n.values[pos-1]}, right.values...)
	if !left.isLeaf() {
		donor := left.children[len(left.children)-1]
		right.children = append([]*node[K, V]{donor}, right.children...)
		left.children = left.children[:len(left.children)-1]
	}

	n.keys[pos-1] = left.keys[len(left.keys)-1]
	n.values[pos-1] = left.values[len(left.values)-1]
	left.keys = left.keys[:len(left.keys)-1]
	left.values = left.values[:len(left.values)-1]
}

// rotateLeftAt mirrors rotateRightAt: donor is children[pos+1].
func (n *node[K, V]) rotateLeftAt(pos int) {
	left, right := n.children[pos], n.children[pos+1]

	left.keys = append(left.keys, n.keys[pos])
	left.values = append(left.values, n.values[pos])
	if !right.isLeaf() {
		donor := right.children[0]
		left.children = append(left.children, donor)
		right.children = right.children[1:]
	}

	n.keys[pos] = right.keys[0]
	n.values[pos] = right.values[0]
	right.keys = right.keys[1:]
	right.values = right.values[1:]
}

// mergeChildrenAt merges children[pos] and children[pos+1] with keys[pos]
// sinking down as their separator (it survives, unlike Case A's bridge).
// Every caller merges after one of the two children has just lost a key
// and neither holds more than min_count (that is what makes rotation
// unavailable), so the merge holds up to 2*min_count keys; for an even
// max_count that exceeds max_count-1, so the merge is re-split against
// max_count the same way deleteFound's is. Reports whether it had to resplit, so
// MergeToSelf callers know whether n still needs two children or can
// collapse into the single merged one.
func (n *node[K, V]) mergeChildrenAt(pos int) bool {
	left, right := n.children[pos], n.children[pos+1]
	merged := sinkMerge(left, right, n.keys[pos], n.values[pos], n.maxCount)
	n.removeKVAt(pos)
	n.removeChildAt(pos + 1)

	if sepK, sepV, l, r, oversized := splitIfOversized(merged); oversized {
		n.children[pos] = l
		n.insertChildAt(pos+1, r)
		n.insertKVAt(pos, sepK, sepV)
		return true
	}

	n.children[pos] = merged
	return false
}

// fixUnderflowAt repairs children[pos] after it dropped below minCount as
// a side effect of either a predecessor/successor harvest or a Delegate
// into an internal child. Not itself one of the Case A/B named
// operations; it is the generic local rebalance both of those lean on.
func (n *node[K, V]) fixUnderflowAt(pos int) {
	switch {
	case pos > 0 && n.children[pos-1].isMoreThanMinCount():
		n.rotateRightAt(pos)
	case pos < len(n.children)-1 && n.children[pos+1].isMoreThanMinCount():
		n.rotateLeftAt(pos)
	case pos > 0:
		n.mergeChildrenAt(pos - 1)
	default:
		n.mergeChildrenAt(pos)
	}
}

// deleteDescend implements Case B: k is not in this node, descend through
// children[i] per the precondition/operation table in §4.1.
func (n *node[K, V]) deleteDescend(k K, i int) {
	child := n.children[i]

	if !child.isLeaf() {
		// Delegate. The table gives this row no occupancy precondition,
		// unlike the leaf rows below, so child may come back underflowed
		// (e.g. via its own internal Case A/B merge) and needs the same
		// local fixup the leaf rows get explicitly — see DESIGN.md.
		child.delete(k)
		if len(child.keys) < child.minCount() {
			n.fixUnderflowAt(i)
		}
		return
	}

	_, containsK := child.find(k)
	rightmost := i == len(n.children)-1

	switch {
	case !containsK:
		// None.
	case child.isMoreThanMinCount():
		child.delete(k) // Delegate
	case rightmost && i > 0 && n.children[i-1].isMoreThanMinCount():
		child.delete(k)
		n.rotateRightAt(i)
	case !rightmost && n.children[i+1].isMoreThanMinCount():
		child.delete(k)
		n.rotateLeftAt(i)
	case len(n.keys) > 1 && rightmost:
		child.delete(k)
		n.mergeChildrenAt(i - 1) // MergeToLeft
	case len(n.keys) > 1 && !rightmost:
		child.delete(k)
		n.mergeChildrenAt(i) // MergeToRight
	default:
		// MergeToSelf: this node holds exactly one key. If the merge had
		// to resplit against max_count, n already holds the rebalanced
		// separator and two children in place and must not collapse.
		child.delete(k)
		if resplit := n.mergeChildrenAt(0); !resplit {
			*n = *n.children[0]
		}
	}
}
