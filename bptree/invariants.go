package bptree

import (
	"cmp"
	"fmt"
)

// CheckInvariants walks t and reports the first violation of the five
// universal structural invariants (order, separation, balance, occupancy,
// value alignment), or nil if none is found. It is exported so code
// embedding this tree can assert its shape after an arbitrary sequence of
// operations, the same way the tree's own tests do.
func CheckInvariants[K cmp.Ordered, V any](t *Tree[K, V]) error {
	if t.root == nil {
		return nil
	}
	if len(t.root.keys) == 0 {
		return fmt.Errorf("occupancy: non-empty tree's root has zero keys")
	}
	_, err := checkNode(t.root, true)
	return err
}

// checkNode validates n and, recursively, its whole subtree, returning
// the uniform depth of every leaf beneath n.
func checkNode[K cmp.Ordered, V any](n *node[K, V], isRoot bool) (int, error) {
	if len(n.keys) != len(n.values) {
		return 0, fmt.Errorf("value alignment: len(keys)=%d len(values)=%d", len(n.keys), len(n.values))
	}
	if !n.isLeaf() && len(n.children) != len(n.keys)+1 {
		return 0, fmt.Errorf("value alignment: internal node has %d children, want %d", len(n.children), len(n.keys)+1)
	}

	for i := 1; i < len(n.keys); i++ {
		if !(n.keys[i-1] < n.keys[i]) {
			return 0, fmt.Errorf("order: keys[%d]=%v not strictly less than keys[%d]=%v", i-1, n.keys[i-1], i, n.keys[i])
		}
	}

	if isRoot {
		if len(n.keys) > n.maxCount-1 {
			return 0, fmt.Errorf("occupancy: root has %d keys, want <= %d", len(n.keys), n.maxCount-1)
		}
	} else if minOK := n.minCount(); len(n.keys) < minOK || len(n.keys) > n.maxCount-1 {
		return 0, fmt.Errorf("occupancy: node has %d keys, want between %d and %d", len(n.keys), minOK, n.maxCount-1)
	}

	if n.isLeaf() {
		return 0, nil
	}

	depth := -1
	for i, child := range n.children {
		if len(child.keys) == 0 {
			return 0, fmt.Errorf("occupancy: children[%d] has 0 keys, want between %d and %d", i, child.minCount(), child.maxCount-1)
		}
		if i > 0 && !(n.keys[i-1] < child.keys[0]) {
			return 0, fmt.Errorf("separation: children[%d] min key %v not greater than keys[%d]=%v", i, child.keys[0], i-1, n.keys[i-1])
		}
		if i < len(n.keys) && !(child.keys[len(child.keys)-1] < n.keys[i]) {
			return 0, fmt.Errorf("separation: children[%d] max key %v not less than keys[%d]=%v", i, child.keys[len(child.keys)-1], i, n.keys[i])
		}

		childDepth, err := checkNode(child, false)
		if err != nil {
			return 0, err
		}
		if depth == -1 {
			depth = childDepth
		} else if depth != childDepth {
			return 0, fmt.Errorf("balance: leaves at depths %d and %d", depth, childDepth)
		}
	}
	return depth + 1, nil
}
