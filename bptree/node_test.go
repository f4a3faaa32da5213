package bptree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeSplitMedianSeparator(t *testing.T) {
	n := &node[int, string]{maxCount: 5}
	for i, k := range []int{10, 20, 30, 40, 50} {
		n.insertKVAt(i, k, "v")
	}

	sepK, _, left, right := n.split()

	require.Equal(t, 30, sepK)
	require.Equal(t, []int{10, 20}, left.keys)
	require.Equal(t, []int{40, 50}, right.keys)
}

func TestNodeSplitPreservesChildren(t *testing.T) {
	n := &node[int, string]{maxCount: 3}
	n.keys = []int{10, 20, 30}
	n.values = []string{"a", "b", "c"}
	for i := 0; i < 4; i++ {
		n.children = append(n.children, newLeaf[int, string](3))
	}

	_, _, left, right := n.split()

	require.Len(t, left.children, 2)
	require.Len(t, right.children, 2)
}

func TestNodeFindBinarySearch(t *testing.T) {
	n := &node[int, string]{keys: []int{10, 20, 30}}

	i, found := n.find(20)
	require.True(t, found)
	require.Equal(t, 1, i)

	i, found = n.find(25)
	require.False(t, found)
	require.Equal(t, 2, i)

	i, found = n.find(5)
	require.False(t, found)
	require.Equal(t, 0, i)
}

func TestNodeInsertOverwritesExisting(t *testing.T) {
	n := newLeaf[int, string](5)
	n.insert(10, "first")
	n.insert(10, "second")

	v, ok := n.search(10)
	require.True(t, ok)
	require.Equal(t, "second", v)
	require.Len(t, n.keys, 1)
}

func TestSinkMergeKeepsSeparator(t *testing.T) {
	left := newLeaf[int, string](3)
	left.keys, left.values = []int{1, 2}, []string{"a", "b"}
	right := newLeaf[int, string](3)
	right.keys, right.values = []int{4, 5}, []string{"d", "e"}

	merged := sinkMerge(left, right, 3, "c", 3)

	require.Equal(t, []int{1, 2, 3, 4, 5}, merged.keys)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, merged.values)
}

// TestDeleteFoundMergeRespectsMaxCount reproduces a delete of an internal
// key whose two flanking children are themselves internal, full, and
// donate-unable only at their boundary leaf: X.keys=[10,20] with leaves
// [5],[15],[25] (rightmost at exactly min_count), Y.keys=[60,70] with
// leaves [55],[65],[75] (leftmost at exactly min_count). Deleting the
// separator 50 must not leave a node holding more than max_count-1 keys.
func TestDeleteFoundMergeRespectsMaxCount(t *testing.T) {
	const maxCount = 3

	newLeafWith := func(keys ...int) *node[int, int] {
		n := newLeaf[int, int](maxCount)
		for _, k := range keys {
			n.insertKVAt(len(n.keys), k, k*10)
		}
		return n
	}

	x := &node[int, int]{maxCount: maxCount}
	x.keys, x.values = []int{10, 20}, []int{100, 200}
	x.children = []*node[int, int]{newLeafWith(5), newLeafWith(15), newLeafWith(25)}

	y := &node[int, int]{maxCount: maxCount}
	y.keys, y.values = []int{60, 70}, []int{600, 700}
	y.children = []*node[int, int]{newLeafWith(55), newLeafWith(65), newLeafWith(75)}

	root := &node[int, int]{maxCount: maxCount}
	root.keys, root.values = []int{50}, []int{500}
	root.children = []*node[int, int]{x, y}

	root.delete(50)

	_, found := root.find(50)
	require.False(t, found)

	var walk func(n *node[int, int])
	walk = func(n *node[int, int]) {
		require.LessOrEqual(t, len(n.keys), maxCount-1, "node %v exceeds max_count-1", n.keys)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(root)

	for _, k := range []int{5, 10, 15, 20, 25, 55, 60, 65, 70, 75} {
		_, ok := root.search(k)
		require.True(t, ok, "key %d should survive the delete", k)
	}
}

func TestConcatLeavesDropsSeparator(t *testing.T) {
	left := newLeaf[int, string](3)
	left.keys, left.values = []int{1, 2}, []string{"a", "b"}
	right := newLeaf[int, string](3)
	right.keys, right.values = []int{4, 5}, []string{"d", "e"}

	merged := concatLeaves(left, right, 3)

	require.Equal(t, []int{1, 2, 4, 5}, merged.keys)
}
