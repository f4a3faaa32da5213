// Package bptree implements a generic, in-memory B-tree providing an
// ordered key->value map with logarithmic point lookup, insertion (with
// overwrite), and deletion.
//
// This implementation provides:
//   - Generic types for both keys and values using Go generics, keys
//     constrained to cmp.Ordered
//   - A configurable node capacity (max_count) fixed for the life of the tree
//   - The three core operations: Search, Insert, Delete
//   - Full deletion rebalancing: predecessor/successor promotion, sibling
//     rotation, sibling merging, and root collapse
//
// Example usage:
//
//	tree, err := bptree.New[int, string](3)
//	if err != nil {
//	    panic(err)
//	}
//
//	tree.Insert(10, "ten")
//	tree.Insert(5, "five")
//	tree.Insert(20, "twenty")
//
//	if value, ok := tree.Search(10); ok {
//	    fmt.Printf("found: %s\n", value)
//	}
//
//	tree.Delete(5)
//
// The tree is particularly useful for:
//   - Index layers inside a larger storage engine
//   - Sorted associative containers embedded in a single-threaded process
//
// Performance characteristics:
//   - Search: O(log n)
//   - Insert: O(log n)
//   - Delete: O(log n)
//   - Space: O(n)
//
// The capacity parameter affects branching factor (max_count + 1):
//   - Lower values: shallower fan-out, more frequent rebalancing
//   - Higher values: wider nodes, fewer levels for the same key count
//
// Persistence, page/block management, concurrency control, range
// iteration, bulk loading, and serialization are all out of scope: the tree
// is a single-threaded, in-memory node algebra, meant to be embedded by
// code that handles those concerns itself.
package bptree
