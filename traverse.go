package gst

import (
	"crypto/sha256"
	"fmt"
)

// traverseTree walks the tree depth-first in ascending child-symbol order,
// the same canonical order enumerateSuffixes relies on, reporting each
// node and bracketing each child subtree between EnterBranch/ExitBranch.
func traverseTree[H comparable](nav Navigator[H], v Visitor) {
	var walk func(h H, depth int)
	walk = func(h H, depth int) {
		v.VisitNode(nav.EdgeStart(h), nav.EdgeEnd(h), nav.LeafCount(h), nav.ChildCount(h), depth)
		for _, c := range nav.Children(h) {
			v.EnterBranch(nav.IncomingSymbol(c))
			walk(c, depth+1)
			v.ExitBranch()
		}
	}
	walk(nav.Root(), 0)
}

// logicalHash folds the tree's edge labels and branching factor into a
// SHA-256 digest, in canonical child order, so two structurally identical
// trees hash the same regardless of which backend built them or how their
// nodes happen to be laid out in memory or on disk.
func logicalHash[H comparable](nav Navigator[H], src TextSource) [32]byte {
	hasher := sha256.New()

	var walk func(h H)
	walk = func(h H) {
		// A leaf edge ends with the terminator, which has no text form.
		end := nav.EdgeEnd(h)
		if end > src.Len() {
			end = src.Len()
		}
		label := src.Substring(nav.EdgeStart(h), end)
		fmt.Fprintf(hasher, "L%d:%s", len(label), label)

		children := nav.Children(h)
		fmt.Fprintf(hasher, "C%d", len(children))
		for _, c := range children {
			walk(c)
		}
	}
	walk(nav.Root())

	var out [32]byte
	copy(out[:], hasher.Sum(nil))
	return out
}
