package gst

import "sort"

// locate descends from the root matching pattern symbol by symbol and
// returns the node at the bottom of the edge where the match ends. Every
// leaf under that node's subtree is an occurrence of pattern, since the
// edge traversed so far is a common prefix of all of them.
func locate[H comparable](nav Navigator[H], pattern []Symbol) (node H, ok bool) {
	node = nav.Root()
	i := 0
	for i < len(pattern) {
		child := nav.Child(node, pattern[i])
		if nav.IsNull(child) {
			var zero H
			return zero, false
		}

		elen := nav.EdgeLength(child)
		j := 0
		for j < elen && i < len(pattern) {
			if nav.EdgeSymbolAt(child, j) != pattern[i] {
				var zero H
				return zero, false
			}
			j++
			i++
		}
		node = child
	}
	return node, true
}

func contains[H comparable](nav Navigator[H], pattern []Symbol) bool {
	if len(pattern) == 0 {
		return true
	}
	_, ok := locate(nav, pattern)
	return ok
}

func countOccurrences[H comparable](nav Navigator[H], n int, pattern []Symbol) int {
	if len(pattern) == 0 {
		return n
	}
	node, ok := locate(nav, pattern)
	if !ok {
		return 0
	}
	return nav.LeafCount(node)
}

func findAllOccurrences[H comparable](nav Navigator[H], n int, pattern []Symbol) []int {
	if len(pattern) == 0 {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}

	node, ok := locate(nav, pattern)
	if !ok {
		return nil
	}

	positions := nav.LeafPositions(node)
	sort.Ints(positions)
	return positions
}
