package gst

// buildUkkonen constructs a generalized suffix tree over src in one
// left-to-right sweep, following Ukkonen's on-line algorithm (spec §4.2).
// It is written once against the buildOps capability and instantiated by
// each backend with its own node-handle type.
func buildUkkonen[H comparable](ops buildOps[H], src TextSource) error {
	n := src.Len()
	total := n + 1 // real text plus one appended TERMINATOR phase

	root := ops.Root()

	symbolAt := func(i int) Symbol {
		if i < n {
			return src.SymbolAt(i)
		}
		return TERMINATOR
	}

	edgeLength := func(h H, currentEnd int) int {
		end := ops.End(h)
		if end == OpenEnd {
			end = currentEnd + 1
		}
		return end - ops.Start(h)
	}

	activeNode := root
	var activeEdge Symbol
	activeLength := 0
	remainder := 0

	for i := 0; i < total; i++ {
		remainder++
		lastCreated := ops.Null()

		for remainder > 0 {
			if activeLength == 0 {
				activeEdge = symbolAt(i)
			}

			next := ops.GetChild(activeNode, activeEdge)

			if !ops.IsNull(next) {
				elen := edgeLength(next, i)
				if activeLength >= elen {
					activeNode = next
					activeLength -= elen
					activeEdge = symbolAt(i - activeLength)
					continue
				}
			}

			switch {
			case ops.IsNull(next):
				// Rule 2: no child starting with this symbol — attach a
				// fresh leaf directly under the active node.
				leaf := ops.NewLeaf(i)
				ops.SetChild(activeNode, activeEdge, leaf)

				if !ops.IsNull(lastCreated) {
					ops.SetSuffixLink(lastCreated, activeNode)
					lastCreated = ops.Null()
				}

			case symbolAt(ops.Start(next)+activeLength) == symbolAt(i):
				// Rule 3: the symbol is already implicit on this edge.
				if !ops.IsNull(lastCreated) {
					ops.SetSuffixLink(lastCreated, activeNode)
					lastCreated = ops.Null()
				}
				activeLength++
				goto nextPhase // show-stopper: remainder carries over untouched

			default:
				// Rule 2: the edge diverges partway through — split it.
				splitEnd := ops.Start(next) + activeLength
				split := ops.NewInternal(ops.Start(next), splitEnd)
				ops.SetChild(activeNode, activeEdge, split)

				leaf := ops.NewLeaf(i)
				ops.SetChild(split, symbolAt(i), leaf)

				ops.SetStart(next, splitEnd)
				ops.SetChild(split, symbolAt(splitEnd), next)

				if !ops.IsNull(lastCreated) {
					ops.SetSuffixLink(lastCreated, split)
				}
				lastCreated = split
			}

			remainder--

			if activeNode == root && activeLength > 0 {
				activeLength--
				activeEdge = symbolAt(i - remainder + 1)
			} else if activeNode != root {
				sl := ops.SuffixLink(activeNode)
				if ops.IsNull(sl) {
					activeNode = root
				} else {
					activeNode = sl
				}
			}
		}
	nextPhase:
	}

	return nil
}

// finalizeTree runs the post-construction bottom-up pass (spec §4.2):
// leaf counts propagate from every leaf (count 1) up through internal
// nodes, depth-from-root is assigned top-down first since leaf-count
// aggregation needs each node's own total depth to track the deepest
// internal non-root node (the longest repeated substring, in O(1)).
// Returns the deepest internal non-root handle, or the null handle if the
// text contains no repeated substring.
func finalizeTree[H comparable](ops finalizeOps[H]) H {
	root := ops.Root()
	ops.SetDepthFromRoot(root, 0)

	// Top-down: propagate depth-from-root to every node before it is used
	// to pick the deepest internal node in the bottom-up pass below.
	type frame struct{ h H }
	stack := []frame{{root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		parentDepth := ops.DepthFromRoot(top.h)
		parentEdgeLen := 0
		if !ops.IsLeaf(top.h) {
			parentEdgeLen = ops.End(top.h) - ops.Start(top.h)
		}
		childDepth := parentDepth
		if top.h != root {
			childDepth = parentDepth + parentEdgeLen
		}

		for _, c := range ops.Children(top.h) {
			ops.SetDepthFromRoot(c, childDepth)
			stack = append(stack, frame{c})
		}
	}

	var deepest H
	var deepestDepth = -1
	var zero H

	var postOrder func(h H) int
	postOrder = func(h H) int {
		if ops.IsLeaf(h) {
			ops.SetLeafCount(h, 1)
			return 1
		}

		total := 0
		for _, c := range ops.Children(h) {
			total += postOrder(c)
		}
		ops.SetLeafCount(h, total)

		if h != root {
			depth := ops.DepthFromRoot(h) + (ops.End(h) - ops.Start(h))
			if depth > deepestDepth {
				deepestDepth = depth
				deepest = h
			}
		}

		return total
	}
	postOrder(root)

	if deepestDepth < 0 {
		return zero
	}
	return deepest
}
