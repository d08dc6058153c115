package gst

// heapNavigator implements Navigator[*heapNode] over a finished heap tree.
// It holds the TextSource because edges are stored as (start, end) offsets
// into the text rather than copied symbol runs.
type heapNavigator struct {
	root *heapNode
	src  TextSource
	n    int
}

func newHeapNavigator(root *heapNode, src TextSource) *heapNavigator {
	return &heapNavigator{root: root, src: src, n: src.Len()}
}

func (v *heapNavigator) Root() *heapNode     { return v.root }
func (v *heapNavigator) Null() *heapNode     { return nil }
func (v *heapNavigator) IsNull(h *heapNode) bool { return h == nil }
func (v *heapNavigator) IsRoot(h *heapNode) bool { return h == v.root }

func (v *heapNavigator) symbolAt(i int) Symbol {
	if i == v.n {
		return TERMINATOR
	}
	return v.src.SymbolAt(i)
}

func (v *heapNavigator) EdgeSymbolAt(h *heapNode, offset int) Symbol {
	return v.symbolAt(h.start + offset)
}

func (v *heapNavigator) EdgeLength(h *heapNode) int { return h.edgeLength(v.n) }

func (v *heapNavigator) EdgeStart(h *heapNode) int { return h.start }

func (v *heapNavigator) EdgeEnd(h *heapNode) int {
	if h.end == OpenEnd {
		return v.n + 1
	}
	return h.end
}

func (v *heapNavigator) DepthBeforeEdge(h *heapNode) int { return h.depthFromRoot }

func (v *heapNavigator) TotalDepth(h *heapNode) int { return h.depthFromRoot + h.edgeLength(v.n) }

func (v *heapNavigator) SuffixLink(h *heapNode) *heapNode { return h.suffixLink }

func (v *heapNavigator) Child(h *heapNode, sym Symbol) *heapNode { return h.getChild(sym) }

func (v *heapNavigator) LeafCount(h *heapNode) int { return h.leafCount }
func (v *heapNavigator) ChildCount(h *heapNode) int { return h.childCount() }

// suffixPosition recovers the text index a leaf's suffix starts at: its
// edge start minus the depth already matched to reach it, fixed by the
// finalize pass's depth_from_root assignment.
func (v *heapNavigator) suffixPosition(leaf *heapNode) int {
	return leaf.start - leaf.depthFromRoot
}

func (v *heapNavigator) LeafPositions(h *heapNode) []int {
	out := make([]int, 0, h.leafCount)
	var walk func(*heapNode)
	walk = func(node *heapNode) {
		if node.isLeaf() {
			out = append(out, v.suffixPosition(node))
			return
		}
		for _, c := range node.children() {
			walk(c)
		}
	}
	walk(h)
	return out
}

func (v *heapNavigator) AnyLeafPosition(h *heapNode) int {
	node := h
	for !node.isLeaf() {
		node = node.children()[0]
	}
	return v.suffixPosition(node)
}

func (v *heapNavigator) Children(h *heapNode) []*heapNode { return h.children() }

func (v *heapNavigator) IncomingSymbol(h *heapNode) Symbol { return h.incomingSym }
