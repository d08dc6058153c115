package gst

// heapBuildOps implements buildOps[*heapNode]. It owns the root of the
// tree under construction. A leaf's edge start is not yet its suffix
// position at creation time — depth_from_root is only assigned by the
// finalize pass below, and the suffix a leaf represents is recovered
// navigator-side as edge_start − depth_from_root once that pass has run.
type heapBuildOps struct {
	root *heapNode
}

func newHeapBuildOps() *heapBuildOps {
	return &heapBuildOps{root: newHeapInternal(0, 0, 0)}
}

func (b *heapBuildOps) Root() *heapNode    { return b.root }
func (b *heapBuildOps) Null() *heapNode    { return nil }
func (b *heapBuildOps) IsNull(h *heapNode) bool { return h == nil }

func (b *heapBuildOps) NewLeaf(start int) *heapNode {
	return newHeapLeaf(start, 0)
}

func (b *heapBuildOps) NewInternal(start, end int) *heapNode {
	return newHeapInternal(start, end, 0)
}

func (b *heapBuildOps) GetChild(h *heapNode, sym Symbol) *heapNode { return h.getChild(sym) }
func (b *heapBuildOps) SetChild(h *heapNode, sym Symbol, child *heapNode) { h.setChild(sym, child) }

func (b *heapBuildOps) Start(h *heapNode) int       { return h.start }
func (b *heapBuildOps) End(h *heapNode) int         { return h.end }
func (b *heapBuildOps) SetStart(h *heapNode, s int) { h.start = s }

func (b *heapBuildOps) SuffixLink(h *heapNode) *heapNode        { return h.suffixLink }
func (b *heapBuildOps) SetSuffixLink(h, target *heapNode) { h.suffixLink = target }

// heapFinalizeOps implements finalizeOps[*heapNode] over the same tree.
type heapFinalizeOps struct {
	root *heapNode
}

func (f *heapFinalizeOps) Root() *heapNode          { return f.root }
func (f *heapFinalizeOps) IsLeaf(h *heapNode) bool  { return h.isLeaf() }
func (f *heapFinalizeOps) End(h *heapNode) int       { return h.end }
func (f *heapFinalizeOps) Start(h *heapNode) int     { return h.start }
func (f *heapFinalizeOps) Children(h *heapNode) []*heapNode { return h.children() }

func (f *heapFinalizeOps) SetDepthFromRoot(h *heapNode, depth int) { h.depthFromRoot = depth }
func (f *heapFinalizeOps) DepthFromRoot(h *heapNode) int           { return h.depthFromRoot }
func (f *heapFinalizeOps) SetLeafCount(h *heapNode, n int)         { h.leafCount = n }

// buildHeapTree runs Ukkonen's construction and the finalize passes over
// src, returning the finished root and the deepest internal non-root node
// (nil if the text has no repeated substring), used to answer
// LongestRepeatedSubstring in O(1).
func buildHeapTree(src TextSource) (root, deepest *heapNode, err error) {
	b := newHeapBuildOps()
	if err := buildUkkonen[*heapNode](b, src); err != nil {
		return nil, nil, err
	}
	f := &heapFinalizeOps{root: b.root}
	deepest = finalizeTree[*heapNode](f)
	return b.root, deepest, nil
}
