package persist

// IsLeaf reports whether offset has no children — the persistent format
// has no separate leaf/internal tag; childlessness is the discriminant,
// same as the heap backend.
func (pf *File) IsLeaf(offset uint64) bool { return pf.ChildCount(offset) == 0 }

// suffixPosition recovers the text index a leaf's suffix starts at. A
// leaf's edge start is an absolute text offset, not a suffix number: the
// path leading to it already matched depth_from_root characters of that
// same suffix, so the suffix itself starts depth_from_root symbols
// earlier in the text.
func (pf *File) suffixPosition(leaf uint64) int {
	return pf.NodeStart(leaf) - pf.DepthFromRoot(leaf)
}

// AnyLeafPosition walks down the first child at each level until it
// reaches a leaf, returning that leaf's suffix position, letting callers
// spell out an internal node's label in O(1).
func (pf *File) AnyLeafPosition(offset uint64) int {
	cur := offset
	for !pf.IsLeaf(cur) {
		children := pf.Children(cur)
		cur = children[0].Offset
	}
	return pf.suffixPosition(cur)
}

// LeafPositions collects every leaf position under offset's subtree.
func (pf *File) LeafPositions(offset uint64) []int {
	var out []int
	var walk func(uint64)
	walk = func(h uint64) {
		if pf.IsLeaf(h) {
			out = append(out, pf.suffixPosition(h))
			return
		}
		for _, c := range pf.Children(h) {
			walk(c.Offset)
		}
	}
	walk(offset)
	return out
}
