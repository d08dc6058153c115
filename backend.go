package gst

// buildOps is the node-mutator capability the Ukkonen builder is
// parameterized over (spec §4.2 "Backend binding"): new_leaf, new_internal,
// set_child, set_suffix_link, and SetStart (an edge split moves the lower
// edge's start forward; no end is rewritten after creation), plus the
// minimal reads construction itself needs. Depth from root is set later,
// through finalizeOps.
// It is deliberately narrower than Navigator: Navigator is the read-only
// surface algorithms use against a finished tree; buildOps is the raw
// mutation surface the builder uses while the tree is still being grown.
type buildOps[H comparable] interface {
	Root() H
	Null() H
	IsNull(h H) bool

	NewLeaf(start int) H
	NewInternal(start, end int) H

	GetChild(h H, sym Symbol) H
	SetChild(h H, sym Symbol, child H)

	Start(h H) int
	End(h H) int
	SetStart(h H, start int)

	SuffixLink(h H) H
	SetSuffixLink(h H, target H)
}

// finalizeOps is the capability the post-construction bottom-up pass uses
// to cache per-node depth, leaf counts, and the deepest internal node.
type finalizeOps[H comparable] interface {
	Root() H
	IsLeaf(h H) bool
	End(h H) int
	Start(h H) int
	Children(h H) []H
	SetDepthFromRoot(h H, depth int)
	DepthFromRoot(h H) int
	SetLeafCount(h H, n int)
}
