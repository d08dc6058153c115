package gst

// Navigator is the only vocabulary the shared algorithms (search, LRS,
// LCS, anchors, enumerate, traverse) use. It is generic over a backend's
// node handle H so each backend compiles to specialized, monomorphized
// code with no virtual dispatch below this boundary — the heap backend
// instantiates it with H = *heapNode, the persistent backend with
// H = uint64 (a file offset).
type Navigator[H comparable] interface {
	Root() H
	Null() H
	IsNull(h H) bool
	IsRoot(h H) bool

	// EdgeSymbolAt returns the symbol at offset within the edge leading
	// into h (offset 0 is the edge's first symbol).
	EdgeSymbolAt(h H, offset int) Symbol
	EdgeLength(h H) int
	// EdgeStart and EdgeEnd are the edge's absolute text offsets (end
	// exclusive, resolved past any open-ended leaf sentinel).
	EdgeStart(h H) int
	EdgeEnd(h H) int
	DepthBeforeEdge(h H) int
	TotalDepth(h H) int
	SuffixLink(h H) H

	// Child looks up a child of h keyed by sym, returning Null() if absent.
	Child(h H, sym Symbol) H

	LeafCount(h H) int
	ChildCount(h H) int

	// LeafPositions returns every leaf position under h's subtree.
	LeafPositions(h H) []int
	// AnyLeafPosition returns one arbitrary leaf position under h,
	// letting callers spell an internal node's label from the text in O(1).
	AnyLeafPosition(h H) int

	// Children enumerates direct children in ascending symbol order, for
	// deterministic traversal and ordered suffix enumeration.
	Children(h H) []H
	IncomingSymbol(h H) Symbol
}
