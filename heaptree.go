package gst

import "unicode/utf8"

// heapTree is the in-memory Tree implementation: construction and every
// query run entirely against Go-heap-allocated nodes, with no file or
// mmap involved. It is the default backend for BuildInMemory and the one
// every shared algorithm (search, streaming, traverse, serializer) is
// first exercised against.
type heapTree struct {
	root    *heapNode
	deepest *heapNode
	src     TextSource
	nav     *heapNavigator

	n         int
	leafCount int
	nodeCount int
	maxDepth  int
}

// BuildInMemory indexes text with the heap backend. It does not validate
// text: bytes that are not valid UTF-8 are indexed as U+FFFD, as in any Go
// string-to-rune conversion. Use TryBuildInMemory to have malformed input
// reported as an error instead.
func BuildInMemory(text string) (Tree, error) {
	return buildInMemoryTree(text)
}

// TryBuildInMemory is BuildInMemory with input checking: malformed UTF-8
// input, or a panic during construction, is reported as ErrInvalidInput.
func TryBuildInMemory(text string) (tree Tree, err error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidInput
	}
	defer func() {
		if r := recover(); r != nil {
			tree, err = nil, ErrInvalidInput
		}
	}()
	return buildInMemoryTree(text)
}

func buildInMemoryTree(text string) (Tree, error) {
	src := NewInMemorySource(text)

	root, deepest, err := buildHeapTree(src)
	if err != nil {
		return nil, err
	}

	nav := newHeapNavigator(root, src)
	nodeCount, maxDepth := countHeapNodes(root)

	return &heapTree{
		root:      root,
		deepest:   deepest,
		src:       src,
		nav:       nav,
		n:         src.Len(),
		leafCount: root.leafCount,
		nodeCount: nodeCount,
		maxDepth:  maxDepth,
	}, nil
}

func countHeapNodes(root *heapNode) (nodeCount, maxDepth int) {
	var walk func(h *heapNode, depth int)
	walk = func(h *heapNode, depth int) {
		nodeCount++
		if depth > maxDepth {
			maxDepth = depth
		}
		for _, c := range h.children() {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return nodeCount, maxDepth
}

func (t *heapTree) TextLength() int { return t.n }
func (t *heapTree) NodeCount() int  { return t.nodeCount }

// LeafCount excludes the terminator-only leaf representing the empty
// suffix, so it counts exactly the text's non-empty suffixes.
func (t *heapTree) LeafCount() int { return t.leafCount - 1 }

func (t *heapTree) MaxDepth() int { return t.maxDepth }
func (t *heapTree) IsEmpty() bool { return t.n == 0 }

func (t *heapTree) Contains(pattern string) bool {
	return contains[*heapNode](t.nav, encodeQuery(pattern))
}

func (t *heapTree) FindAllOccurrences(pattern string) []int {
	return findAllOccurrences[*heapNode](t.nav, t.n, encodeQuery(pattern))
}

func (t *heapTree) CountOccurrences(pattern string) int {
	return countOccurrences[*heapNode](t.nav, t.n, encodeQuery(pattern))
}

func (t *heapTree) LongestRepeatedSubstring() string {
	return longestRepeatedSubstring[*heapNode](t.nav, t.src, t.deepest)
}

func (t *heapTree) LongestCommonSubstring(other string) string {
	substr, _, _ := t.LongestCommonSubstringInfo(other)
	return substr
}

func (t *heapTree) LongestCommonSubstringInfo(other string) (string, int, int) {
	return longestCommonSubstringInfo[*heapNode](t.nav, t.src, encodeQuery(other))
}

func (t *heapTree) FindAllLongestCommonSubstrings(other string) (string, []int, []int) {
	return findAllLongestCommonSubstrings[*heapNode](t.nav, t.src, encodeQuery(other))
}

func (t *heapTree) FindExactMatchAnchors(other string, minLength int) ([]Anchor, error) {
	if minLength < 1 {
		return nil, ErrInvalidInput
	}
	return findExactMatchAnchors[*heapNode](t.nav, t.src, encodeQuery(other), minLength), nil
}

func (t *heapTree) EnumerateSuffixes() func(yield func(string) bool) {
	return enumerateSuffixes[*heapNode](t.nav, t.src, t.n)
}

func (t *heapTree) GetAllSuffixes() []string {
	return collectAllSuffixes[*heapNode](t.nav, t.src, t.n, t.leafCount)
}

func (t *heapTree) Traverse(v Visitor) {
	traverseTree[*heapNode](t.nav, v)
}

func (t *heapTree) LogicalHash() [32]byte {
	return logicalHash[*heapNode](t.nav, t.src)
}

// Close is a no-op: the heap backend holds nothing but Go-managed memory.
func (t *heapTree) Close() error { return nil }

// ExportLogical serializes the tree to the layout-independent STLOGICA
// format (see serializer.go), e.g. to hand a heap-built tree to
// ImportLogical and get back an equivalent freestanding tree without
// going through the persistent backend at all.
func (t *heapTree) ExportLogical() []byte {
	return exportLogical[*heapNode](t.nav, t.src, t.n)
}

// ImportLogical decodes a tree previously produced by ExportLogical (by
// either backend) into a heap-backed Tree.
func ImportLogical(data []byte) (Tree, error) {
	root, src, err := importLogical(data)
	if err != nil {
		return nil, err
	}

	nav := newHeapNavigator(root, src)
	nodeCount, maxDepth := countHeapNodes(root)

	return &heapTree{
		root:      root,
		deepest:   findDeepestInternal(root),
		src:       src,
		nav:       nav,
		n:         src.Len(),
		leafCount: root.leafCount,
		nodeCount: nodeCount,
		maxDepth:  maxDepth,
	}, nil
}

// findDeepestInternal re-derives the cached LRS node after a logical
// import, since the format doesn't carry it explicitly.
func findDeepestInternal(root *heapNode) *heapNode {
	var deepest *heapNode
	deepestDepth := -1

	var walk func(h *heapNode)
	walk = func(h *heapNode) {
		if !h.isLeaf() && h != root {
			depth := h.depthFromRoot + (h.end - h.start)
			if depth > deepestDepth {
				deepestDepth = depth
				deepest = h
			}
		}
		for _, c := range h.children() {
			walk(c)
		}
	}
	walk(root)
	return deepest
}
