package gst

import (
	"errors"
	"fmt"
	"unicode/utf16"

	"github.com/sirgallo/gst/persist"
)

// persistBuildOps implements buildOps[uint64] over a *persist.File during
// construction. Allocation failures (disk growth, exhausted jump-table
// capacity) can't be threaded through buildOps's error-free signature, so
// they panic with allocFault and buildPersistentTree recovers it.
type persistBuildOps struct {
	f    *persist.File
	root uint64
}

type allocFault struct{ err error }

func (b *persistBuildOps) Root() uint64        { return b.root }
func (b *persistBuildOps) Null() uint64        { return 0 }
func (b *persistBuildOps) IsNull(h uint64) bool { return h == 0 }

func (b *persistBuildOps) NewLeaf(start int) uint64 {
	off, err := b.f.AllocNode(true, start, 0)
	if err != nil {
		panic(allocFault{err})
	}
	return off
}

func (b *persistBuildOps) NewInternal(start, end int) uint64 {
	off, err := b.f.AllocNode(false, start, end)
	if err != nil {
		panic(allocFault{err})
	}
	return off
}

func (b *persistBuildOps) GetChild(h uint64, sym Symbol) uint64 { return b.f.GetChild(h, sym) }

func (b *persistBuildOps) SetChild(h uint64, sym Symbol, child uint64) {
	if err := b.f.SetChild(h, sym, child); err != nil {
		panic(allocFault{err})
	}
}

func (b *persistBuildOps) Start(h uint64) int       { return b.f.NodeStart(h) }
func (b *persistBuildOps) End(h uint64) int         { return b.f.NodeEnd(h) }
func (b *persistBuildOps) SetStart(h uint64, s int) { b.f.SetNodeStart(h, s) }

func (b *persistBuildOps) SuffixLink(h uint64) uint64 { return b.f.SuffixLink(h) }

func (b *persistBuildOps) SetSuffixLink(h, target uint64) {
	if err := b.f.SetSuffixLink(h, target); err != nil {
		panic(allocFault{err})
	}
}

// persistFinalizeOps implements finalizeOps[uint64] over the same file.
type persistFinalizeOps struct {
	f    *persist.File
	root uint64
}

func (o *persistFinalizeOps) Root() uint64         { return o.root }
func (o *persistFinalizeOps) IsLeaf(h uint64) bool { return o.f.IsLeaf(h) }
func (o *persistFinalizeOps) End(h uint64) int     { return o.f.NodeEnd(h) }
func (o *persistFinalizeOps) Start(h uint64) int   { return o.f.NodeStart(h) }

func (o *persistFinalizeOps) Children(h uint64) []uint64 {
	refs := o.f.Children(h)
	out := make([]uint64, len(refs))
	for i, r := range refs {
		out[i] = r.Offset
	}
	return out
}

func (o *persistFinalizeOps) SetDepthFromRoot(h uint64, depth int) { o.f.SetDepthFromRoot(h, depth) }
func (o *persistFinalizeOps) DepthFromRoot(h uint64) int           { return o.f.DepthFromRoot(h) }
func (o *persistFinalizeOps) SetLeafCount(h uint64, n int)         { o.f.SetLeafCount(h, n) }

// persistNavigator implements Navigator[uint64] for finished queries,
// whether freshly built or reopened read-only from disk.
type persistNavigator struct {
	f    *persist.File
	root uint64
	n    int
}

func (v *persistNavigator) Root() uint64         { return v.root }
func (v *persistNavigator) Null() uint64         { return 0 }
func (v *persistNavigator) IsNull(h uint64) bool { return h == 0 }
func (v *persistNavigator) IsRoot(h uint64) bool { return h == v.root }

func (v *persistNavigator) edgeEnd(h uint64) int {
	end := v.f.NodeEnd(h)
	if end == OpenEnd {
		return v.n + 1
	}
	return end
}

func (v *persistNavigator) EdgeSymbolAt(h uint64, offset int) Symbol {
	return v.f.SymbolAt(v.f.NodeStart(h) + offset)
}

func (v *persistNavigator) EdgeLength(h uint64) int { return v.edgeEnd(h) - v.f.NodeStart(h) }
func (v *persistNavigator) EdgeStart(h uint64) int  { return v.f.NodeStart(h) }
func (v *persistNavigator) EdgeEnd(h uint64) int    { return v.edgeEnd(h) }

func (v *persistNavigator) DepthBeforeEdge(h uint64) int { return v.f.DepthFromRoot(h) }
func (v *persistNavigator) TotalDepth(h uint64) int      { return v.f.DepthFromRoot(h) + v.EdgeLength(h) }

func (v *persistNavigator) SuffixLink(h uint64) uint64 { return v.f.SuffixLink(h) }

func (v *persistNavigator) Child(h uint64, sym Symbol) uint64 { return v.f.GetChild(h, sym) }

func (v *persistNavigator) LeafCount(h uint64) int  { return v.f.LeafCount(h) }
func (v *persistNavigator) ChildCount(h uint64) int { return v.f.ChildCount(h) }

func (v *persistNavigator) LeafPositions(h uint64) []int { return v.f.LeafPositions(h) }
func (v *persistNavigator) AnyLeafPosition(h uint64) int { return v.f.AnyLeafPosition(h) }

func (v *persistNavigator) Children(h uint64) []uint64 {
	refs := v.f.Children(h)
	out := make([]uint64, len(refs))
	for i, r := range refs {
		out[i] = r.Offset
	}
	return out
}

func (v *persistNavigator) IncomingSymbol(h uint64) Symbol {
	return v.f.SymbolAt(v.f.NodeStart(h))
}

// persistTree is the memory-mapped Tree implementation.
type persistTree struct {
	f       *persist.File
	nav     *persistNavigator
	src     *mappedSource
	n       int
	deepest uint64
}

// BuildPersistent indexes text into a fresh file at opts.Path and returns
// a tree backed by that memory-mapped file.
func BuildPersistent(text string, opts PersistOpts) (Tree, error) {
	opts = opts.withDefaults()

	f, err := persist.Create(opts.Path, opts.InitialSize, opts.Logger)
	if err != nil {
		return nil, err
	}

	units := utf16.Encode([]rune(text))
	// Construction reads the text many times per phase; read it from the
	// Go heap during the build and only switch to the mapped view (via
	// the persistTree returned below) once WriteText has placed it in
	// the file.
	buildSrc := &InMemorySource{units: units}

	tree, err := buildPersistentTree(f, buildSrc, len(units))
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.WriteText(units); err != nil {
		f.Close()
		return nil, err
	}

	return tree, nil
}

func buildPersistentTree(f *persist.File, src TextSource, n int) (tree *persistTree, err error) {
	defer func() {
		if r := recover(); r != nil {
			if af, ok := r.(allocFault); ok {
				err = af.err
				if errors.Is(err, persist.ErrOutOfCapacity) {
					err = fmt.Errorf("%w: %w", ErrOutOfCapacity, err)
				}
				return
			}
			panic(r)
		}
	}()

	rootOff, allocErr := f.AllocNode(false, 0, 0)
	if allocErr != nil {
		return nil, allocErr
	}
	f.SetRoot(rootOff)

	b := &persistBuildOps{f: f, root: rootOff}
	if err := buildUkkonen[uint64](b, src); err != nil {
		return nil, err
	}

	fo := &persistFinalizeOps{f: f, root: rootOff}
	deepest := finalizeTree[uint64](fo)
	if deepest != 0 {
		f.SetDeepestOffset(deepest)
	}

	nav := &persistNavigator{f: f, root: rootOff, n: n}
	return &persistTree{f: f, nav: nav, src: &mappedSource{f: f}, n: n, deepest: deepest}, nil
}

// LoadPersistent opens an existing persistent file read-only, validating
// its header before returning a queryable tree.
func LoadPersistent(path string) (Tree, error) {
	f, err := persist.Open(path, nil)
	if err != nil {
		if errors.Is(err, persist.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		return nil, err
	}

	n := f.TextLength()
	nav := &persistNavigator{f: f, root: f.RootOffset(), n: n}
	return &persistTree{
		f:       f,
		nav:     nav,
		src:     &mappedSource{f: f},
		n:       n,
		deepest: f.DeepestOffset(),
	}, nil
}

func (t *persistTree) TextLength() int { return t.n }
func (t *persistTree) NodeCount() int  { return t.f.NodeCount() }

func (t *persistTree) LeafCount() int {
	return t.nav.LeafCount(t.nav.Root()) - 1
}

func (t *persistTree) MaxDepth() int {
	maxDepth := 0
	var walk func(h uint64, depth int)
	walk = func(h uint64, depth int) {
		if depth > maxDepth {
			maxDepth = depth
		}
		for _, c := range t.nav.Children(h) {
			walk(c, depth+1)
		}
	}
	walk(t.nav.Root(), 0)
	return maxDepth
}

func (t *persistTree) IsEmpty() bool { return t.n == 0 }

func (t *persistTree) Contains(pattern string) bool {
	return contains[uint64](t.nav, encodeQuery(pattern))
}

func (t *persistTree) FindAllOccurrences(pattern string) []int {
	return findAllOccurrences[uint64](t.nav, t.n, encodeQuery(pattern))
}

func (t *persistTree) CountOccurrences(pattern string) int {
	return countOccurrences[uint64](t.nav, t.n, encodeQuery(pattern))
}

func (t *persistTree) LongestRepeatedSubstring() string {
	return longestRepeatedSubstring[uint64](t.nav, t.src, t.deepest)
}

func (t *persistTree) LongestCommonSubstring(other string) string {
	substr, _, _ := t.LongestCommonSubstringInfo(other)
	return substr
}

func (t *persistTree) LongestCommonSubstringInfo(other string) (string, int, int) {
	return longestCommonSubstringInfo[uint64](t.nav, t.src, encodeQuery(other))
}

func (t *persistTree) FindAllLongestCommonSubstrings(other string) (string, []int, []int) {
	return findAllLongestCommonSubstrings[uint64](t.nav, t.src, encodeQuery(other))
}

func (t *persistTree) FindExactMatchAnchors(other string, minLength int) ([]Anchor, error) {
	if minLength < 1 {
		return nil, ErrInvalidInput
	}
	return findExactMatchAnchors[uint64](t.nav, t.src, encodeQuery(other), minLength), nil
}

func (t *persistTree) EnumerateSuffixes() func(yield func(string) bool) {
	return enumerateSuffixes[uint64](t.nav, t.src, t.n)
}

func (t *persistTree) GetAllSuffixes() []string {
	return collectAllSuffixes[uint64](t.nav, t.src, t.n, t.nav.LeafCount(t.nav.Root()))
}

func (t *persistTree) Traverse(v Visitor) { traverseTree[uint64](t.nav, v) }

func (t *persistTree) LogicalHash() [32]byte { return logicalHash[uint64](t.nav, t.src) }

// Close unmaps and closes the backing file. The persistTree must not be
// used afterward.
func (t *persistTree) Close() error { return t.f.Close() }

// ExportLogical serializes the tree to the layout-independent STLOGICA
// format.
func (t *persistTree) ExportLogical() []byte {
	return exportLogical[uint64](t.nav, t.src, t.n)
}
