package persist

// Compact record layout (28 bytes): start u32, end u32 (openEndMarker for
// a leaf), depth_from_root u32, suffix_link u32 offset, children_head u32
// offset, child_count u16, leaf_count+1 u32, 2 bytes padding.
//
// Large record layout (40 bytes): same start/end/depth_from_root as u32
// (bounded by text length, not file offset), suffix_link u64 offset,
// children_head u64 offset, child_count u16, leaf_count+1 u32, 6 bytes
// padding.
const (
	cStart, cEnd, cDepth, cSuffix, cChildren, cChildCount, cLeafCount = 0, 4, 8, 12, 16, 20, 22
	lStart, lEnd, lDepth, lSuffix, lChildren, lChildCount, lLeafCount = 0, 4, 8, 12, 20, 28, 30
)

// isCompactZone reports whether the node record at offset uses the
// compact (28-byte) layout: true for every offset before the zone
// transition, or for every offset at all if no transition has happened.
func (pf *File) isCompactZone(offset uint64) bool {
	return pf.zoneTransitionOffset == 0 || offset < pf.zoneTransitionOffset
}

func (pf *File) recordSize(offset uint64) int64 {
	if pf.isCompactZone(offset) {
		return compactNodeSize
	}
	return largeNodeSize
}

// AllocNode reserves a fresh node record, promoting to the large format
// first if this allocation would cross the 32-bit compact window, and
// zero-initializes every field except start/end (suffix link, children
// head, child count, and leaf count are filled in as construction
// progresses).
func (pf *File) AllocNode(isLeaf bool, start, end int) (uint64, error) {
	offset, compact, err := pf.allocRaw(compactNodeSize, largeNodeSize)
	if err != nil {
		return 0, err
	}

	b := pf.bytes()
	base := int(offset)

	endVal := uint32(end)
	if isLeaf {
		endVal = openEndMarker
	}

	if compact {
		putUint32(b, base+cStart, uint32(start))
		putUint32(b, base+cEnd, endVal)
		putUint32(b, base+cDepth, 0)
		putUint32(b, base+cSuffix, uint32(noRef))
		putUint32(b, base+cChildren, uint32(noRef))
		putUint16(b, base+cChildCount, 0)
		putUint32(b, base+cLeafCount, 0)
	} else {
		putUint32(b, base+lStart, uint32(start))
		putUint32(b, base+lEnd, endVal)
		putUint32(b, base+lDepth, 0)
		putUint64(b, base+lSuffix, noRef)
		putUint64(b, base+lChildren, noRef)
		putUint16(b, base+lChildCount, 0)
		putUint32(b, base+lLeafCount, 0)
	}

	pf.nodeCount++
	return offset, nil
}

func (pf *File) NodeStart(offset uint64) int {
	return int(getUint32(pf.bytes(), int(offset)+cStart))
}

func (pf *File) NodeEnd(offset uint64) int {
	compact := pf.isCompactZone(offset)
	off := cEnd
	if !compact {
		off = lEnd
	}
	v := getUint32(pf.bytes(), int(offset)+off)
	if v == openEndMarker {
		return -1 // OpenEnd
	}
	return int(v)
}

func (pf *File) SetNodeStart(offset uint64, start int) {
	off := cStart
	if !pf.isCompactZone(offset) {
		off = lStart
	}
	putUint32(pf.bytes(), int(offset)+off, uint32(start))
}

func (pf *File) DepthFromRoot(offset uint64) int {
	off := cDepth
	if !pf.isCompactZone(offset) {
		off = lDepth
	}
	return int(getUint32(pf.bytes(), int(offset)+off))
}

func (pf *File) SetDepthFromRoot(offset uint64, depth int) {
	off := cDepth
	if !pf.isCompactZone(offset) {
		off = lDepth
	}
	putUint32(pf.bytes(), int(offset)+off, uint32(depth))
}

func (pf *File) LeafCount(offset uint64) int {
	off := cLeafCount
	if !pf.isCompactZone(offset) {
		off = lLeafCount
	}
	v := getUint32(pf.bytes(), int(offset)+off)
	if v == 0 {
		return 0
	}
	return int(v - 1)
}

func (pf *File) SetLeafCount(offset uint64, n int) {
	off := cLeafCount
	if !pf.isCompactZone(offset) {
		off = lLeafCount
	}
	putUint32(pf.bytes(), int(offset)+off, uint32(n+1))
}

func (pf *File) ChildCount(offset uint64) int {
	off := cChildCount
	if !pf.isCompactZone(offset) {
		off = lChildCount
	}
	return int(getUint16(pf.bytes(), int(offset)+off))
}

func (pf *File) setChildCount(offset uint64, n int) {
	off := cChildCount
	if !pf.isCompactZone(offset) {
		off = lChildCount
	}
	putUint16(pf.bytes(), int(offset)+off, uint16(n))
}

// SuffixLink resolves the stored reference, following a jump-table
// indirection transparently if the link crosses from the compact zone
// into the large zone.
func (pf *File) SuffixLink(offset uint64) uint64 {
	return pf.resolveRef(pf.rawSuffixLink(offset))
}

func (pf *File) rawSuffixLink(offset uint64) uint64 {
	if pf.isCompactZone(offset) {
		return uint64(getUint32(pf.bytes(), int(offset)+cSuffix))
	}
	return getUint64(pf.bytes(), int(offset)+lSuffix)
}

// SetSuffixLink stores a reference to target from a node at offset,
// allocating a jump-table entry when a compact node must reference a
// large-zone target.
func (pf *File) SetSuffixLink(offset, target uint64) error {
	ref, err := pf.makeRef(offset, target)
	if err != nil {
		return err
	}
	if pf.isCompactZone(offset) {
		putUint32(pf.bytes(), int(offset)+cSuffix, uint32(ref))
	} else {
		putUint64(pf.bytes(), int(offset)+lSuffix, ref)
	}
	return nil
}

func (pf *File) rawChildrenHead(offset uint64) uint64 {
	if pf.isCompactZone(offset) {
		return uint64(getUint32(pf.bytes(), int(offset)+cChildren))
	}
	return getUint64(pf.bytes(), int(offset)+lChildren)
}

func (pf *File) setChildrenHead(offset, head uint64) error {
	ref, err := pf.makeRef(offset, head)
	if err != nil {
		return err
	}
	if pf.isCompactZone(offset) {
		putUint32(pf.bytes(), int(offset)+cChildren, uint32(ref))
	} else {
		putUint64(pf.bytes(), int(offset)+lChildren, ref)
	}
	return nil
}

// GetChild scans the node's child-entry linked list for sym.
func (pf *File) GetChild(offset uint64, sym int32) uint64 {
	entry := pf.resolveRef(pf.rawChildrenHead(offset))
	for entry != noRef {
		key, child, next := pf.readEntry(entry)
		if key == sym {
			return pf.resolveRef(child)
		}
		entry = pf.resolveRef(next)
	}
	return noRef
}

// SetChild points the node's entry for sym at child. An existing entry for
// sym is overwritten in place (an edge split re-keys the parent's entry to
// the new internal node); otherwise a new child-entry record is linked in
// at the head of the node's list, so the list runs from the most recently
// added entry to the oldest.
func (pf *File) SetChild(offset uint64, sym int32, child uint64) error {
	for entry := pf.resolveRef(pf.rawChildrenHead(offset)); entry != noRef; {
		key, _, next := pf.readEntry(entry)
		if key != sym {
			entry = pf.resolveRef(next)
			continue
		}
		ref, err := pf.makeRefAt(entry, pf.isCompactZone(entry), child)
		if err == nil && pf.isCompactZone(entry) {
			putUint32(pf.bytes(), int(entry)+4, uint32(ref))
		} else if err == nil {
			putUint64(pf.bytes(), int(entry)+8, ref)
		}
		return err
	}

	head := pf.rawChildrenHead(offset)
	entry, err := pf.allocEntry(sym, child, head)
	if err != nil {
		return err
	}
	if err := pf.setChildrenHead(offset, entry); err != nil {
		return err
	}
	pf.setChildCount(offset, pf.ChildCount(offset)+1)
	return nil
}

// Children returns every (symbol, child-offset) pair attached to offset,
// ascending by symbol. The linked list itself, as GetChild walks it from
// rawChildrenHead, runs from the most recently added entry to the oldest.
func (pf *File) Children(offset uint64) []ChildRef {
	var out []ChildRef
	entry := pf.resolveRef(pf.rawChildrenHead(offset))
	for entry != noRef {
		key, child, next := pf.readEntry(entry)
		out = append(out, ChildRef{Symbol: key, Offset: pf.resolveRef(child)})
		entry = pf.resolveRef(next)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Symbol > out[j].Symbol; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// ChildRef is one (symbol, child node offset) pair.
type ChildRef struct {
	Symbol int32
	Offset uint64
}
