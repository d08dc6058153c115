package persist

import "fmt"

// allocRaw is the shared bump-pointer allocator every node and
// child-entry record goes through: it grows the file as needed and
// promotes compact to large the moment an allocation would cross the
// 32-bit compact window, recording the transition offset once.
func (pf *File) allocRaw(compactSize, largeSize int64) (offset uint64, compact bool, err error) {
	compact = pf.zoneTransitionOffset == 0
	size := compactSize

	if compact && pf.nodeAllocNext+uint64(compactSize) > uint64(compactWindow) {
		pf.zoneTransitionOffset = pf.nodeAllocNext
		compact = false
	}
	if !compact {
		size = largeSize
	}

	offset = pf.nodeAllocNext
	if err = pf.ensureCapacity(int64(offset) + size); err != nil {
		return 0, false, err
	}

	pf.nodeAllocNext = offset + uint64(size)
	if compact {
		pf.compactOK = true
	} else {
		pf.largeOK = true
	}
	return offset, compact, nil
}

// allocEntry appends one child-entry record (key, child offset, next
// offset), in whichever width the current zone uses.
func (pf *File) allocEntry(key int32, child, next uint64) (uint64, error) {
	offset, compact, err := pf.allocRaw(compactEntrySize, largeEntrySize)
	if err != nil {
		return 0, err
	}

	childRef, err := pf.makeRefAt(offset, compact, child)
	if err != nil {
		return 0, err
	}
	nextRef, err := pf.makeRefAt(offset, compact, next)
	if err != nil {
		return 0, err
	}

	b := pf.bytes()
	base := int(offset)
	if compact {
		putInt32(b, base, key)
		putUint32(b, base+4, uint32(childRef))
		putUint32(b, base+8, uint32(nextRef))
	} else {
		putInt64(b, base, int64(key))
		putUint64(b, base+8, childRef)
		putUint64(b, base+16, nextRef)
	}
	return offset, nil
}

func (pf *File) readEntry(offset uint64) (key int32, child, next uint64) {
	compact := pf.isCompactZone(offset)
	b := pf.bytes()
	base := int(offset)
	if compact {
		return getInt32(b, base), uint64(getUint32(b, base+4)), uint64(getUint32(b, base+8))
	}
	return int32(getInt64(b, base)), getUint64(b, base+8), getUint64(b, base+16)
}

// makeRef resolves what value a reference field at fromOffset should
// store for target: the real offset directly when it fits, or a
// jump-table indirection when a compact (32-bit) field must reach into
// the large zone.
func (pf *File) makeRef(fromOffset, target uint64) (uint64, error) {
	return pf.makeRefAt(fromOffset, pf.isCompactZone(fromOffset), target)
}

func (pf *File) makeRefAt(fromOffset uint64, fromCompact bool, target uint64) (uint64, error) {
	if target == noRef {
		return noRef, nil
	}
	if fromCompact && !pf.isCompactZone(target) {
		return pf.allocJumpEntry(target)
	}
	return target, nil
}

// resolveRef dereferences a stored reference, following one level of
// jump-table indirection if ref falls inside the jump-table arena.
func (pf *File) resolveRef(ref uint64) uint64 {
	if ref == noRef {
		return noRef
	}
	if ref >= pf.jumpTableOffset && ref < pf.jumpTableNext {
		return getUint64(pf.bytes(), int(ref))
	}
	return ref
}

// allocJumpEntry appends a widened 64-bit offset to the jump-table arena,
// which always sits within the first 32-bit window so a compact node can
// reach it directly.
func (pf *File) allocJumpEntry(target uint64) (uint64, error) {
	if pf.jumpTableNext+jumpEntrySize > pf.jumpTableOffset+pf.jumpTableCap {
		return 0, fmt.Errorf("%w: jump table exhausted", ErrOutOfCapacity)
	}
	offset := pf.jumpTableNext
	putUint64(pf.bytes(), int(offset), target)
	pf.jumpTableNext += jumpEntrySize
	return offset, nil
}
