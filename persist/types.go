// Package persist implements the on-disk, memory-mapped backend for a
// generalized suffix tree: a stable binary format with compact (32-bit
// offset) and large (64-bit offset) node records, promoted mid-build once
// the file crosses the 32-bit addressing window. It knows nothing about
// Ukkonen's algorithm or the gst package's Tree/Navigator types — it
// exposes raw offsets and byte records, and gst/persisttree.go wraps it.
package persist

import "errors"

// Sentinel errors. gst wraps these with errors.Is-compatible context.
var (
	ErrFormat        = errors.New("persist: malformed file")
	ErrOutOfCapacity = errors.New("persist: exhausted offset space")
	ErrClosed        = errors.New("persist: operation on a closed file")
)

// Format versions, written to the header and accepted by the loader.
const (
	VersionLargeOnly uint32 = 3 // every node record is large (40 bytes)
	VersionCompact   uint32 = 4 // every node record is compact (28 bytes); fits entirely in the 32-bit window
	VersionHybrid    uint32 = 5 // compact nodes, then large nodes after a zone transition
)

const magic = "GSTREE01"

// headerSize is the fixed reserved prefix at offset 0. Anything beyond
// the fields below, up to headerSize, is zero-filled.
const headerSize = 128

// Byte offsets of header fields.
const (
	hdrMagicOff          = 0
	hdrVersionOff        = 8
	hdrRootOff           = 16
	hdrTextOff           = 24
	hdrTextLenOff        = 32
	hdrNodeCountOff      = 40
	hdrTotalSizeOff      = 48
	hdrDeepestOff        = 56
	hdrZoneTransitionOff = 64
	hdrJumpTableOff      = 72
	hdrJumpTableNextOff  = 80
	hdrNodeAllocOff      = 88
)

// compactWindow is the size of the 32-bit offset space a compact-zone
// node can directly address. Once the node-zone bump pointer would cross
// it, the builder transitions to large records.
const compactWindow = int64(1) << 32

// Node record widths.
const (
	compactNodeSize = 28
	largeNodeSize   = 40

	compactEntrySize = 12 // child-entry record: key, child offset, next offset
	largeEntrySize   = 24

	jumpEntrySize = 8 // one widened (always 64-bit) offset
)

// noRef is the null-offset sentinel for suffix links, children heads, and
// child-entry next pointers: offset 0 always falls inside the header, so
// no real record is ever allocated there.
const noRef uint64 = 0

// openEndMarker flags a leaf's open-ended edge in the fixed-width (u32,
// even in large records — bounded by text length, not file offset) end
// field.
const openEndMarker uint32 = 0xFFFFFFFF

// initialJumpTableCapacity bounds the jump-table arena placed right after
// the header, so its entries are always reachable via a 32-bit offset
// even from a compact-zone node. The arena is fixed-size, not grown:
// allocJumpEntry in write.go returns ErrOutOfCapacity once it fills,
// since relocating it after node allocation has begun would invalidate
// every already-written indirection.
const initialJumpTableCapacity = 4096 * jumpEntrySize
