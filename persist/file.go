package persist

import (
	"fmt"
	"os"
	"unicode/utf16"

	"github.com/sirgallo/gst/internal/mmap"
)

func decodeUTF16(units []uint16) string { return string(utf16.Decode(units)) }

// Logger receives resize and recovery diagnostics. It matches gst.Logger
// structurally so callers can pass that value straight through.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Warnf(string, ...any)  {}

// File is a memory-mapped suffix-tree file: the header plus a jump-table
// arena, a node zone (compact then, after a transition, large records),
// and the indexed text, all within one growable mapping.
type File struct {
	path     string
	f        *os.File
	region   *mmap.Region
	size     int64
	readOnly bool
	log      Logger

	version   uint32
	compactOK bool // at least one allocation happened before any transition
	largeOK   bool // at least one allocation happened after a transition

	rootOffset    uint64
	textOffset    uint64
	textLength    uint64
	nodeCount     uint64
	deepestOffset uint64

	zoneTransitionOffset uint64
	jumpTableOffset      uint64
	jumpTableCap         uint64
	jumpTableNext        uint64
	nodeAllocNext        uint64
}

// Create truncates path to initialSize and lays down a fresh header, jump
// table, and empty node zone, ready for a builder to allocate into.
func Create(path string, initialSize int64, log Logger) (*File, error) {
	if log == nil {
		log = noopLogger{}
	}
	if initialSize < headerSize+initialJumpTableCapacity {
		initialSize = headerSize + initialJumpTableCapacity
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("persist: create %s: %w", path, err)
	}
	if err := f.Truncate(initialSize); err != nil {
		f.Close()
		return nil, fmt.Errorf("persist: truncate %s: %w", path, err)
	}

	region, err := mmap.Map(int(f.Fd()), initialSize)
	if err != nil {
		f.Close()
		return nil, err
	}

	pf := &File{
		path:            path,
		f:               f,
		region:          region,
		size:            initialSize,
		log:             log,
		jumpTableOffset: headerSize,
		jumpTableCap:    initialJumpTableCapacity,
		jumpTableNext:   headerSize,
		nodeAllocNext:   headerSize + initialJumpTableCapacity,
	}

	copy(region.Bytes()[hdrMagicOff:hdrMagicOff+8], []byte(magic))
	pf.flushHeader()

	return pf, nil
}

// Open maps an existing file read-only and validates its header (spec:
// magic, version range, header size, in-range offsets, text span within
// file size).
func Open(path string, log Logger) (*File, error) {
	if log == nil {
		log = noopLogger{}
	}

	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("persist: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("persist: stat %s: %w", path, err)
	}
	size := info.Size()
	if size < headerSize {
		f.Close()
		return nil, fmt.Errorf("%w: file shorter than header", ErrFormat)
	}

	region, err := mmap.MapReadOnly(int(f.Fd()), size)
	if err != nil {
		f.Close()
		return nil, err
	}

	pf := &File{path: path, f: f, region: region, size: size, readOnly: true, log: log}
	if err := pf.loadHeader(); err != nil {
		region.Unmap()
		f.Close()
		return nil, err
	}
	if err := pf.validate(); err != nil {
		region.Unmap()
		f.Close()
		return nil, err
	}
	return pf, nil
}

func (pf *File) loadHeader() error {
	b := pf.region.Bytes()
	if string(b[hdrMagicOff:hdrMagicOff+8]) != magic {
		return fmt.Errorf("%w: bad magic", ErrFormat)
	}
	pf.version = getUint32(b, hdrVersionOff)
	pf.rootOffset = getUint64(b, hdrRootOff)
	pf.textOffset = getUint64(b, hdrTextOff)
	pf.textLength = getUint64(b, hdrTextLenOff)
	pf.nodeCount = getUint64(b, hdrNodeCountOff)
	pf.deepestOffset = getUint64(b, hdrDeepestOff)
	pf.zoneTransitionOffset = getUint64(b, hdrZoneTransitionOff)
	pf.jumpTableOffset = getUint64(b, hdrJumpTableOff)
	pf.jumpTableNext = getUint64(b, hdrJumpTableNextOff)
	pf.nodeAllocNext = getUint64(b, hdrNodeAllocOff)
	return nil
}

func (pf *File) validate() error {
	switch pf.version {
	case VersionLargeOnly, VersionCompact, VersionHybrid:
	default:
		return fmt.Errorf("%w: unknown version %d", ErrFormat, pf.version)
	}
	if pf.rootOffset < headerSize || int64(pf.rootOffset) >= pf.size {
		return fmt.Errorf("%w: root offset out of bounds", ErrFormat)
	}
	if int64(pf.textOffset) > pf.size || int64(pf.textOffset)+2*int64(pf.textLength) > pf.size {
		return fmt.Errorf("%w: text span exceeds file size", ErrFormat)
	}
	return nil
}

// flushHeader writes every tracked field back into the mapped header.
func (pf *File) flushHeader() {
	b := pf.region.Bytes()
	putUint32(b, hdrVersionOff, pf.resolvedVersion())
	putUint64(b, hdrRootOff, pf.rootOffset)
	putUint64(b, hdrTextOff, pf.textOffset)
	putUint64(b, hdrTextLenOff, pf.textLength)
	putUint64(b, hdrNodeCountOff, pf.nodeCount)
	putUint64(b, hdrTotalSizeOff, uint64(pf.size))
	putUint64(b, hdrDeepestOff, pf.deepestOffset)
	putUint64(b, hdrZoneTransitionOff, pf.zoneTransitionOffset)
	putUint64(b, hdrJumpTableOff, pf.jumpTableOffset)
	putUint64(b, hdrJumpTableNextOff, pf.jumpTableNext)
	putUint64(b, hdrNodeAllocOff, pf.nodeAllocNext)
}

func (pf *File) resolvedVersion() uint32 {
	switch {
	case pf.compactOK && pf.largeOK:
		return VersionHybrid
	case pf.compactOK:
		return VersionCompact
	default:
		return VersionLargeOnly
	}
}

// ensureCapacity doubles the file (and its mapping) until it is at least
// minSize bytes, matching the teacher's resize discipline: unmap, grow
// the file, remap, never losing already-written bytes.
func (pf *File) ensureCapacity(minSize int64) error {
	if pf.readOnly {
		return fmt.Errorf("%w: cannot grow a read-only file", ErrClosed)
	}
	if minSize <= pf.size {
		return nil
	}

	newSize := pf.size
	for newSize < minSize {
		newSize *= 2
	}

	pf.log.Debugf("growing %s from %d to %d bytes", pf.path, pf.size, newSize)

	if err := pf.region.Unmap(); err != nil {
		return err
	}
	if err := pf.f.Truncate(newSize); err != nil {
		return fmt.Errorf("persist: truncate %s to %d: %w", pf.path, newSize, err)
	}

	region, err := mmap.Map(int(pf.f.Fd()), newSize)
	if err != nil {
		return err
	}
	pf.region = region
	pf.size = newSize
	return nil
}

// bytes is the single place node.go/write.go reach into the mapping, so a
// resize mid-build never leaves a stale slice in play.
func (pf *File) bytes() []byte { return pf.region.Bytes() }

// Close flushes the header, syncs the mapping, and releases the file.
func (pf *File) Close() error {
	if pf.region == nil {
		return nil
	}
	if !pf.readOnly {
		pf.flushHeader()
		if err := pf.region.Flush(0, int(pf.size)); err != nil {
			return err
		}
	}
	if err := pf.region.Unmap(); err != nil {
		return err
	}
	pf.region = nil
	return pf.f.Close()
}

// Remove deletes the backing file. Callers must Close first.
func (pf *File) Remove() error { return os.Remove(pf.path) }

func (pf *File) Path() string       { return pf.path }
func (pf *File) Size() int64        { return pf.size }
func (pf *File) Version() uint32    { return pf.version }
func (pf *File) RootOffset() uint64 { return pf.rootOffset }
func (pf *File) NodeCount() int     { return int(pf.nodeCount) }

func (pf *File) SetRoot(off uint64) { pf.rootOffset = off }

func (pf *File) DeepestOffset() uint64    { return pf.deepestOffset }
func (pf *File) SetDeepestOffset(off uint64) { pf.deepestOffset = off }

// TextLength is the number of indexed symbols (not counting the
// terminator).
func (pf *File) TextLength() int { return int(pf.textLength) }

// SymbolAt reads one UTF-16 code unit from the mapped text region, or
// returns the terminator for i == TextLength().
func (pf *File) SymbolAt(i int) int32 {
	if i == int(pf.textLength) {
		return -1
	}
	off := int(pf.textOffset) + i*2
	return int32(getUint16(pf.bytes(), off))
}

// Substring decodes text[a:b] through the shared UTF-16 decoder.
func (pf *File) Substring(a, b int) string {
	units := make([]uint16, b-a)
	base := pf.bytes()
	for i := a; i < b; i++ {
		units[i-a] = getUint16(base, int(pf.textOffset)+i*2)
	}
	return decodeUTF16(units)
}

// WriteText appends the text as raw UTF-16 code units at a fresh offset
// and records it in the header; called once, after construction, when no
// further node allocation will happen.
func (pf *File) WriteText(units []uint16) error {
	need := int64(len(units)) * 2
	offset := pf.nodeAllocNext
	if err := pf.ensureCapacity(int64(offset) + need); err != nil {
		return err
	}
	b := pf.bytes()
	for i, u := range units {
		putUint16(b, int(offset)+i*2, u)
	}
	pf.textOffset = offset
	pf.textLength = uint64(len(units))
	pf.nodeAllocNext = offset + uint64(need)
	pf.flushHeader()
	return nil
}
