package gst

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Export serializes any Tree this package produces into the
// layout-independent STLOGICA format (see ImportLogical), regardless of
// which backend built it.
func Export(t Tree) ([]byte, error) {
	switch v := t.(type) {
	case *heapTree:
		return v.ExportLogical(), nil
	case *persistTree:
		return v.ExportLogical(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported tree backend for export", ErrInvalidInput)
	}
}

// stlogicaMagic identifies the logical (layout-independent) export
// format: a preorder dump of edge labels and branching structure plus the
// source text, as opposed to the persistent backend's on-disk byte
// layout. A tree exported from either backend decodes into the same
// structure.
const stlogicaMagic = "STLOGICA"
const stlogicaVersion uint32 = 1

// exportLogical serializes the tree rooted at nav into the STLOGICA
// format: magic, version, the source text, a preorder node dump, and a
// trailing SHA-256 checksum over everything before it.
func exportLogical[H comparable](nav Navigator[H], src TextSource, n int) []byte {
	var buf bytes.Buffer
	buf.WriteString(stlogicaMagic)
	binary.Write(&buf, binary.LittleEndian, stlogicaVersion)

	binary.Write(&buf, binary.LittleEndian, uint64(n))
	for i := 0; i < n; i++ {
		binary.Write(&buf, binary.LittleEndian, uint16(src.SymbolAt(i)))
	}

	var writeNode func(h H)
	writeNode = func(h H) {
		children := nav.Children(h)

		var isLeaf byte
		if len(children) == 0 {
			isLeaf = 1
		}
		buf.WriteByte(isLeaf)

		binary.Write(&buf, binary.LittleEndian, uint64(nav.EdgeStart(h)))
		binary.Write(&buf, binary.LittleEndian, uint64(nav.EdgeEnd(h)))
		if isLeaf == 1 {
			binary.Write(&buf, binary.LittleEndian, uint64(nav.AnyLeafPosition(h)))
		}

		binary.Write(&buf, binary.LittleEndian, uint32(len(children)))
		for _, c := range children {
			writeNode(c)
		}
	}
	writeNode(nav.Root())

	sum := sha256.Sum256(buf.Bytes())
	buf.Write(sum[:])
	return buf.Bytes()
}

// importLogical decodes an STLOGICA payload into a freestanding heap
// tree, verifying the trailing checksum before trusting the structure.
func importLogical(data []byte) (*heapNode, *InMemorySource, error) {
	const checksumLen = sha256.Size
	if len(data) < len(stlogicaMagic)+4+checksumLen {
		return nil, nil, fmt.Errorf("%w: truncated stlogica payload", ErrFormat)
	}
	if string(data[:len(stlogicaMagic)]) != stlogicaMagic {
		return nil, nil, fmt.Errorf("%w: bad stlogica magic", ErrFormat)
	}

	body := data[:len(data)-checksumLen]
	wantSum := data[len(data)-checksumLen:]
	gotSum := sha256.Sum256(body)
	if !bytes.Equal(gotSum[:], wantSum) {
		return nil, nil, fmt.Errorf("%w: stlogica checksum mismatch", ErrFormat)
	}

	r := bytes.NewReader(data[len(stlogicaMagic):])

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if version != stlogicaVersion {
		return nil, nil, fmt.Errorf("%w: unsupported stlogica version %d", ErrFormat, version)
	}

	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	units := make([]uint16, n)
	for i := range units {
		if err := binary.Read(r, binary.LittleEndian, &units[i]); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
	}
	src := &InMemorySource{units: units}

	var readNode func() (*heapNode, error)
	readNode = func() (*heapNode, error) {
		isLeaf, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}

		var start, end uint64
		if err := binary.Read(r, binary.LittleEndian, &start); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &end); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}

		node := &heapNode{start: int(start)}
		if isLeaf == 1 {
			// The wire format still carries the exporter's leaf position
			// for backward compatibility with readers that don't re-derive
			// it, but this importer recomputes suffix positions from
			// edge_start/depth_from_root once finalizeTree runs below, so
			// the value itself is only consumed to advance the reader.
			var leafPos uint64
			if err := binary.Read(r, binary.LittleEndian, &leafPos); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrFormat, err)
			}
			node.end = OpenEnd
			node.leafCount = 1
		} else {
			node.end = int(end)
		}

		var childCount uint32
		if err := binary.Read(r, binary.LittleEndian, &childCount); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		for i := uint32(0); i < childCount; i++ {
			child, err := readNode()
			if err != nil {
				return nil, err
			}
			node.setChild(src.SymbolAt(child.start), child)
		}
		return node, nil
	}

	root, err := readNode()
	if err != nil {
		return nil, nil, err
	}

	finalizeTree[*heapNode](&heapFinalizeOps{root: root})
	return root, src, nil
}
