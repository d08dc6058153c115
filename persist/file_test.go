package persist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateOpenRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.gst")

	pf, err := Create(path, 0, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	root, err := pf.AllocNode(false, 0, 0)
	if err != nil {
		t.Fatalf("AllocNode: %v", err)
	}
	pf.SetRoot(root)

	leaf, err := pf.AllocNode(true, 3, 0)
	if err != nil {
		t.Fatalf("AllocNode leaf: %v", err)
	}
	if err := pf.SetChild(root, 'x', leaf); err != nil {
		t.Fatalf("SetChild: %v", err)
	}

	units := []uint16{'f', 'o', 'o'}
	if err := pf.WriteText(units); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	if err := pf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reopened.Close()

	if reopened.RootOffset() != root {
		t.Errorf("RootOffset() = %d, want %d", reopened.RootOffset(), root)
	}
	if reopened.TextLength() != 3 {
		t.Errorf("TextLength() = %d, want 3", reopened.TextLength())
	}
	if got := reopened.GetChild(root, 'x'); got != leaf {
		t.Errorf("GetChild(root, 'x') = %d, want %d", got, leaf)
	}
	if reopened.NodeEnd(leaf) != -1 {
		t.Errorf("NodeEnd(leaf) = %d, want -1 (open-ended)", reopened.NodeEnd(leaf))
	}
}

func TestOpenRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gst")
	pf, err := Create(path, 0, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	pf.SetRoot(headerSize)
	if err := pf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Corrupt the magic bytes directly on disk.
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		t.Fatalf("reopen for corruption: %v", err)
	}
	if _, err := f.WriteAt([]byte("GARBAGE!"), 0); err != nil {
		t.Fatalf("corrupt magic: %v", err)
	}
	f.Close()

	if _, err := Open(path, nil); err == nil {
		t.Fatal("Open accepted a file with corrupted magic")
	}
}

func TestZoneTransitionProducesHybridVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hybrid.gst")
	pf, err := Create(path, 0, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer pf.Close()

	root, err := pf.AllocNode(false, 0, 0)
	if err != nil {
		t.Fatalf("AllocNode root: %v", err)
	}
	pf.SetRoot(root)

	if pf.isCompactZone(root) != true {
		t.Fatalf("fresh file's first node should be in the compact zone")
	}
	if pf.resolvedVersion() != VersionCompact {
		t.Errorf("resolvedVersion() before any transition = %d, want VersionCompact (%d)", pf.resolvedVersion(), VersionCompact)
	}

	// Simulate the bump allocator having already crossed the compact
	// window the way a very large indexed text eventually would, without
	// actually growing the backing file to gigabyte scale in a test.
	pf.zoneTransitionOffset = root + compactNodeSize
	pf.largeOK = true

	if pf.isCompactZone(root) != true {
		t.Errorf("a node allocated before the transition must stay in the compact zone")
	}
	if pf.isCompactZone(pf.zoneTransitionOffset) {
		t.Errorf("a node allocated at/after the transition offset must be in the large zone")
	}
	if pf.recordSize(pf.zoneTransitionOffset) != largeNodeSize {
		t.Errorf("recordSize after the transition = %d, want %d", pf.recordSize(pf.zoneTransitionOffset), largeNodeSize)
	}
	if pf.resolvedVersion() != VersionHybrid {
		t.Errorf("resolvedVersion() = %d, want VersionHybrid (%d)", pf.resolvedVersion(), VersionHybrid)
	}
}
