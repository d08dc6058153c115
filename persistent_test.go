package gst

import (
	"path/filepath"
	"testing"
)

func TestPersistentBuildAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.gst")

	tree, err := BuildPersistent("banana", PersistOpts{Path: path})
	if err != nil {
		t.Fatalf("BuildPersistent: %v", err)
	}
	defer tree.Close()

	if !tree.Contains("ana") {
		t.Errorf("Contains(%q) = false, want true", "ana")
	}
	if n := tree.CountOccurrences("a"); n != 3 {
		t.Errorf("CountOccurrences(\"a\") = %d, want 3", n)
	}
	if lrs := tree.LongestRepeatedSubstring(); lrs != "ana" {
		t.Errorf("LongestRepeatedSubstring() = %q, want %q", lrs, "ana")
	}
	if n := tree.LeafCount(); n != 6 {
		t.Errorf("LeafCount() = %d, want 6", n)
	}
}

func TestPersistentReloadMatchesInMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.gst")
	text := "mississippi"

	built, err := BuildPersistent(text, PersistOpts{Path: path})
	if err != nil {
		t.Fatalf("BuildPersistent: %v", err)
	}
	builtHash := built.LogicalHash()
	if err := built.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	loaded, err := LoadPersistent(path)
	if err != nil {
		t.Fatalf("LoadPersistent: %v", err)
	}
	defer loaded.Close()

	heapTree, err := BuildInMemory(text)
	if err != nil {
		t.Fatalf("BuildInMemory: %v", err)
	}

	if loaded.LogicalHash() != builtHash {
		t.Errorf("reloaded tree's LogicalHash differs from the freshly built one")
	}
	if loaded.LogicalHash() != heapTree.LogicalHash() {
		t.Errorf("persistent and heap backends produced different LogicalHash for the same text")
	}

	wantSuffixes := heapTree.GetAllSuffixes()
	gotSuffixes := loaded.GetAllSuffixes()
	if len(gotSuffixes) != len(wantSuffixes) {
		t.Fatalf("reloaded GetAllSuffixes has %d entries, want %d", len(gotSuffixes), len(wantSuffixes))
	}
	for i := range wantSuffixes {
		if gotSuffixes[i] != wantSuffixes[i] {
			t.Errorf("suffix[%d] = %q, want %q", i, gotSuffixes[i], wantSuffixes[i])
		}
	}
}

func TestPersistentSmallInitialSizeGrows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.gst")

	// A text long enough that its node and child-entry records overrun a
	// small requested InitialSize (which Create floors up to header +
	// jump-table size regardless), forcing ensureCapacity's unmap/grow/
	// remap path during construction and again during WriteText.
	phrase := "the quick brown fox jumps over the lazy dog, repeatedly: "
	text := ""
	for i := 0; i < 40; i++ {
		text += phrase
	}

	tree, err := BuildPersistent(text, PersistOpts{Path: path, InitialSize: 1 << 10})
	if err != nil {
		t.Fatalf("BuildPersistent with small InitialSize: %v", err)
	}
	defer tree.Close()

	if !tree.Contains("quick brown fox") {
		t.Errorf("Contains on grown file = false, want true")
	}
	if got := tree.CountOccurrences("the quick brown fox"); got != 40 {
		t.Errorf("CountOccurrences = %d, want 40", got)
	}
}
