package gst

import "testing"

func TestFindExactMatchAnchors(t *testing.T) {
	// "needle" appears once in text, bordered by distinct characters on
	// both sides, so the only minLength-3+ anchor should be the full word.
	tree := mustBuild(t, "xxneedlexx")

	anchors, err := tree.FindExactMatchAnchors("needle", 3)
	if err != nil {
		t.Fatalf("FindExactMatchAnchors: %v", err)
	}
	if len(anchors) != 1 {
		t.Fatalf("got %d anchors, want 1: %+v", len(anchors), anchors)
	}
	a := anchors[0]
	if a.TreeStart != 2 || a.QueryStart != 0 || a.Length != 6 {
		t.Errorf("anchor = %+v, want {TreeStart:2 QueryStart:0 Length:6}", a)
	}
}

func TestFindExactMatchAnchorsNoMatch(t *testing.T) {
	tree := mustBuild(t, "abcdef")
	anchors, err := tree.FindExactMatchAnchors("xyz", 2)
	if err != nil {
		t.Fatalf("FindExactMatchAnchors: %v", err)
	}
	if len(anchors) != 0 {
		t.Errorf("got %d anchors, want 0: %+v", len(anchors), anchors)
	}
}

func TestChainAnchorsPicksOrderedNonOverlapping(t *testing.T) {
	// Two anchors that are consistent (both increasing in tree and query
	// position, non-overlapping) should both survive chaining; one that
	// would require going backward in the query should be dropped.
	anchors := []Anchor{
		{TreeStart: 0, QueryStart: 10, Length: 5},
		{TreeStart: 10, QueryStart: 0, Length: 5}, // inconsistent with the first
		{TreeStart: 20, QueryStart: 20, Length: 5},
	}

	chain := ChainAnchors(anchors)

	for i := 1; i < len(chain); i++ {
		if chain[i].TreeStart < chain[i-1].TreeStart+chain[i-1].Length {
			t.Errorf("chain not non-overlapping in tree position: %+v", chain)
		}
		if chain[i].QueryStart < chain[i-1].QueryStart+chain[i-1].Length {
			t.Errorf("chain not non-overlapping in query position: %+v", chain)
		}
	}

	total := 0
	for _, a := range chain {
		total += a.Length
	}
	if total != 10 {
		t.Errorf("chain total length = %d, want 10 (anchors at TreeStart 0 and 20)", total)
	}
}

func TestChainAnchorsEmpty(t *testing.T) {
	if chain := ChainAnchors(nil); chain != nil {
		t.Errorf("ChainAnchors(nil) = %v, want nil", chain)
	}
}
