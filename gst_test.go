package gst

import (
	"sort"
	"testing"
)

func mustBuild(t *testing.T, text string) Tree {
	t.Helper()
	tree, err := BuildInMemory(text)
	if err != nil {
		t.Fatalf("BuildInMemory(%q): %v", text, err)
	}
	return tree
}

func TestContains(t *testing.T) {
	tree := mustBuild(t, "banana")

	cases := []struct {
		pattern string
		want    bool
	}{
		{"ban", true},
		{"ana", true},
		{"nana", true},
		{"banana", true},
		{"", true},
		{"xyz", false},
		{"bananas", false},
	}

	for _, c := range cases {
		if got := tree.Contains(c.pattern); got != c.want {
			t.Errorf("Contains(%q) = %v, want %v", c.pattern, got, c.want)
		}
	}
}

func TestCountAndFindAllOccurrences(t *testing.T) {
	tree := mustBuild(t, "banana")

	cases := []struct {
		pattern string
		want    []int
	}{
		{"a", []int{1, 3, 5}},
		{"an", []int{1, 3}},
		{"na", []int{2, 4}},
		{"banana", []int{0}},
		{"z", nil},
		{"", []int{0, 1, 2, 3, 4, 5}},
	}

	for _, c := range cases {
		got := tree.FindAllOccurrences(c.pattern)
		sort.Ints(got)
		if !equalInts(got, c.want) {
			t.Errorf("FindAllOccurrences(%q) = %v, want %v", c.pattern, got, c.want)
		}
		if count := tree.CountOccurrences(c.pattern); count != len(c.want) {
			t.Errorf("CountOccurrences(%q) = %d, want %d", c.pattern, count, len(c.want))
		}
	}
}

func TestLongestRepeatedSubstring(t *testing.T) {
	tree := mustBuild(t, "banana")
	lrs := tree.LongestRepeatedSubstring()
	if lrs != "ana" {
		t.Errorf("LongestRepeatedSubstring() = %q, want %q", lrs, "ana")
	}
}

func TestLongestRepeatedSubstringNoRepeats(t *testing.T) {
	tree := mustBuild(t, "abcdef")
	if lrs := tree.LongestRepeatedSubstring(); lrs != "" {
		t.Errorf("LongestRepeatedSubstring() on non-repeating text = %q, want empty", lrs)
	}
}

func TestLongestCommonSubstring(t *testing.T) {
	tree := mustBuild(t, "abcdefg")
	substr, posInText, posInOther := tree.LongestCommonSubstringInfo("xxcdefzz")
	if substr != "cdef" {
		t.Fatalf("LongestCommonSubstringInfo substr = %q, want %q", substr, "cdef")
	}
	if posInText != 2 {
		t.Errorf("posInText = %d, want 2", posInText)
	}
	if posInOther != 2 {
		t.Errorf("posInOther = %d, want 2", posInOther)
	}
}

func TestFindAllLongestCommonSubstrings(t *testing.T) {
	// other is exactly "bar" with nothing before or after it to extend a
	// match into, so the longest common substring is unambiguously "bar",
	// found at two positions in text and one in other.
	tree := mustBuild(t, "xxxbarxxxbaryyy")
	substr, inText, inOther := tree.FindAllLongestCommonSubstrings("bar")
	if substr != "bar" {
		t.Fatalf("substr = %q, want %q", substr, "bar")
	}
	if !equalInts(sortedCopy(inText), []int{3, 9}) {
		t.Errorf("positions in text = %v, want [3 9]", inText)
	}
	if !equalInts(sortedCopy(inOther), []int{0}) {
		t.Errorf("positions in other = %v, want [0]", inOther)
	}
}

func sortedCopy(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	sort.Ints(out)
	return out
}

func TestEnumerateSuffixesIsSorted(t *testing.T) {
	tree := mustBuild(t, "banana")
	suffixes := tree.GetAllSuffixes()

	sorted := make([]string, len(suffixes))
	copy(sorted, suffixes)
	sort.Strings(sorted)

	if !equalStrings(suffixes, sorted) {
		t.Errorf("GetAllSuffixes() = %v, not sorted (want %v)", suffixes, sorted)
	}
	if len(suffixes) != 6 {
		t.Errorf("got %d suffixes, want 6", len(suffixes))
	}
}

func TestEnumerateSuffixesEarlyStop(t *testing.T) {
	tree := mustBuild(t, "banana")
	var seen []string
	tree.EnumerateSuffixes()(func(s string) bool {
		seen = append(seen, s)
		return len(seen) < 2
	})
	if len(seen) != 2 {
		t.Fatalf("yield stopping early left %d results, want 2", len(seen))
	}
}

func TestTraverseVisitsEveryLeaf(t *testing.T) {
	tree := mustBuild(t, "banana")
	v := &countingVisitor{}
	tree.Traverse(v)

	// Traverse reports every leaf, including the terminator-only leaf that
	// LeafCount() leaves out.
	if v.leaves != tree.LeafCount()+1 {
		t.Errorf("traverse visited %d leaves, want LeafCount()+1 = %d", v.leaves, tree.LeafCount()+1)
	}
	if v.enters != v.exits {
		t.Errorf("unbalanced EnterBranch/ExitBranch: %d vs %d", v.enters, v.exits)
	}
}

type countingVisitor struct {
	leaves, enters, exits int
}

func (v *countingVisitor) VisitNode(start, end, leafCount, childCount, depth int) {
	if childCount == 0 {
		v.leaves++
	}
}
func (v *countingVisitor) EnterBranch(sym Symbol) { v.enters++ }
func (v *countingVisitor) ExitBranch()            { v.exits++ }

func TestLeafCountMatchesSuffixCount(t *testing.T) {
	text := "mississippi"
	tree := mustBuild(t, text)
	if tree.LeafCount() != len(text) {
		t.Errorf("LeafCount() = %d, want %d (one per non-empty suffix)", tree.LeafCount(), len(text))
	}
}

func TestIsEmpty(t *testing.T) {
	tree := mustBuild(t, "")
	if !tree.IsEmpty() {
		t.Errorf("IsEmpty() on empty text = false, want true")
	}
	if !tree.Contains("") {
		t.Errorf("Contains(\"\") on empty tree = false, want true")
	}
	if n := tree.CountOccurrences(""); n != 0 {
		t.Errorf("CountOccurrences(\"\") on empty tree = %d, want 0", n)
	}
}

func TestUnicodeSurrogatePairsRoundtrip(t *testing.T) {
	// U+1F600 (grinning face) is outside the BMP and encodes as a UTF-16
	// surrogate pair; it must index and match as a single logical symbol
	// run, not split.
	text := "a\U0001F600b\U0001F600c"
	tree := mustBuild(t, text)

	if !tree.Contains("\U0001F600b") {
		t.Errorf("Contains on text with surrogate pairs failed to find an existing substring")
	}
	occ := tree.FindAllOccurrences("\U0001F600")
	if len(occ) != 2 {
		t.Errorf("FindAllOccurrences(surrogate-pair emoji) = %v, want 2 occurrences", occ)
	}
}

func TestFindExactMatchAnchorsRejectsNonPositiveMinLength(t *testing.T) {
	tree := mustBuild(t, "banana")
	if _, err := tree.FindExactMatchAnchors("ana", 0); err == nil {
		t.Errorf("FindExactMatchAnchors with minLength=0 did not return an error")
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
