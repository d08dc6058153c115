package gst

import "sort"

// findExactMatchAnchors streams other through the tree once, keeping the
// matching-statistics record at every query position, then keeps only the
// right- and left-maximal ones at least minLength long: a match that could
// be extended one symbol further in either direction is dropped in favor
// of the longer match that subsumes it.
func findExactMatchAnchors[H comparable](nav Navigator[H], src TextSource, other []Symbol, minLength int) []Anchor {
	type rec struct {
		depth      int
		node       H
		queryStart int
		found      bool
	}
	recs := make([]rec, len(other))

	streamMatch(nav, other, func(m matchResult[H]) {
		recs[m.queryEnd] = rec{depth: m.length, node: m.node, queryStart: m.queryStart, found: true}
	})

	var anchors []Anchor
	for i, r := range recs {
		if !r.found || r.depth < minLength {
			continue
		}
		if i+1 < len(recs) && recs[i+1].found && recs[i+1].depth == r.depth+1 {
			continue // a longer match to the right subsumes this one
		}

		// r.node is an ancestor of every leaf beneath it, so the path from
		// root to r.node is a prefix of any such leaf's suffix: the suffix
		// start itself is already the match's position in text.
		treeStart := nav.AnyLeafPosition(r.node)

		if treeStart > 0 && r.queryStart > 0 && src.SymbolAt(treeStart-1) == other[r.queryStart-1] {
			continue // extends one symbol to the left too; not maximal
		}

		anchors = append(anchors, Anchor{TreeStart: treeStart, QueryStart: r.queryStart, Length: r.depth})
	}
	return anchors
}

// ChainAnchors picks the longest ordered, non-overlapping (in both the
// indexed text and the other sequence) subsequence of anchors, the usual
// next step after FindExactMatchAnchors when anchors are used to seed a
// pairwise alignment.
func ChainAnchors(anchors []Anchor) []Anchor {
	return chainAnchors(anchors)
}

// chainAnchors picks the longest ordered, non-overlapping (in both
// sequences) subsequence of anchors — an alignment chain — via an O(k^2)
// longest-increasing-subsequence DP over anchors sorted by tree position.
// A patience-sort O(k log k) variant is possible but not required; k is
// the anchor count, never the text length, so the quadratic term stays
// small in practice.
func chainAnchors(anchors []Anchor) []Anchor {
	if len(anchors) == 0 {
		return nil
	}

	ordered := make([]Anchor, len(anchors))
	copy(ordered, anchors)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].TreeStart != ordered[j].TreeStart {
			return ordered[i].TreeStart < ordered[j].TreeStart
		}
		return ordered[i].QueryStart < ordered[j].QueryStart
	})

	n := len(ordered)
	chainLen := make([]int, n)
	prev := make([]int, n)
	best, bestLen := 0, 0

	for i := range ordered {
		chainLen[i] = ordered[i].Length
		prev[i] = -1

		for j := 0; j < i; j++ {
			if ordered[j].TreeStart+ordered[j].Length <= ordered[i].TreeStart &&
				ordered[j].QueryStart+ordered[j].Length <= ordered[i].QueryStart {
				candidate := chainLen[j] + ordered[i].Length
				if candidate > chainLen[i] {
					chainLen[i] = candidate
					prev[i] = j
				}
			}
		}

		if chainLen[i] > bestLen {
			bestLen = chainLen[i]
			best = i
		}
	}

	var chain []Anchor
	for i := best; i != -1; i = prev[i] {
		chain = append(chain, ordered[i])
	}
	for l, r := 0, len(chain)-1; l < r; l, r = l+1, r-1 {
		chain[l], chain[r] = chain[r], chain[l]
	}
	return chain
}
