package gst

// longestRepeatedSubstring reads the label of the deepest internal
// non-root node, cached once at build time (finalizeTree), giving O(1)
// lookup instead of a fresh tree walk per call.
func longestRepeatedSubstring[H comparable](nav Navigator[H], src TextSource, deepest H) string {
	if nav.IsNull(deepest) {
		return ""
	}
	length := nav.TotalDepth(deepest)
	pos := nav.AnyLeafPosition(deepest)
	return src.Substring(pos, pos+length)
}

// matchResult is one streamed match of a query against an indexed text.
type matchResult[H comparable] struct {
	length     int
	node       H // a tree node whose subtree's leaves all share this match as a prefix
	queryStart int
	queryEnd   int // index in query the match ends at, inclusive
}

// streamMatch feeds query through the tree one symbol at a time using the
// active-point machinery buildUkkonen uses during construction, but
// read-only. On a failed extension it follows suffix links instead of
// restarting from the root, so the whole query is matched in time
// proportional to its length rather than the product of text and query
// lengths (Gusfield's streaming technique for matching statistics). For
// every query position at which a match ends, it reports the longest match
// ending there together with where that match started in query, which LCS
// and anchor finding both consume.
func streamMatch[H comparable](nav Navigator[H], query []Symbol, onMatch func(matchResult[H])) {
	root := nav.Root()
	activeNode := root
	activeLength := 0
	var activeEdge Symbol

	for i := 0; i < len(query); i++ {
		extended := false

		for {
			if activeLength == 0 {
				activeEdge = query[i]
			} else {
				activeEdge = query[i-activeLength]
			}

			child := nav.Child(activeNode, activeEdge)
			if nav.IsNull(child) {
				if activeNode == root {
					activeLength = 0
					break
				}
				sl := nav.SuffixLink(activeNode)
				if nav.IsNull(sl) {
					activeNode = root
				} else {
					activeNode = sl
				}
				continue
			}

			elen := nav.EdgeLength(child)

			if activeLength < elen {
				if nav.EdgeSymbolAt(child, activeLength) == query[i] {
					activeLength++
					extended = true
					depth := nav.TotalDepth(activeNode) + activeLength
					onMatch(matchResult[H]{length: depth, node: child, queryStart: i - depth + 1, queryEnd: i})
					break
				}

				if activeNode == root {
					// Drop the match's first symbol and retry the shorter one.
					activeLength--
					continue
				}
				sl := nav.SuffixLink(activeNode)
				if nav.IsNull(sl) {
					activeNode = root
				} else {
					activeNode = sl
				}
				continue
			}

			// activeLength reaches past this edge: land on child and retry
			// without consuming a new query symbol.
			activeNode = child
			activeLength -= elen
		}

		if !extended && activeNode == root && activeLength == 0 {
			// No match begins at query[i] at all; nothing to report.
			continue
		}
	}
}

// longestCommonSubstringInfo streams other through the tree and returns
// the best match found, together with its position in the indexed text
// and in other.
func longestCommonSubstringInfo[H comparable](nav Navigator[H], src TextSource, other []Symbol) (substr string, posInText, posInOther int) {
	bestLen := 0
	var bestNode H
	bestQueryStart := 0
	found := false

	streamMatch(nav, other, func(m matchResult[H]) {
		if m.length > bestLen {
			bestLen = m.length
			bestNode = m.node
			bestQueryStart = m.queryStart
			found = true
		}
	})

	if !found {
		return "", -1, -1
	}

	// bestNode is an ancestor of every leaf in its subtree, so the path
	// from root to bestNode is a prefix of any such leaf's suffix: the
	// suffix start itself is already the match's position in text.
	start := nav.AnyLeafPosition(bestNode)
	return src.Substring(start, start+bestLen), start, bestQueryStart
}

// findAllLongestCommonSubstrings returns every occurrence, in both the
// indexed text and other, of a longest common substring (there can be
// more than one distinct substring tied for the maximum length, and each
// can recur many times in either string).
func findAllLongestCommonSubstrings[H comparable](nav Navigator[H], src TextSource, other []Symbol) (substr string, positionsInText, positionsInOther []int) {
	bestLen := 0
	type hit struct {
		node       H
		queryStart int
	}
	var hits []hit

	streamMatch(nav, other, func(m matchResult[H]) {
		switch {
		case m.length > bestLen:
			bestLen = m.length
			hits = hits[:0]
			hits = append(hits, hit{m.node, m.queryStart})
		case m.length == bestLen && bestLen > 0:
			hits = append(hits, hit{m.node, m.queryStart})
		}
	})

	if bestLen == 0 {
		return "", nil, nil
	}

	textPos := map[int]struct{}{}
	otherPos := map[int]struct{}{}
	var label string

	for _, h := range hits {
		start := nav.AnyLeafPosition(h.node)
		if label == "" {
			label = src.Substring(start, start+bestLen)
		}
		for _, leafPos := range nav.LeafPositions(h.node) {
			textPos[leafPos] = struct{}{}
		}
		otherPos[h.queryStart] = struct{}{}
	}

	positionsInText = sortedKeys(textPos)
	positionsInOther = sortedKeys(otherPos)
	return label, positionsInText, positionsInOther
}

func sortedKeys(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// insertion sort is fine here: result sets are small relative to text
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
