package gst

// enumerateSuffixes walks the tree depth-first in ascending child-symbol
// order, which is also lexicographic order over the indexed alphabet
// (TERMINATOR sorts before every real symbol), so suffixes are produced
// sorted without a separate sort step. yield stops the walk early when it
// returns false, so GetAllSuffixes and EnumerateSuffixes share this one
// lazy implementation.
func enumerateSuffixes[H comparable](nav Navigator[H], src TextSource, n int) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		var walk func(h H) bool
		walk = func(h H) bool {
			if nav.ChildCount(h) == 0 {
				pos := nav.AnyLeafPosition(h)
				if pos == n {
					return true // the terminator-only leaf spells no suffix of the text
				}
				return yield(src.Substring(pos, n))
			}
			for _, c := range nav.Children(h) {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(nav.Root())
	}
}

func collectAllSuffixes[H comparable](nav Navigator[H], src TextSource, n, leafCount int) []string {
	out := make([]string, 0, leafCount)
	enumerateSuffixes(nav, src, n)(func(s string) bool {
		out = append(out, s)
		return true
	})
	return out
}
