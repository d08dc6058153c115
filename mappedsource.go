package gst

import "github.com/sirgallo/gst/persist"

// mappedSource is a TextSource backed by a persist.File's mapped text
// region: every read goes straight through the mapping, no copy held in
// the Go heap beyond what a query actually touches.
type mappedSource struct {
	f *persist.File
}

func (s *mappedSource) Len() int { return s.f.TextLength() }

func (s *mappedSource) SymbolAt(i int) Symbol { return s.f.SymbolAt(i) }

func (s *mappedSource) Slice(a, b int) []Symbol {
	out := make([]Symbol, b-a)
	for i := a; i < b; i++ {
		out[i-a] = s.f.SymbolAt(i)
	}
	return out
}

func (s *mappedSource) Substring(a, b int) string { return s.f.Substring(a, b) }
