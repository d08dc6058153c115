package gst

import "unicode/utf16"

// TextSource delivers symbols at an index in O(1) and substrings as
// values. symbol_at(n) returns TERMINATOR as a convenience for callers
// that walk one past the last real index.
type TextSource interface {
	Len() int
	SymbolAt(i int) Symbol
	Slice(a, b int) []Symbol

	// Substring reconstructs text[a:b] as a Go string, decoding whatever
	// code-unit representation the backend stores symbols in.
	Substring(a, b int) string
}

// InMemorySource wraps an owned code-unit buffer. Strings are decoded with
// utf16.Encode so symbols outside ASCII, including surrogate-paired
// characters, are indexed and matched unchanged (see spec property 10).
type InMemorySource struct {
	units []uint16
}

// NewInMemorySource builds a TextSource from a Go string.
func NewInMemorySource(text string) *InMemorySource {
	return &InMemorySource{units: utf16.Encode([]rune(text))}
}

func (s *InMemorySource) Len() int { return len(s.units) }

func (s *InMemorySource) SymbolAt(i int) Symbol {
	if i == len(s.units) {
		return TERMINATOR
	}
	return Symbol(s.units[i])
}

func (s *InMemorySource) Slice(a, b int) []Symbol {
	out := make([]Symbol, b-a)
	for i := a; i < b; i++ {
		out[i-a] = Symbol(s.units[i])
	}
	return out
}

// Substring reconstructs text[a:b] as a Go string.
func (s *InMemorySource) Substring(a, b int) string {
	return string(utf16.Decode(s.units[a:b]))
}

// encodeQuery turns a query string into the symbol alphabet used by the
// indexed text.
func encodeQuery(s string) []Symbol {
	units := utf16.Encode([]rune(s))
	out := make([]Symbol, len(units))
	for i, u := range units {
		out[i] = Symbol(u)
	}
	return out
}
