package style

// Span assigns one display category to a half-open column range [Start, End)
// within a single line. Columns count code points, not bytes.
type Span struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Kind  Kind   `json:"kind"`
}

// Empty reports whether the span covers no characters.
func (s Span) Empty() bool {
	return s.Start >= s.End
}

// Len returns the number of characters the span covers.
func (s Span) Len() uint32 {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start
}

// SpanSet is the styled view of one line: spans in left-to-right order,
// non-overlapping, with unstyled gaps defaulting to Text.
type SpanSet []Span

// At returns the category of the character at column col, Text when no
// span covers it. This mirrors a per-character style buffer over the
// same data.
func (ss SpanSet) At(col uint32) Kind {
	for _, s := range ss {
		if col < s.Start {
			break
		}
		if col < s.End {
			return s.Kind
		}
	}
	return Text
}

// Append adds a span, merging with the previous one when both ranges
// touch and carry the same kind.
func (ss SpanSet) Append(start, end uint32, kind Kind) SpanSet {
	if start >= end {
		return ss
	}
	if n := len(ss); n > 0 && ss[n-1].End == start && ss[n-1].Kind == kind {
		ss[n-1].End = end
		return ss
	}
	return append(ss, Span{Start: start, End: end, Kind: kind})
}
