package calc

import "strconv"

// Span is a half-open range of rune offsets into the input text. Offsets
// count Unicode scalar values, not bytes, so multi-byte input like π
// highlights correctly. End equals Start for zero-width positions, e.g.
// end of input.
type Span struct {
	Start int
	End   int
}

func (s Span) String() string {
	return "(" + strconv.Itoa(s.Start) + "," + strconv.Itoa(s.End) + ")"
}

// union returns the smallest span covering both s and t.
func (s Span) union(t Span) Span {
	if t.Start < s.Start {
		s.Start = t.Start
	}
	if t.End > s.End {
		s.End = t.End
	}
	return s
}
