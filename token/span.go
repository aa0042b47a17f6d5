package token

import "fmt"

// Span captures a range (x…y) within some enumerated sequence: a byte
// range of input text for a Token, or a token-index range for a
// derivation-tree node. A start position and the position just behind the
// end.
type Span [2]int

// From returns the start of a span.
func (s Span) From() int { return s[0] }

// To returns the position just behind the end of a span.
func (s Span) To() int { return s[1] }

// Len returns the length of a span.
func (s Span) Len() int { return s[1] - s[0] }

// IsNull reports whether s is the zero span.
func (s Span) IsNull() bool { return s == Span{} }

// Extend grows s so that it also covers other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
