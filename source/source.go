// Package source holds the positions shared by the syntax tree and the diagnostics.
package source

import "fmt"

// Position is a 1-based row and column (in characters) in a source text.
// The zero value means "no position"; trees built by hand in tests carry it.
type Position struct {
	Row int
	Col int
}

func NewPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

func (p Position) IsZero() bool {
	return p.Row == 0 && p.Col == 0
}

func (p Position) String() string {
	return fmt.Sprintf("%v:%v", p.Row, p.Col)
}

// Span is a half-open range [From, To) of a source text.
type Span struct {
	From Position
	To   Position
}

func NewSpan(from, to Position) Span {
	return Span{
		From: from,
		To:   to,
	}
}

// PointSpan returns an empty span located at pos.
func PointSpan(pos Position) Span {
	return Span{
		From: pos,
		To:   pos,
	}
}

func (s Span) IsZero() bool {
	return s.From.IsZero() && s.To.IsZero()
}

// Join returns the smallest span covering both s and t. Zero spans are ignored.
func (s Span) Join(t Span) Span {
	if s.IsZero() {
		return t
	}
	if t.IsZero() {
		return s
	}
	j := s
	if before(t.From, j.From) {
		j.From = t.From
	}
	if before(j.To, t.To) {
		j.To = t.To
	}
	return j
}

// Start returns an empty span at the beginning of s.
func (s Span) Start() Span {
	return PointSpan(s.From)
}

// End returns an empty span at the end of s.
func (s Span) End() Span {
	return PointSpan(s.To)
}

func (s Span) String() string {
	return fmt.Sprintf("%v-%v", s.From, s.To)
}

func before(a, b Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}
