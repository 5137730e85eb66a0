package firmware

import (
	"github.com/kbdl/kbdl/keymap"
	"github.com/kbdl/kbdl/source"
)

// ChordPair is the ordered pair of matrix positions a chord sits between.
type ChordPair struct {
	Left  keymap.MatrixPosition
	Right keymap.MatrixPosition
}

// ChordEntry is a chord pair and the matrix position allocated to it.
type ChordEntry struct {
	Pair ChordPair
	Pos  keymap.MatrixPosition
}

// Allocator hands out matrix positions below the physical matrix to chords. A pair keeps the
// position it was first given, so a chord repeated on several layers occupies a single slot.
type Allocator struct {
	width  int
	height int

	extraRows int
	extraCols int

	table   map[ChordPair]*ChordEntry
	entries []*ChordEntry
}

func NewAllocator(width, height int) *Allocator {
	return &Allocator{
		width:  width,
		height: height,
		table:  map[ChordPair]*ChordEntry{},
	}
}

// Allocate returns the position of a chord pair, allocating the next free one on first use.
// span locates the chord for the range error raised when the matrix cannot grow any more.
func (a *Allocator) Allocate(pair ChordPair, span source.Span) (keymap.MatrixPosition, error) {
	if e, ok := a.table[pair]; ok {
		return e.Pos, nil
	}

	rows := a.extraRows
	if a.extraCols == 0 {
		rows++
	}
	pos := keymap.NewMatrixPosition(a.extraCols, a.height+rows-1)
	if err := keymap.CheckMatrixPosition(pos, span); err != nil {
		return keymap.MatrixPosition{}, err
	}

	a.extraRows = rows
	a.extraCols++
	if a.extraCols >= a.width {
		a.extraCols = 0
	}

	e := &ChordEntry{
		Pair: pair,
		Pos:  pos,
	}
	a.table[pair] = e
	a.entries = append(a.entries, e)
	return pos, nil
}

// Entries returns the allocated chords in allocation order.
func (a *Allocator) Entries() []*ChordEntry {
	return a.entries
}

// ExtraRows returns the number of rows added below the physical matrix.
func (a *Allocator) ExtraRows() int {
	return a.extraRows
}

// IsExtra reports whether pos lies below the physical matrix, where chords live.
func (a *Allocator) IsExtra(pos keymap.MatrixPosition) bool {
	return pos.Row >= a.height
}

// Rows returns the number of rows of the grown matrix.
func (a *Allocator) Rows() int {
	return a.height + a.extraRows
}
