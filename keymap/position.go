package keymap

import (
	"fmt"

	verr "github.com/kbdl/kbdl/error"
	"github.com/kbdl/kbdl/source"
)

// MaxCoordinate is the largest row or column a firmware matrix can address.
const MaxCoordinate = 255

// PhysicalPos is a cell of the layout block as written, spacer cells included.
type PhysicalPos struct {
	Col int
	Row int
}

func (p PhysicalPos) String() string {
	return fmt.Sprintf("(%v, %v)", p.Row, p.Col)
}

// LayoutPos is a cell of the layout block once spacer cells are removed. Layer rows are indexed by it.
type LayoutPos struct {
	Col int
	Row int
}

func (p LayoutPos) String() string {
	return fmt.Sprintf("(%v, %v)", p.Row, p.Col)
}

// MatrixPosition is a switch of the electrical key matrix.
type MatrixPosition struct {
	Col int
	Row int
}

func NewMatrixPosition(col, row int) MatrixPosition {
	return MatrixPosition{
		Col: col,
		Row: row,
	}
}

func (p MatrixPosition) String() string {
	return fmt.Sprintf("(%v, %v)", p.Row, p.Col)
}

// CheckMatrixPosition fails when p cannot be addressed by a firmware matrix.
func CheckMatrixPosition(p MatrixPosition, span source.Span) error {
	if err := checkCoordinate("row", p.Row, span); err != nil {
		return err
	}
	return checkCoordinate("column", p.Col, span)
}

func checkCoordinate(what string, n int, span source.Span) error {
	if n >= 0 && n <= MaxCoordinate {
		return nil
	}
	return &verr.SpecError{
		Cause:  ErrCoordinateOutOfRange,
		Detail: fmt.Sprintf("%v %v is not in 0..%v", what, n, MaxCoordinate),
		Span:   span,
	}
}

// KeyAt is the content of a layout cell: either a spacer or a key wired to a matrix position.
type KeyAt struct {
	pos   MatrixPosition
	space bool
}

func Space() KeyAt {
	return KeyAt{
		space: true,
	}
}

func Located(pos MatrixPosition) KeyAt {
	return KeyAt{
		pos: pos,
	}
}

func (k KeyAt) IsSpace() bool {
	return k.space
}

// Matrix returns the matrix position of a located cell. ok is false for a spacer.
func (k KeyAt) Matrix() (pos MatrixPosition, ok bool) {
	if k.space {
		return MatrixPosition{}, false
	}
	return k.pos, true
}

func (k KeyAt) String() string {
	if k.space {
		return "space"
	}
	return k.pos.String()
}
