package keymap

import (
	"fmt"

	verr "github.com/kbdl/kbdl/error"
	"github.com/kbdl/kbdl/source"
	"github.com/kbdl/kbdl/spec"
)

// LayoutMeta relates the three coordinate spaces of a layout block.
type LayoutMeta struct {
	PhysToMatrix   map[PhysicalPos]KeyAt
	LayoutToMatrix map[LayoutPos]KeyAt
	LayoutToPhys   map[LayoutPos]PhysicalPos
	PhysToLayout   map[PhysicalPos]LayoutPos

	// RowKeys is the number of keys (layout columns) of each row.
	RowKeys []int

	// Width and Height are the dimensions of the matrix. Width is the physical width of a row.
	Width  int
	Height int
}

// MatrixAt returns the matrix position of the key at a layout position.
func (l *LayoutMeta) MatrixAt(pos LayoutPos) (MatrixPosition, bool) {
	k, ok := l.LayoutToMatrix[pos]
	if !ok {
		return MatrixPosition{}, false
	}
	return k.Matrix()
}

// LayoutAt returns the layout position of the key at a matrix position.
func (l *LayoutMeta) LayoutAt(pos MatrixPosition) (LayoutPos, bool) {
	for lp, k := range l.LayoutToMatrix {
		if m, ok := k.Matrix(); ok && m == pos {
			return lp, true
		}
	}
	return LayoutPos{}, false
}

// KeyIndex returns the index of a layout position when the keys are numbered row by row.
func (l *LayoutMeta) KeyIndex(pos LayoutPos) int {
	i := 0
	for r := 0; r < pos.Row && r < len(l.RowKeys); r++ {
		i += l.RowKeys[r]
	}
	return i + pos.Col
}

// KeyCount returns the number of keys in the layout.
func (l *LayoutMeta) KeyCount() int {
	n := 0
	for _, c := range l.RowKeys {
		n += c
	}
	return n
}

type layoutResolver struct {
	meta   *LayoutMeta
	claims map[MatrixPosition]source.Span
}

// ResolveLayout walks the layout block, assigning a physical, layout and matrix position to every
// cell. It fails when two cells claim the same matrix position or when rows differ in width.
func ResolveLayout(node *spec.LayoutNode) (*LayoutMeta, error) {
	if node == nil || len(node.Rows) == 0 {
		var span source.Span
		if node != nil {
			span = node.Span
		}
		return nil, &verr.SpecError{
			Cause: ErrEmptyLayout,
			Span:  span,
		}
	}

	r := &layoutResolver{
		meta: &LayoutMeta{
			PhysToMatrix:   map[PhysicalPos]KeyAt{},
			LayoutToMatrix: map[LayoutPos]KeyAt{},
			LayoutToPhys:   map[LayoutPos]PhysicalPos{},
			PhysToLayout:   map[PhysicalPos]LayoutPos{},
		},
		claims: map[MatrixPosition]source.Span{},
	}

	for row, rowNode := range node.Rows {
		if err := checkCoordinate("row", row, rowNode.Span); err != nil {
			return nil, err
		}
		width, keys, err := r.resolveRow(row, rowNode)
		if err != nil {
			return nil, err
		}

		if row == 0 {
			r.meta.Width = width
		} else if width != r.meta.Width {
			return nil, &verr.SpecError{
				Cause:  ErrInconsistentMatrixWidth,
				Detail: fmt.Sprintf("expected %v columns, found %v", r.meta.Width, width),
				Span:   rowNode.Span,
				Labels: []*verr.Label{
					verr.NewLabel(node.Rows[0].Span, fmt.Sprintf("the first row is %v columns wide", r.meta.Width)),
				},
			}
		}
		r.meta.RowKeys = append(r.meta.RowKeys, keys)
	}

	// A remapped column is only known to be out of the matrix once the width is.
	for row, rowNode := range node.Rows {
		for _, item := range rowNode.Items {
			if item.Kind != spec.LayoutItemRemap || item.Column < r.meta.Width {
				continue
			}
			return nil, &verr.SpecError{
				Cause:  ErrRemapOutOfMatrix,
				Detail: fmt.Sprintf("column %v of row %v, the matrix is %v columns wide", item.Column, row, r.meta.Width),
				Span:   item.Span,
			}
		}
	}

	r.meta.Height = len(node.Rows)

	return r.meta, nil
}

func (r *layoutResolver) resolveRow(row int, node *spec.LayoutRowNode) (int, int, error) {
	physCol := 0
	layoutCol := 0
	for _, item := range node.Items {
		switch item.Kind {
		case spec.LayoutItemKeys:
			if item.Count <= 0 {
				return 0, 0, zeroCountError(item)
			}
			for i := 0; i < item.Count; i++ {
				err := r.claim(PhysicalPos{Col: physCol, Row: row}, LayoutPos{Col: layoutCol, Row: row}, NewMatrixPosition(physCol, row), item.Span)
				if err != nil {
					return 0, 0, err
				}
				physCol++
				layoutCol++
			}
		case spec.LayoutItemRemap:
			err := r.claim(PhysicalPos{Col: physCol, Row: row}, LayoutPos{Col: layoutCol, Row: row}, NewMatrixPosition(item.Column, row), item.Span)
			if err != nil {
				return 0, 0, err
			}
			physCol++
			layoutCol++
		case spec.LayoutItemSpaces:
			if item.Count <= 0 {
				return 0, 0, zeroCountError(item)
			}
			for i := 0; i < item.Count; i++ {
				if err := checkCoordinate("column", physCol, item.Span); err != nil {
					return 0, 0, err
				}
				r.meta.PhysToMatrix[PhysicalPos{Col: physCol, Row: row}] = Space()
				physCol++
			}
		}
	}
	return physCol, layoutCol, nil
}

func (r *layoutResolver) claim(phys PhysicalPos, lay LayoutPos, mat MatrixPosition, span source.Span) error {
	if err := CheckMatrixPosition(mat, span); err != nil {
		return err
	}
	if err := checkCoordinate("column", phys.Col, span); err != nil {
		return err
	}
	if prev, ok := r.claims[mat]; ok {
		return &verr.SpecError{
			Cause:  ErrOverlappingKeys,
			Detail: fmt.Sprintf("matrix position %v is claimed twice", mat),
			Span:   span,
			Labels: []*verr.Label{
				verr.NewLabel(prev, "first claimed here"),
			},
		}
	}
	r.claims[mat] = span

	r.meta.PhysToMatrix[phys] = Located(mat)
	r.meta.LayoutToMatrix[lay] = Located(mat)
	r.meta.LayoutToPhys[lay] = phys
	r.meta.PhysToLayout[phys] = lay
	return nil
}

func zeroCountError(item *spec.LayoutItemNode) error {
	return &verr.SpecError{
		Cause:  ErrZeroCount,
		Detail: item.Text(),
		Span:   item.Span,
	}
}
