package keymap

import (
	"fmt"

	verr "github.com/kbdl/kbdl/error"
	"github.com/kbdl/kbdl/source"
	"github.com/kbdl/kbdl/spec"
)

type ResolvedKey struct {
	Key      *spec.KeyNode
	Layout   LayoutPos
	Physical PhysicalPos
	Matrix   MatrixPosition
}

// ResolvedChord is a chord with the matrix positions of the two keys it sits between.
type ResolvedChord struct {
	Chord *spec.ChordNode
	Left  MatrixPosition
	Right MatrixPosition

	// LeftLayout is the layout position of the left key.
	LeftLayout LayoutPos
}

type LayerMeta struct {
	Name   string
	Node   *spec.LayerNode
	Keys   []*ResolvedKey
	Chords []*ResolvedChord
}

type LayersMeta struct {
	// Names lists the layers in declaration order. The position of a name is the index of its layer.
	Names  []string
	Index  map[string]int
	Layers []*LayerMeta
}

// Lookup returns the index of a layer.
func (l *LayersMeta) Lookup(name string) (int, bool) {
	i, ok := l.Index[name]
	return i, ok
}

// ResolveLayers indexes the layers by name and resolves each of them against layout.
func ResolveLayers(layout *LayoutMeta, nodes []*spec.LayerNode) (*LayersMeta, error) {
	meta := &LayersMeta{
		Index: map[string]int{},
	}
	decls := map[string]*spec.LayerNode{}
	for _, n := range nodes {
		if prev, ok := decls[n.Name]; ok {
			return nil, &verr.SpecError{
				Cause:  ErrDuplicateLayer,
				Detail: n.Name,
				Span:   n.NameSpan,
				Labels: []*verr.Label{
					verr.NewLabel(prev.NameSpan, "first declared here"),
				},
			}
		}
		decls[n.Name] = n
		meta.Index[n.Name] = len(meta.Names)
		meta.Names = append(meta.Names, n.Name)
	}

	for _, n := range nodes {
		l, err := ResolveLayer(layout, n)
		if err != nil {
			return nil, err
		}
		meta.Layers = append(meta.Layers, l)
	}

	return meta, nil
}

// ResolveLayer binds every key of a layer to the layout position under it, and every chord to the
// matrix positions of its two neighbours.
func ResolveLayer(layout *LayoutMeta, node *spec.LayerNode) (*LayerMeta, error) {
	meta := &LayerMeta{
		Name: node.Name,
		Node: node,
	}

	for row, rowNode := range node.Rows {
		if row >= layout.Height {
			return nil, &verr.SpecError{
				Cause:  ErrImpossibleKeyLocation,
				Detail: fmt.Sprintf("layer %v has row %v but the layout has only %v rows", node.Name, row+1, layout.Height),
				Span:   rowNode.Span,
			}
		}

		col := 0
		for i, item := range rowNode.Items {
			switch it := item.(type) {
			case *spec.KeyNode:
				pos := LayoutPos{Col: col, Row: row}
				mat, ok := layout.MatrixAt(pos)
				if !ok {
					return nil, impossibleKeyError(layout, pos, it.Span)
				}
				meta.Keys = append(meta.Keys, &ResolvedKey{
					Key:      it,
					Layout:   pos,
					Physical: layout.LayoutToPhys[pos],
					Matrix:   mat,
				})
				col++
			case *spec.ChordNode:
				c, err := resolveChord(layout, rowNode, i, row, col)
				if err != nil {
					return nil, err
				}
				meta.Chords = append(meta.Chords, c)
			}
		}
	}

	return meta, nil
}

func resolveChord(layout *LayoutMeta, rowNode *spec.LayerRowNode, i, row, col int) (*ResolvedChord, error) {
	chord := rowNode.Items[i].(*spec.ChordNode)

	var prev, next spec.RowItem
	if i > 0 {
		prev = rowNode.Items[i-1]
	}
	if i+1 < len(rowNode.Items) {
		next = rowNode.Items[i+1]
	}
	_, prevIsKey := prev.(*spec.KeyNode)
	_, nextIsKey := next.(*spec.KeyNode)
	if !prevIsKey || !nextIsKey {
		prevSpan := rowNode.Span.Start()
		prevMsg := "the row starts here"
		if prev != nil {
			prevSpan = prev.ItemSpan()
			prevMsg = "previous item"
		}
		nextSpan := rowNode.Semicolon
		nextMsg := "the row ends here"
		if next != nil {
			nextSpan = next.ItemSpan()
			nextMsg = "next item"
		}
		return nil, &verr.SpecError{
			Cause:  ErrBadChordPositions,
			Detail: chord.Text(),
			Span:   chord.Span,
			Labels: []*verr.Label{
				verr.NewLabel(prevSpan, prevMsg),
				verr.NewLabel(nextSpan, nextMsg),
			},
			Help: "write the chord between the two keys that trigger it, as in `a >x< b`",
		}
	}

	leftPos := LayoutPos{Col: col - 1, Row: row}
	left, ok := layout.MatrixAt(leftPos)
	if !ok {
		return nil, impossibleKeyError(layout, leftPos, prev.ItemSpan())
	}
	right, ok := layout.MatrixAt(LayoutPos{Col: col, Row: row})
	if !ok {
		return nil, impossibleKeyError(layout, LayoutPos{Col: col, Row: row}, next.ItemSpan())
	}

	return &ResolvedChord{
		Chord:      chord,
		Left:       left,
		Right:      right,
		LeftLayout: leftPos,
	}, nil
}

func impossibleKeyError(layout *LayoutMeta, pos LayoutPos, span source.Span) error {
	return &verr.SpecError{
		Cause:  ErrImpossibleKeyLocation,
		Detail: fmt.Sprintf("row %v of the layout has only %v keys", pos.Row+1, layout.RowKeys[pos.Row]),
		Span:   span,
	}
}
