// Package firmware compiles a resolved description into keyberon layers and a chord table.
package firmware

import (
	"fmt"
	"io"
	"strings"

	"github.com/kbdl/kbdl/keymap"
	"github.com/kbdl/kbdl/spec"
)

// Table holds one action per matrix position and layer. Chords occupy the rows below the physical
// matrix.
type Table struct {
	Width       int
	Rows        int
	LayerNames  []string
	Layers      [][][]Action
	Chords      []*ChordEntry
	CustomEvent string
}

// Action returns the action bound to a matrix position on a layer.
func (t *Table) Action(layer int, pos keymap.MatrixPosition) Action {
	return t.Layers[layer][pos.Row][pos.Col]
}

type boundKey struct {
	pos    keymap.MatrixPosition
	action Action
}

// Build allocates the chord slots of every layer and binds every key. Layers are processed in
// declaration order, so the same description always yields the same table.
func Build(meta *keymap.Metadata) (*Table, error) {
	binder, err := NewBinder(meta)
	if err != nil {
		return nil, err
	}
	alloc := NewAllocator(meta.Layout.Width, meta.Layout.Height)

	bound := make([][]*boundKey, 0, len(meta.Layers.Layers))
	for _, layer := range meta.Layers.Layers {
		keys, err := bindLayer(layer, alloc, binder)
		if err != nil {
			return nil, err
		}
		bound = append(bound, keys)
	}

	t := &Table{
		Width:       meta.Layout.Width,
		Rows:        alloc.Rows(),
		LayerNames:  meta.Layers.Names,
		Chords:      alloc.Entries(),
		CustomEvent: meta.Options.Get(keymap.BackendFirmware, "custom_event", defaultCustomEvent),
	}
	for _, keys := range bound {
		grid := make([][]Action, t.Rows)
		for r := range grid {
			grid[r] = make([]Action, t.Width)
			for c := range grid[r] {
				grid[r][c] = &NoOp{}
			}
		}
		for _, k := range keys {
			grid[k.pos.Row][k.pos.Col] = k.action
		}
		t.Layers = append(t.Layers, grid)
	}

	return t, nil
}

func bindLayer(layer *keymap.LayerMeta, alloc *Allocator, binder *Binder) ([]*boundKey, error) {
	matrix := map[keymap.MatrixPosition]*spec.KeyNode{}
	var order []keymap.MatrixPosition
	for _, c := range layer.Chords {
		pos, err := alloc.Allocate(ChordPair{Left: c.Left, Right: c.Right}, c.Chord.Span)
		if err != nil {
			return nil, err
		}
		if _, ok := matrix[pos]; !ok {
			order = append(order, pos)
		}
		matrix[pos] = c.Chord.Key
	}
	for _, k := range layer.Keys {
		if _, ok := matrix[k.Matrix]; !ok {
			order = append(order, k.Matrix)
		}
		matrix[k.Matrix] = k.Key
	}

	// Keys are bound before chords, each in the order they were written.
	bound := make([]*boundKey, 0, len(order))
	for _, pass := range []bool{false, true} {
		for _, pos := range order {
			if alloc.IsExtra(pos) != pass {
				continue
			}
			a, err := binder.Bind(matrix[pos])
			if err != nil {
				return nil, err
			}
			bound = append(bound, &boundKey{
				pos:    pos,
				action: a,
			})
		}
	}
	return bound, nil
}

// Render writes the chord table and the layers as Rust source.
func (t *Table) Render(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "pub fn chorder() -> super::chord::Chorder {\n")
	fmt.Fprintf(&b, "    dilemma_macros::chords!(\n")
	for _, c := range t.Chords {
		fmt.Fprintf(&b, "        [(%v, %v), (%v, %v)] => [(%v, %v)],\n",
			c.Pair.Left.Row, c.Pair.Left.Col, c.Pair.Right.Row, c.Pair.Right.Col, c.Pos.Row, c.Pos.Col)
	}
	fmt.Fprintf(&b, "    )\n")
	fmt.Fprintf(&b, "}\n")

	fmt.Fprintf(&b, "pub static LAYERS: ::keyberon::layout::Layers<%v, %v, %v, %v> = [\n", t.Width, t.Rows, len(t.Layers), t.CustomEvent)
	for _, grid := range t.Layers {
		fmt.Fprintf(&b, "  [\n")
		for _, row := range grid {
			fmt.Fprintf(&b, "    [")
			for _, a := range row {
				fmt.Fprintf(&b, "%v, ", a.Render())
			}
			fmt.Fprintf(&b, "],\n")
		}
		fmt.Fprintf(&b, "  ],\n")
	}
	fmt.Fprintf(&b, "];\n")

	_, err := io.WriteString(w, b.String())
	return err
}
