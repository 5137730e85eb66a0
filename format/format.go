// Package format prints a keyboard description in canonical form. The keys of every layer are
// aligned on the physical columns of the layout, so layers read like the keyboard they describe.
package format

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kbdl/kbdl/keymap"
	"github.com/kbdl/kbdl/spec"
)

const defaultIndent = 4

type columnWidth struct {
	key   int
	chord int
}

type formatter struct {
	meta   *keymap.Metadata
	indent string
	widths []*columnWidth
}

// Format writes the layout block, then the options, the key declarations and the layers.
func Format(w io.Writer, meta *keymap.Metadata) error {
	indent, err := meta.Options.Int(keymap.BackendFormatter, "indent", defaultIndent)
	if err != nil {
		return err
	}
	f := &formatter{
		meta:   meta,
		indent: strings.Repeat(" ", indent),
		widths: columnWidths(meta),
	}

	var blocks []string
	blocks = append(blocks, f.layout(meta.File.Layout))
	for _, o := range meta.File.Options {
		blocks = append(blocks, f.options(o))
	}
	for _, k := range meta.File.Keys {
		blocks = append(blocks, f.keyDecl(k))
	}
	for _, l := range meta.Layers.Layers {
		blocks = append(blocks, f.layer(l))
	}

	_, err = io.WriteString(w, strings.Join(blocks, "\n"))
	return err
}

func columnWidths(meta *keymap.Metadata) []*columnWidth {
	widths := make([]*columnWidth, meta.Layout.Width)
	for i := range widths {
		widths[i] = &columnWidth{}
	}
	for _, l := range meta.Layers.Layers {
		for _, k := range l.Keys {
			cw := widths[k.Physical.Col]
			cw.key = max(cw.key, utf8.RuneCountInString(k.Key.Text()))
		}
		for _, c := range l.Chords {
			phys := meta.Layout.LayoutToPhys[c.LeftLayout]
			cw := widths[phys.Col]
			cw.chord = max(cw.chord, utf8.RuneCountInString(c.Chord.Text()))
		}
	}
	return widths
}

func (f *formatter) layout(n *spec.LayoutNode) string {
	var b strings.Builder
	b.WriteString("layout {\n")
	for _, row := range n.Rows {
		items := make([]string, 0, len(row.Items))
		for _, item := range row.Items {
			items = append(items, item.Text())
		}
		fmt.Fprintf(&b, "%v%v;\n", f.indent, strings.Join(items, " "))
	}
	b.WriteString("}\n")
	return b.String()
}

func (f *formatter) options(n *spec.OptionsNode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "options %v {\n", n.Backend)
	for _, o := range n.Options {
		fmt.Fprintf(&b, "%v%v: %v;\n", f.indent, o.Name, quote(o.Value))
	}
	b.WriteString("}\n")
	return b.String()
}

func (f *formatter) keyDecl(n *spec.KeyDeclNode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "key %v {\n", n.Name)
	for _, o := range n.Outputs {
		fmt.Fprintf(&b, "%vout %v: %v;\n", f.indent, o.Backend, quote(o.Text))
	}
	b.WriteString("}\n")
	return b.String()
}

func (f *formatter) layer(l *keymap.LayerMeta) string {
	keys := map[keymap.LayoutPos]*keymap.ResolvedKey{}
	for _, k := range l.Keys {
		keys[k.Layout] = k
	}
	chords := map[keymap.LayoutPos]*keymap.ResolvedChord{}
	for _, c := range l.Chords {
		chords[c.LeftLayout] = c
	}

	var b strings.Builder
	fmt.Fprintf(&b, "layer %v {\n", l.Name)
	for row := range l.Node.Rows {
		var cells []string
		for col, cw := range f.widths {
			var key, chord string
			if lp, ok := f.meta.Layout.PhysToLayout[keymap.PhysicalPos{Col: col, Row: row}]; ok {
				if k, ok := keys[lp]; ok {
					key = k.Key.Text()
				}
				if c, ok := chords[lp]; ok {
					chord = c.Chord.Text()
				}
			}
			cells = append(cells, pad(key, cw.key))
			if cw.chord > 0 {
				cells = append(cells, pad(chord, cw.chord))
			}
		}
		fmt.Fprintf(&b, "%v%v;\n", f.indent, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	b.WriteString("}\n")
	return b.String()
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
