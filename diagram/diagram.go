// Package diagram describes a keyboard for keymap-drawer.
package diagram

import (
	"io"

	"github.com/kbdl/kbdl/keymap"
	"github.com/kbdl/kbdl/keys"
	"github.com/kbdl/kbdl/spec"
	"gopkg.in/yaml.v3"
)

type Document struct {
	Layout *Layout  `yaml:"layout"`
	Layers Layers   `yaml:"layers"`
	Combos []*Combo `yaml:"combos"`
}

type Layout struct {
	QMKKeyboard string `yaml:"qmk_keyboard"`
	QMKLayout   string `yaml:"qmk_layout,omitempty"`
}

// Key is the label of a key. A key without labels is drawn blank.
type Key struct {
	Tap  string `yaml:"tap,omitempty"`
	Hold string `yaml:"hold,omitempty"`
}

type Layer struct {
	Name string
	Rows [][]*Key
}

// Layers keeps the layers in declaration order when written as a mapping.
type Layers []*Layer

func (l Layers) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{
		Kind: yaml.MappingNode,
	}
	for _, layer := range l {
		rows := &yaml.Node{}
		if err := rows.Encode(layer.Rows); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: layer.Name,
		}, rows)
	}
	return n, nil
}

// Combo is a chord. KeyPositions index the keys of the layout row by row; MatrixPositions are
// [column, row] pairs.
type Combo struct {
	KeyPositions    []int    `yaml:"key_positions,flow"`
	MatrixPositions [][]int  `yaml:"matrix_positions,flow"`
	Key             *Key     `yaml:"key"`
	Layers          []string `yaml:"layers,flow"`
}

type comboKey struct {
	left  keymap.MatrixPosition
	right keymap.MatrixPosition
	key   Key
}

// Build requires the `keyboard` option of the diagram backend. The `layout` option is optional.
func Build(meta *keymap.Metadata) (*Document, error) {
	kb, err := meta.Options.Require(keymap.BackendDiagram, "keyboard")
	if err != nil {
		return nil, err
	}
	doc := &Document{
		Layout: &Layout{
			QMKKeyboard: kb.Value,
			QMKLayout:   meta.Options.Get(keymap.BackendDiagram, "layout", ""),
		},
		Combos: []*Combo{},
	}

	l := &labeler{
		meta: meta,
	}
	combos := map[comboKey]*Combo{}
	for _, layer := range meta.Layers.Layers {
		rows := make([][]*Key, meta.Layout.Height)
		for r := range rows {
			rows[r] = make([]*Key, meta.Layout.RowKeys[r])
			for c := range rows[r] {
				rows[r][c] = &Key{}
			}
		}
		for _, k := range layer.Keys {
			key, err := l.label(k.Key)
			if err != nil {
				return nil, err
			}
			rows[k.Layout.Row][k.Layout.Col] = key
		}
		doc.Layers = append(doc.Layers, &Layer{
			Name: layer.Name,
			Rows: rows,
		})

		for _, c := range layer.Chords {
			key, err := l.label(c.Chord.Key)
			if err != nil {
				return nil, err
			}
			ck := comboKey{
				left:  c.Left,
				right: c.Right,
				key:   *key,
			}
			if combo, ok := combos[ck]; ok {
				if combo.Layers[len(combo.Layers)-1] != layer.Name {
					combo.Layers = append(combo.Layers, layer.Name)
				}
				continue
			}
			left := meta.Layout.KeyIndex(c.LeftLayout)
			combo := &Combo{
				KeyPositions: []int{left, left + 1},
				MatrixPositions: [][]int{
					{c.Left.Col, c.Left.Row},
					{c.Right.Col, c.Right.Row},
				},
				Key:    key,
				Layers: []string{layer.Name},
			}
			combos[ck] = combo
			doc.Combos = append(doc.Combos, combo)
		}
	}

	return doc, nil
}

func (d *Document) Render(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

type labeler struct {
	meta *keymap.Metadata
}

func (l *labeler) label(k *spec.KeyNode) (*Key, error) {
	tap, err := l.labelPlain(k.Tap)
	if err != nil {
		return nil, err
	}
	key := &Key{
		Tap: tap,
	}
	if k.IsModTap() {
		key.Hold, err = l.labelPlain(k.Hold)
		if err != nil {
			return nil, err
		}
	}
	return key, nil
}

func (l *labeler) labelPlain(k *spec.PlainKeyNode) (string, error) {
	switch k.Kind {
	case spec.PlainKeyLayer:
		if _, err := l.meta.Layers.ResolveRef(k); err != nil {
			return "", err
		}
		return k.Name, nil
	case spec.PlainKeyChar:
		if _, ok := keys.LookupChar(k.Char); !ok {
			return "", keymap.UnknownCharKeyError(k)
		}
		return string(k.Char), nil
	default:
		if c, ok := l.meta.CustomKeys.Lookup(keymap.BackendDiagram, k.Name); ok {
			return c.Text, nil
		}
		named, ok := keys.Lookup(k.Name)
		if !ok {
			return "", l.meta.UnknownNamedKeyError(keymap.BackendDiagram, k)
		}
		return named.Code, nil
	}
}
