package spec

import (
	"fmt"
	"strings"

	"github.com/kbdl/kbdl/source"
)

// FileNode is the root of a keyboard description.
type FileNode struct {
	Layout  *LayoutNode
	Options []*OptionsNode
	Keys    []*KeyDeclNode
	Layers  []*LayerNode
	Span    source.Span
}

type LayoutNode struct {
	Rows []*LayoutRowNode
	Span source.Span
}

type LayoutRowNode struct {
	Items     []*LayoutItemNode
	Semicolon source.Span
	Span      source.Span
}

type LayoutItemKind int

const (
	// LayoutItemKeys is `Nk`: N consecutive keys.
	LayoutItemKeys LayoutItemKind = iota
	// LayoutItemSpaces is `Ns`: N consecutive spacer cells.
	LayoutItemSpaces
	// LayoutItemRemap is `[N]`: the next physical cell is wired to matrix column N.
	LayoutItemRemap
)

type LayoutItemNode struct {
	Kind   LayoutItemKind
	Count  int
	Column int
	Span   source.Span
}

func (n *LayoutItemNode) Text() string {
	switch n.Kind {
	case LayoutItemKeys:
		return fmt.Sprintf("%vk", n.Count)
	case LayoutItemSpaces:
		return fmt.Sprintf("%vs", n.Count)
	default:
		return fmt.Sprintf("[%v]", n.Column)
	}
}

type OptionsNode struct {
	Backend     string
	BackendSpan source.Span
	Options     []*OptionNode
	Span        source.Span
}

type OptionNode struct {
	Name      string
	NameSpan  source.Span
	Value     string
	ValueSpan source.Span
	Span      source.Span
}

type KeyDeclNode struct {
	Name     string
	NameSpan source.Span
	Outputs  []*KeyOutputNode
	Span     source.Span
}

type KeyOutputNode struct {
	Backend     string
	BackendSpan source.Span
	Text        string
	Span        source.Span
}

type LayerNode struct {
	Name     string
	NameSpan source.Span
	Rows     []*LayerRowNode
	Span     source.Span
}

type LayerRowNode struct {
	Items     []RowItem
	Semicolon source.Span
	Span      source.Span
}

// RowItem is either a *KeyNode or a *ChordNode.
type RowItem interface {
	ItemSpan() source.Span
	Text() string
	isRowItem()
}

type HoldTapKind int

const (
	// HoldTapPermissive is written `tap@hold`.
	HoldTapPermissive HoldTapKind = iota
	// HoldTapOnOtherKeyPress is written `tap@~hold`.
	HoldTapOnOtherKeyPress
)

// KeyNode is a plain key when Hold is nil, and a mod-tap key otherwise.
type KeyNode struct {
	Tap     *PlainKeyNode
	Hold    *PlainKeyNode
	HoldTap HoldTapKind
	// Timeout overrides the hold timeout of a mod-tap key when it is greater than 0.
	Timeout int
	Span    source.Span
}

func (k *KeyNode) IsModTap() bool {
	return k.Hold != nil
}

func (k *KeyNode) ItemSpan() source.Span {
	return k.Span
}

func (k *KeyNode) Text() string {
	if !k.IsModTap() {
		return k.Tap.Text()
	}
	var b strings.Builder
	b.WriteString(k.Tap.Text())
	b.WriteString("@")
	if k.HoldTap == HoldTapOnOtherKeyPress {
		b.WriteString("~")
	}
	b.WriteString(k.Hold.Text())
	if k.Timeout > 0 {
		fmt.Fprintf(&b, "[%v]", k.Timeout)
	}
	return b.String()
}

func (k *KeyNode) isRowItem() {}

// ChordNode is `>key<`: a key bound to the simultaneous press of its two neighbours.
type ChordNode struct {
	Key  *KeyNode
	Span source.Span
}

func (c *ChordNode) ItemSpan() source.Span {
	return c.Span
}

func (c *ChordNode) Text() string {
	return ">" + c.Key.Text() + "<"
}

func (c *ChordNode) isRowItem() {}

type PlainKeyKind int

const (
	PlainKeyNamed PlainKeyKind = iota
	PlainKeyLayer
	PlainKeyChar
)

type PlainKeyNode struct {
	Kind PlainKeyKind
	// Name is the key name of a named key or the layer name of a layer reference.
	Name string
	Char rune
	// Quote is the delimiter a character key was written with.
	Quote rune
	Span  source.Span
}

func (k *PlainKeyNode) Text() string {
	switch k.Kind {
	case PlainKeyLayer:
		return "[" + k.Name + "]"
	case PlainKeyChar:
		q := k.Quote
		if q == 0 {
			q = '\''
		}
		// A backslash has no escape in a character literal but starts one in a string.
		switch {
		case k.Char == '\\':
			q = '\''
		case k.Char == '\'' && q == '\'':
			q = '"'
		case k.Char == '"' && q == '"':
			q = '\''
		}
		return string([]rune{q, k.Char, q})
	default:
		return k.Name
	}
}

// The following constructors build span-less nodes. They are meant for trees written by hand.

func NamedKey(name string) *PlainKeyNode {
	return &PlainKeyNode{
		Kind: PlainKeyNamed,
		Name: name,
	}
}

func LayerRef(name string) *PlainKeyNode {
	return &PlainKeyNode{
		Kind: PlainKeyLayer,
		Name: name,
	}
}

func CharKey(c rune) *PlainKeyNode {
	return &PlainKeyNode{
		Kind: PlainKeyChar,
		Char: c,
	}
}

func PlainKey(p *PlainKeyNode) *KeyNode {
	return &KeyNode{
		Tap: p,
	}
}

func ModTapKey(tap, hold *PlainKeyNode, kind HoldTapKind) *KeyNode {
	return &KeyNode{
		Tap:     tap,
		Hold:    hold,
		HoldTap: kind,
	}
}

func Chord(k *KeyNode) *ChordNode {
	return &ChordNode{
		Key: k,
	}
}
