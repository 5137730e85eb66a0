package format

import (
	"strings"
	"testing"

	"github.com/kbdl/kbdl/keymap"
	"github.com/kbdl/kbdl/spec"
	"github.com/stretchr/testify/require"
)

func format(t *testing.T, src string) string {
	t.Helper()
	f, err := spec.ParseBytes([]byte(src))
	require.NoError(t, err)
	meta, err := keymap.Resolve(f)
	require.NoError(t, err)
	var b strings.Builder
	require.NoError(t, Format(&b, meta))
	return b.String()
}

func TestFormat(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		expected string
	}{
		{
			caption: "chords get a column of their own",
			src: `layout {  3k ; }
options firmware { hold_tap_timeout : "300" ; custom_event: "Ev(\"x\")"; }
key cut { out firmware: "C\\D"; }
layer base { 'a' >esc< 'b' 'c'; }
layer nav { f10 f1 >'x'< n; }`,
			expected: `layout {
    3k;
}

options firmware {
    hold_tap_timeout: "300";
    custom_event: "Ev(\"x\")";
}

key cut {
    out firmware: "C\\D";
}

layer base {
    'a' >esc< 'b'       'c';
}

layer nav {
    f10       f1  >'x'< n;
}
`,
		},
		{
			caption: "spacers are left blank",
			src:     `layout { 1k 1s 1k; 3k; } layer base { 'a' 'b'; 'c' 'd' 'e'; }`,
			expected: `layout {
    1k 1s 1k;
    3k;
}

layer base {
    'a'     'b';
    'c' 'd' 'e';
}
`,
		},
		{
			caption: "the indent is an option",
			src:     `layout { 2k; } options formatter { indent: "2"; } layer base { 'a'@~lctrl[150] [nav]; } layer nav { "'" '"'; }`,
			expected: `layout {
  2k;
}

options formatter {
  indent: "2";
}

layer base {
  'a'@~lctrl[150] [nav];
}

layer nav {
  "'"             '"';
}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			require.Equal(t, tt.expected, format(t, tt.src))
		})
	}
}

func TestFormat_Idempotent(t *testing.T) {
	src := `
layout { 5k 2s 5k; 4k [5] 2s 5k; }
options diagram { keyboard: "ferris/sweep"; }
layer base {
    'q' 'w' >esc< 'e' 'r' 't' 'y' 'u' 'i' 'o' 'p';
    'a'@lctrl 's' 'd' 'f' 'g' 'h' 'j' >'-'< 'k' 'l' [nav];
}
layer nav {
    f1 f2 f3 f4 f5 f6 f7 f8 f9 f10;
    n n n n n left down up right end;
}
layer sym { "'" "\\" '"'; }
`
	once := format(t, src)
	require.Contains(t, once, `'\'`)
	require.NotContains(t, once, `"\"`)
	twice := format(t, once)
	require.Equal(t, once, twice)

	// The formatted description means the same thing.
	parse := func(s string) *spec.FileNode {
		f, err := spec.ParseBytes([]byte(s))
		require.NoError(t, err)
		return f
	}
	before, err := keymap.Resolve(parse(src))
	require.NoError(t, err)
	after, err := keymap.Resolve(parse(once))
	require.NoError(t, err)
	require.Equal(t, before.Layout.LayoutToMatrix, after.Layout.LayoutToMatrix)
	for i, l := range before.Layers.Layers {
		al := after.Layers.Layers[i]
		require.Len(t, al.Keys, len(l.Keys))
		for j, k := range l.Keys {
			require.Equal(t, k.Key.Text(), al.Keys[j].Key.Text())
			require.Equal(t, k.Matrix, al.Keys[j].Matrix)
		}
		require.Len(t, al.Chords, len(l.Chords))
		for j, c := range l.Chords {
			require.Equal(t, c.Chord.Text(), al.Chords[j].Chord.Text())
			require.Equal(t, c.Left, al.Chords[j].Left)
			require.Equal(t, c.Right, al.Chords[j].Right)
		}
	}
}

func TestFormat_InvalidIndent(t *testing.T) {
	f, err := spec.ParseBytes([]byte(`layout { 1k; } options formatter { indent: "wide"; }`))
	require.NoError(t, err)
	meta, err := keymap.Resolve(f)
	require.NoError(t, err)
	var b strings.Builder
	require.ErrorIs(t, Format(&b, meta), keymap.ErrInvalidOptionValue)
}
