package driver

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	verr "github.com/kbdl/kbdl/error"
	"github.com/kbdl/kbdl/keymap"
	"github.com/stretchr/testify/require"
)

const sweep = `
layout { 5k 2s 5k; 5k 2s 5k; 5k 2s 5k; 3s 2k 2s 2k 3s; }
options diagram { keyboard: "ferris/sweep"; layout: "LAYOUT_split_3x5_2"; }
layer base {
    'q' 'w' 'e' 'r' 't'   'y' 'u' 'i' 'o' 'p';
    'a'@lgui 's'@lalt 'd'@lshift 'f'@lctrl 'g'   'h' 'j'@rctrl 'k'@rshift 'l'@ralt ';'@rgui;
    'z' >esc< 'x' 'c' 'v' 'b'   'n' 'm' ',' >enter< '.' '/';
    [nav] space   bspace >del< [num];
}
layer nav {
    tab n n n n   pgup n up n pgdown;
    lgui lalt lshift lctrl n   n left down right end;
    'z' >esc< 'x' n n n   n n n >enter< n n;
    n space   bspace >del< n;
}
layer num {
    '1' '2' '3' '4' '5'   '6' '7' '8' '9' '0';
    '!' '@' '#' '$' '%'   '^' '&' '*' '(' ')';
    f1 f2 f3 f4 f5   f6 f7 f8 f9 f10;
    n n   n n;
}
`

func TestCompile(t *testing.T) {
	for _, target := range targets {
		t.Run(target.String(), func(t *testing.T) {
			out, err := Compile("sweep.kbdl", []byte(sweep), target)
			require.NoError(t, err)
			require.NotEmpty(t, out)

			again, err := Compile("sweep.kbdl", []byte(sweep), target)
			require.NoError(t, err)
			require.Equal(t, out, again)
		})
	}
}

func TestCompile_Firmware(t *testing.T) {
	out, err := Compile("sweep.kbdl", []byte(sweep), TargetFirmware)
	require.NoError(t, err)
	s := string(out)
	require.Contains(t, s, "Layers<12, 5, 3, ()>")
	require.Contains(t, s, "[(2, 0), (2, 1)] => [(4, 0)],")
	require.Contains(t, s, "[(2, 9), (2, 10)] => [(4, 1)],")
	require.Contains(t, s, "[(3, 7), (3, 8)] => [(4, 2)],")
	require.Equal(t, 3, strings.Count(s, "=> ["))
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile("broken.kbdl", []byte("layout { 2k; }\nlayer base { spac 'a'; }\n"), TargetFirmware)
	require.True(t, errors.Is(err, keymap.ErrUnknownNamedKey))
	var specErr *verr.SpecError
	require.True(t, errors.As(err, &specErr))
	require.Equal(t, "broken.kbdl", specErr.SourceName)
	msg := err.Error()
	require.Contains(t, msg, "broken.kbdl: 2:14: error: unknown key")
	require.Contains(t, msg, "layer base { spac 'a'; }")
	require.Contains(t, msg, "did you mean: space")

	_, err = Compile("broken.kbdl", []byte("layout { 2k; 3k; }"), TargetFormat)
	require.True(t, errors.Is(err, keymap.ErrInconsistentMatrixWidth))
	require.Contains(t, err.Error(), "broken.kbdl: 1:14: error")

	_, err = Compile("broken.kbdl", []byte("layout { 2k "), TargetFormat)
	require.Error(t, err)
	require.True(t, errors.As(err, &specErr))
	require.Equal(t, "broken.kbdl", specErr.SourceName)
}

func TestParseTarget(t *testing.T) {
	for _, target := range targets {
		p, ok := ParseTarget(target.String())
		require.True(t, ok)
		require.Equal(t, target, p)
	}
	_, ok := ParseTarget("qmk")
	require.False(t, ok)
}

func TestWithSource(t *testing.T) {
	src := []byte("layout { 1k; }")
	specErr := &verr.SpecError{
		Cause: keymap.ErrEmptyLayout,
	}
	err := WithSource(fmt.Errorf("cannot compile: %w", specErr), "a.kbdl", src)
	require.True(t, errors.Is(err, keymap.ErrEmptyLayout))
	require.Equal(t, "a.kbdl", specErr.SourceName)
	require.Equal(t, src, specErr.Source)

	plain := errors.New("disk full")
	require.Same(t, plain, WithSource(plain, "a.kbdl", src))
}
