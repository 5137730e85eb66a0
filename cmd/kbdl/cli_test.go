package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbdl/kbdl/keymap"
	"github.com/stretchr/testify/require"
)

const twoKeys = `layout {  2k ; }
layer base { 'a'   >esc< 'b'; }
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestCompileCommand(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "board.kbdl", twoKeys)
	out := filepath.Join(dir, "layout.rs")

	_, err := run(t, "compile", src, "-o", out)
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(b), "Layers<2, 2, 1, ()>")
	require.Contains(t, string(b), "[(0, 0), (0, 1)] => [(1, 0)],")
}

func TestCompileCommand_ConfigOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "board.kbdl", twoKeys)
	writeFile(t, dir, "kbdl.toml", `
[output]
firmware = "out.rs"

[options.firmware]
custom_event = "Event"
`)

	_, err := run(t, "compile", src, "-o", "")
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dir, "out.rs"))
	require.NoError(t, err)
	require.Contains(t, string(b), "Layers<2, 2, 1, Event>")
}

func TestCompileCommand_Error(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "board.kbdl", "layout { 2k; }\nlayer base { 'a' spac; }\n")

	_, err := run(t, "compile", src, "-o", filepath.Join(dir, "layout.rs"))
	require.Error(t, err)
	require.True(t, errors.Is(err, keymap.ErrUnknownNamedKey))
	require.Contains(t, err.Error(), "board.kbdl: 2:18: error: unknown key")
	require.Contains(t, err.Error(), "did you mean: space")
}

func TestFmtCommand_Write(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "board.kbdl", twoKeys)

	_, err := run(t, "fmt", "-w", src)
	require.NoError(t, err)
	b, err := os.ReadFile(src)
	require.NoError(t, err)
	require.Equal(t, `layout {
    2k;
}

layer base {
    'a' >esc< 'b';
}
`, string(b))

	_, err = run(t, "fmt", "-w")
	require.Error(t, err)
}

func TestShowCommand(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "board.kbdl", twoKeys)

	out, err := run(t, "show", src)
	require.NoError(t, err)
	require.Contains(t, out, "board.kbdl")
	require.Contains(t, out, "base")
	require.Contains(t, out, "(1, 0)")
}

func TestTestCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pass.txt", `Two keys
---
`+twoKeys+`--- format
layout {
    2k;
}

layer base {
    'a' >esc< 'b';
}
`)
	out, err := run(t, "test", dir)
	require.NoError(t, err)
	require.Contains(t, out, "Passed")

	writeFile(t, dir, "fail.txt", "Unknown key\n---\n"+twoKeys+"--- error\nunknown key\n")
	out, err = run(t, "test", dir)
	require.Error(t, err)
	require.True(t, strings.Contains(out, "Failed"))
}
