package keymap

import (
	"testing"

	"github.com/kbdl/kbdl/spec"
	"github.com/stretchr/testify/require"
)

func TestLayersMeta_ResolveRef(t *testing.T) {
	f := parse(t, `layout { 1k; } layer base { a; } layer nav { b; } layer num { c; }`)
	meta, err := Resolve(f)
	require.NoError(t, err)

	i, err := meta.Layers.ResolveRef(spec.LayerRef("num"))
	require.NoError(t, err)
	require.Equal(t, 2, i)

	_, err = meta.Layers.ResolveRef(spec.LayerRef("nva"))
	requireSpecError(t, err, ErrUnknownLayer)

	_, err = meta.Layers.ResolveRef(spec.LayerRef("navv"))
	specErr := requireSpecError(t, err, ErrUnknownLayer)
	require.Equal(t, []string{"nav"}, specErr.Suggestions)
}

func TestMetadata_KeyNames(t *testing.T) {
	f := parse(t, `layout { 1k; } key space { out firmware: "X"; } key cut { out firmware: "Y"; }`)
	meta, err := Resolve(f)
	require.NoError(t, err)

	names := meta.KeyNames(BackendFirmware)
	require.Equal(t, []string{"space", "cut", "esc", "bspace"}, names[:4])
	count := 0
	for _, n := range names {
		if n == "space" {
			count++
		}
	}
	require.Equal(t, 1, count)

	err = meta.UnknownNamedKeyError(BackendFirmware, spec.NamedKey("spac"))
	specErr := requireSpecError(t, err, ErrUnknownNamedKey)
	require.Contains(t, specErr.Suggestions, "space")

	err = UnknownCharKeyError(spec.CharKey('é'))
	specErr = requireSpecError(t, err, ErrUnknownCharKey)
	require.Equal(t, `'é'`, specErr.Detail)
}
