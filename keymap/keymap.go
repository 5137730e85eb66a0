// Package keymap resolves a parsed keyboard description into the coordinate mappings, layers, options
// and custom keys the backends read. The resolved Metadata is not modified after Resolve returns.
package keymap

import (
	"sort"

	"github.com/kbdl/kbdl/spec"
)

type Metadata struct {
	File       *spec.FileNode
	Layout     *LayoutMeta
	Layers     *LayersMeta
	Options    *OptionsMeta
	CustomKeys *CustomKeysMeta
}

type resolveConfig struct {
	defaults []*Option
}

type ResolveOption func(c *resolveConfig)

// WithDefaultOptions sets option values that apply unless the description declares its own.
func WithDefaultOptions(defaults map[Backend]map[string]string) ResolveOption {
	return func(c *resolveConfig) {
		for _, b := range Backends {
			opts := defaults[b]
			names := make([]string, 0, len(opts))
			for name := range opts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				c.defaults = append(c.defaults, &Option{
					Backend: b,
					Name:    name,
					Value:   opts[name],
				})
			}
		}
	}
}

// Resolve stops at the first error it finds.
func Resolve(f *spec.FileNode, opts ...ResolveOption) (*Metadata, error) {
	c := &resolveConfig{}
	for _, opt := range opts {
		opt(c)
	}

	options, err := ResolveOptions(f.Options, c.defaults)
	if err != nil {
		return nil, err
	}
	if f.Layout != nil {
		options.anchor = f.Layout.Span.Start()
	}
	customKeys, err := ResolveCustomKeys(f.Keys)
	if err != nil {
		return nil, err
	}
	layout, err := ResolveLayout(f.Layout)
	if err != nil {
		return nil, err
	}
	layers, err := ResolveLayers(layout, f.Layers)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		File:       f,
		Layout:     layout,
		Layers:     layers,
		Options:    options,
		CustomKeys: customKeys,
	}, nil
}
