package keymap

import (
	"fmt"
	"strconv"

	verr "github.com/kbdl/kbdl/error"
	"github.com/kbdl/kbdl/source"
	"github.com/kbdl/kbdl/spec"
	"github.com/kbdl/kbdl/suggest"
)

// Backend is a consumer of a keyboard description.
type Backend int

const (
	BackendFirmware Backend = iota
	BackendDiagram
	BackendFormatter
)

// Backends lists every backend.
var Backends = []Backend{
	BackendFirmware,
	BackendDiagram,
	BackendFormatter,
}

func (b Backend) String() string {
	switch b {
	case BackendFirmware:
		return "firmware"
	case BackendDiagram:
		return "diagram"
	case BackendFormatter:
		return "formatter"
	}
	panic(fmt.Errorf("invalid backend: %d", int(b)))
}

func ParseBackend(name string) (Backend, bool) {
	for _, b := range Backends {
		if b.String() == name {
			return b, true
		}
	}
	return 0, false
}

// BackendNames returns the names of every backend.
func BackendNames() []string {
	names := make([]string, 0, len(Backends))
	for _, b := range Backends {
		names = append(names, b.String())
	}
	return names
}

func parseBackend(name string, span source.Span) (Backend, error) {
	b, ok := ParseBackend(name)
	if !ok {
		return 0, &verr.SpecError{
			Cause:       ErrUnknownBackend,
			Detail:      name,
			Span:        span,
			Suggestions: suggest.DidYouMean(name, BackendNames()),
		}
	}
	return b, nil
}

type Option struct {
	Backend Backend
	Name    string
	Value   string
	// Span is the span of the value. It is zero for a default.
	Span source.Span
}

type optionKey struct {
	backend Backend
	name    string
}

// OptionsMeta maps a backend and an option name to the value of the option.
type OptionsMeta struct {
	entries map[optionKey]*Option
	order   []optionKey
	blocks  map[Backend]source.Span
	// anchor locates errors about a backend that has no options block.
	anchor source.Span
}

func NewOptionsMeta() *OptionsMeta {
	return &OptionsMeta{
		entries: map[optionKey]*Option{},
		blocks:  map[Backend]source.Span{},
	}
}

// Set records an option. A later value replaces an earlier one but keeps its place in the order.
func (o *OptionsMeta) Set(b Backend, name, value string, span source.Span) {
	k := optionKey{backend: b, name: name}
	if _, ok := o.entries[k]; !ok {
		o.order = append(o.order, k)
	}
	o.entries[k] = &Option{
		Backend: b,
		Name:    name,
		Value:   value,
		Span:    span,
	}
}

func (o *OptionsMeta) Lookup(b Backend, name string) (*Option, bool) {
	opt, ok := o.entries[optionKey{backend: b, name: name}]
	return opt, ok
}

// Get returns the value of an option, or def when the option is not set.
func (o *OptionsMeta) Get(b Backend, name string, def string) string {
	if opt, ok := o.Lookup(b, name); ok {
		return opt.Value
	}
	return def
}

// Int returns the value of a numeric option, or def when the option is not set.
func (o *OptionsMeta) Int(b Backend, name string, def int) (int, error) {
	opt, ok := o.Lookup(b, name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(opt.Value)
	if err != nil || n < 0 {
		return 0, &verr.SpecError{
			Cause:  ErrInvalidOptionValue,
			Detail: fmt.Sprintf("%v of the %v backend must be a non-negative integer, found %q", name, b, opt.Value),
			Span:   opt.Span,
		}
	}
	return n, nil
}

// Require returns an option the backend cannot work without.
func (o *OptionsMeta) Require(b Backend, name string) (*Option, error) {
	if opt, ok := o.Lookup(b, name); ok {
		return opt, nil
	}
	span, ok := o.blocks[b]
	if !ok {
		span = o.anchor
	}
	return nil, &verr.SpecError{
		Cause:  ErrOptionRequired,
		Detail: fmt.Sprintf("%v is required by the %v backend", name, b),
		Span:   span,
		Help:   fmt.Sprintf("declare it in `options %v { %v: \"...\"; }`", b, name),
	}
}

// Options returns the options of a backend in the order they were first set.
func (o *OptionsMeta) Options(b Backend) []*Option {
	var opts []*Option
	for _, k := range o.order {
		if k.backend == b {
			opts = append(opts, o.entries[k])
		}
	}
	return opts
}

// ResolveOptions builds the options table on top of defaults. Declarations win over defaults,
// and the last declaration of an option wins over the earlier ones.
func ResolveOptions(nodes []*spec.OptionsNode, defaults []*Option) (*OptionsMeta, error) {
	o := NewOptionsMeta()
	for _, d := range defaults {
		o.Set(d.Backend, d.Name, d.Value, d.Span)
	}
	for _, n := range nodes {
		b, err := parseBackend(n.Backend, n.BackendSpan)
		if err != nil {
			return nil, err
		}
		if _, ok := o.blocks[b]; !ok {
			o.blocks[b] = n.Span
		}
		for _, opt := range n.Options {
			o.Set(b, opt.Name, opt.Value, opt.ValueSpan)
		}
	}
	return o, nil
}
