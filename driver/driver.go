// Package driver runs a keyboard description through the whole pipeline: parsing, resolution
// and one of the backends.
package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/kbdl/kbdl/diagram"
	verr "github.com/kbdl/kbdl/error"
	"github.com/kbdl/kbdl/firmware"
	"github.com/kbdl/kbdl/format"
	"github.com/kbdl/kbdl/keymap"
	"github.com/kbdl/kbdl/spec"
)

// Target is an artifact a description compiles to.
type Target int

const (
	TargetFirmware Target = iota
	TargetDiagram
	TargetFormat
)

var targets = []Target{
	TargetFirmware,
	TargetDiagram,
	TargetFormat,
}

func (t Target) String() string {
	switch t {
	case TargetFirmware:
		return "firmware"
	case TargetDiagram:
		return "diagram"
	case TargetFormat:
		return "format"
	}
	panic(fmt.Errorf("invalid target: %d", int(t)))
}

func ParseTarget(name string) (Target, bool) {
	for _, t := range targets {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// Load parses and resolves a description. A *verr.SpecError it returns quotes the source.
func Load(name string, src []byte, opts ...keymap.ResolveOption) (*keymap.Metadata, error) {
	f, err := spec.ParseBytes(src)
	if err != nil {
		return nil, WithSource(err, name, src)
	}
	meta, err := keymap.Resolve(f, opts...)
	if err != nil {
		return nil, WithSource(err, name, src)
	}
	return meta, nil
}

// Emit writes the artifact of a target. A *verr.SpecError it returns does not quote the source.
func Emit(w io.Writer, meta *keymap.Metadata, t Target) error {
	switch t {
	case TargetFirmware:
		table, err := firmware.Build(meta)
		if err != nil {
			return err
		}
		return table.Render(w)
	case TargetDiagram:
		doc, err := diagram.Build(meta)
		if err != nil {
			return err
		}
		return doc.Render(w)
	case TargetFormat:
		return format.Format(w, meta)
	}
	panic(fmt.Errorf("invalid target: %d", int(t)))
}

// Compile loads a description and emits a target in one go.
func Compile(name string, src []byte, t Target, opts ...keymap.ResolveOption) ([]byte, error) {
	meta, err := Load(name, src, opts...)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := Emit(&b, meta, t); err != nil {
		return nil, WithSource(err, name, src)
	}
	return b.Bytes(), nil
}

// WithSource makes a *verr.SpecError in err's chain quote src. Other errors are returned as they are.
func WithSource(err error, name string, src []byte) error {
	var specErr *verr.SpecError
	if errors.As(err, &specErr) {
		specErr.WithSource(name, src)
	}
	return err
}
