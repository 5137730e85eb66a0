package keymap

import (
	"fmt"

	verr "github.com/kbdl/kbdl/error"
	"github.com/kbdl/kbdl/keys"
	"github.com/kbdl/kbdl/spec"
	"github.com/kbdl/kbdl/suggest"
)

// ResolveRef returns the index of the layer a layer reference names.
func (l *LayersMeta) ResolveRef(ref *spec.PlainKeyNode) (int, error) {
	if i, ok := l.Index[ref.Name]; ok {
		return i, nil
	}
	return 0, &verr.SpecError{
		Cause:       ErrUnknownLayer,
		Detail:      ref.Name,
		Span:        ref.Span,
		Suggestions: suggest.DidYouMean(ref.Name, l.Names),
	}
}

// KeyNames returns the key names a backend understands: its custom keys first, then the
// conventional ones a custom key does not shadow.
func (m *Metadata) KeyNames(b Backend) []string {
	custom := m.CustomKeys.Names(b)
	names := make([]string, 0, len(custom)+len(keys.Names()))
	names = append(names, custom...)
	for _, n := range keys.Names() {
		if _, ok := m.CustomKeys.Lookup(b, n); ok {
			continue
		}
		names = append(names, n)
	}
	return names
}

// UnknownNamedKeyError reports a key name that is neither a custom key nor a conventional one.
func (m *Metadata) UnknownNamedKeyError(b Backend, key *spec.PlainKeyNode) error {
	return &verr.SpecError{
		Cause:       ErrUnknownNamedKey,
		Detail:      fmt.Sprintf("%v has no meaning for the %v backend", key.Name, b),
		Span:        key.Span,
		Help:        fmt.Sprintf("declare it with `key %v { out %v: \"...\"; }`", key.Name, b),
		Suggestions: suggest.DidYouMean(key.Name, m.KeyNames(b)),
	}
}

func UnknownCharKeyError(key *spec.PlainKeyNode) error {
	return &verr.SpecError{
		Cause:  ErrUnknownCharKey,
		Detail: fmt.Sprintf("%q", key.Char),
		Span:   key.Span,
	}
}
