package keymap

import (
	verr "github.com/kbdl/kbdl/error"
	"github.com/kbdl/kbdl/source"
	"github.com/kbdl/kbdl/spec"
)

// CustomKey is the output a `key` declaration gives a key name on one backend.
type CustomKey struct {
	Name    string
	Backend Backend
	Text    string
	Span    source.Span
}

type CustomKeysMeta struct {
	keys  map[Backend]map[string]*CustomKey
	names map[Backend][]string
}

func (c *CustomKeysMeta) Lookup(b Backend, name string) (*CustomKey, bool) {
	k, ok := c.keys[b][name]
	return k, ok
}

// Names returns the names of the keys a backend has an output for, in declaration order.
func (c *CustomKeysMeta) Names(b Backend) []string {
	return c.names[b]
}

func ResolveCustomKeys(nodes []*spec.KeyDeclNode) (*CustomKeysMeta, error) {
	c := &CustomKeysMeta{
		keys:  map[Backend]map[string]*CustomKey{},
		names: map[Backend][]string{},
	}
	decls := map[string]*spec.KeyDeclNode{}
	for _, n := range nodes {
		if prev, ok := decls[n.Name]; ok {
			return nil, &verr.SpecError{
				Cause:  ErrDuplicateKey,
				Detail: n.Name,
				Span:   n.NameSpan,
				Labels: []*verr.Label{
					verr.NewLabel(prev.NameSpan, "first declared here"),
				},
			}
		}
		decls[n.Name] = n

		for _, out := range n.Outputs {
			b, err := parseBackend(out.Backend, out.BackendSpan)
			if err != nil {
				return nil, err
			}
			if c.keys[b] == nil {
				c.keys[b] = map[string]*CustomKey{}
			}
			if _, ok := c.keys[b][n.Name]; !ok {
				c.names[b] = append(c.names[b], n.Name)
			}
			c.keys[b][n.Name] = &CustomKey{
				Name:    n.Name,
				Backend: b,
				Text:    out.Text,
				Span:    out.Span,
			}
		}
	}
	return c, nil
}
