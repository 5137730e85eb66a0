package firmware

import (
	"github.com/kbdl/kbdl/keymap"
	"github.com/kbdl/kbdl/keys"
	"github.com/kbdl/kbdl/spec"
)

const (
	defaultHoldTapTimeout  = 400
	defaultHoldTapInterval = 200
	defaultCustomEvent     = "()"
)

// Binder turns keys of a description into firmware actions.
type Binder struct {
	meta     *keymap.Metadata
	timeout  int
	interval int
}

func NewBinder(meta *keymap.Metadata) (*Binder, error) {
	timeout, err := meta.Options.Int(keymap.BackendFirmware, "hold_tap_timeout", defaultHoldTapTimeout)
	if err != nil {
		return nil, err
	}
	interval, err := meta.Options.Int(keymap.BackendFirmware, "hold_tap_interval", defaultHoldTapInterval)
	if err != nil {
		return nil, err
	}
	return &Binder{
		meta:     meta,
		timeout:  timeout,
		interval: interval,
	}, nil
}

func (b *Binder) Bind(key *spec.KeyNode) (Action, error) {
	tap, err := b.bindPlain(key.Tap)
	if err != nil {
		return nil, err
	}
	if !key.IsModTap() {
		return tap, nil
	}
	hold, err := b.bindPlain(key.Hold)
	if err != nil {
		return nil, err
	}

	config := PermissiveHold
	if key.HoldTap == spec.HoldTapOnOtherKeyPress {
		config = HoldOnOtherKeyPress
	}
	timeout := b.timeout
	if key.Timeout > 0 {
		timeout = key.Timeout
	}
	return &HoldTapAction{
		Timeout:  timeout,
		Hold:     hold,
		Tap:      tap,
		Config:   config,
		Interval: b.interval,
	}, nil
}

func (b *Binder) bindPlain(key *spec.PlainKeyNode) (Action, error) {
	switch key.Kind {
	case spec.PlainKeyLayer:
		i, err := b.meta.Layers.ResolveRef(key)
		if err != nil {
			return nil, err
		}
		return &LayerAction{
			Index: i,
		}, nil
	case spec.PlainKeyChar:
		c, ok := keys.LookupChar(key.Char)
		if !ok {
			return nil, keymap.UnknownCharKeyError(key)
		}
		if c.Shifted {
			return &MultipleKeyCodes{
				Codes: []string{"LShift", c.Code},
			}, nil
		}
		return &KeyCode{
			Code: c.Code,
		}, nil
	default:
		if c, ok := b.meta.CustomKeys.Lookup(keymap.BackendFirmware, key.Name); ok {
			return &Custom{
				Text: c.Text,
			}, nil
		}
		k, ok := keys.Lookup(key.Name)
		if !ok {
			return nil, b.meta.UnknownNamedKeyError(keymap.BackendFirmware, key)
		}
		if k.IsNoOp() {
			return &NoOp{}, nil
		}
		return &KeyCode{
			Code: k.Code,
		}, nil
	}
}
