package firmware

import (
	"fmt"
	"strings"
)

const (
	actionPrefix  = "::keyberon::action::Action::"
	keyCodePrefix = "::keyberon::key_code::KeyCode::"
)

// Action is what the firmware does when a matrix position is pressed.
type Action interface {
	// Render returns the keyberon expression of the action.
	Render() string
	isAction()
}

type KeyCode struct {
	Code string
}

func (a *KeyCode) Render() string {
	return fmt.Sprintf("%vKeyCode(%v%v)", actionPrefix, keyCodePrefix, a.Code)
}

func (a *KeyCode) isAction() {}

// MultipleKeyCodes presses several key codes at once. Shifted characters use it.
type MultipleKeyCodes struct {
	Codes []string
}

func (a *MultipleKeyCodes) Render() string {
	codes := make([]string, 0, len(a.Codes))
	for _, c := range a.Codes {
		codes = append(codes, keyCodePrefix+c)
	}
	return fmt.Sprintf("%vMultipleKeyCodes(&[%v].as_slice())", actionPrefix, strings.Join(codes, ", "))
}

func (a *MultipleKeyCodes) isAction() {}

// LayerAction activates a layer while the key is held.
type LayerAction struct {
	Index int
}

func (a *LayerAction) Render() string {
	return fmt.Sprintf("%vLayer(%v)", actionPrefix, a.Index)
}

func (a *LayerAction) isAction() {}

type HoldTapConfig int

const (
	// PermissiveHold chooses the hold action when another key is pressed and released while held.
	PermissiveHold HoldTapConfig = iota
	// HoldOnOtherKeyPress chooses the hold action as soon as another key is pressed.
	HoldOnOtherKeyPress
)

func (c HoldTapConfig) String() string {
	switch c {
	case PermissiveHold:
		return "PermissiveHold"
	case HoldOnOtherKeyPress:
		return "HoldOnOtherKeyPress"
	}
	panic(fmt.Errorf("invalid hold-tap config: %d", int(c)))
}

type HoldTapAction struct {
	Timeout  int
	Hold     Action
	Tap      Action
	Config   HoldTapConfig
	Interval int
}

func (a *HoldTapAction) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%vHoldTap(\n", actionPrefix)
	fmt.Fprintf(&b, "    &::keyberon::action::HoldTapAction {\n")
	fmt.Fprintf(&b, "        timeout: %v,\n", a.Timeout)
	fmt.Fprintf(&b, "        hold: %v,\n", a.Hold.Render())
	fmt.Fprintf(&b, "        tap: %v,\n", a.Tap.Render())
	fmt.Fprintf(&b, "        config: ::keyberon::action::HoldTapConfig::%v,\n", a.Config)
	fmt.Fprintf(&b, "        tap_hold_interval: %v,\n", a.Interval)
	fmt.Fprintf(&b, "    })")
	return b.String()
}

func (a *HoldTapAction) isAction() {}

type NoOp struct{}

func (a *NoOp) Render() string {
	return actionPrefix + "NoOp"
}

func (a *NoOp) isAction() {}

// Custom is an action written out verbatim by a key declaration.
type Custom struct {
	Text string
}

func (a *Custom) Render() string {
	return a.Text
}

func (a *Custom) isAction() {}
