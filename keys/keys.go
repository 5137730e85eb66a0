// Package keys lists the key names and characters a description can use without declaring them.
package keys

import (
	"fmt"
	"sort"
)

// Key is a conventional key known by name.
type Key struct {
	Name string
	// Code is the name of the HID key code. The no-op key has none.
	Code string
}

func (k *Key) IsNoOp() bool {
	return k.Code == ""
}

var named []*Key

var namedIndex map[string]*Key

func init() {
	named = []*Key{
		{Name: "esc", Code: "Escape"},
		{Name: "space", Code: "Space"},
		{Name: "bspace", Code: "BSpace"},
		{Name: "del", Code: "Delete"},
		{Name: "lshift", Code: "LShift"},
		{Name: "rshift", Code: "RShift"},
		{Name: "lctrl", Code: "LCtrl"},
		{Name: "rctrl", Code: "RCtrl"},
		{Name: "lalt", Code: "LAlt"},
		{Name: "ralt", Code: "RAlt"},
		{Name: "lgui", Code: "LGui"},
		{Name: "rgui", Code: "RGui"},
		{Name: "enter", Code: "Enter"},
		{Name: "tab", Code: "Tab"},
		{Name: "n"},
		{Name: "pgup", Code: "PgUp"},
		{Name: "pgdown", Code: "PgDown"},
		{Name: "volup", Code: "VolUp"},
		{Name: "voldown", Code: "VolDown"},
		{Name: "left", Code: "Left"},
		{Name: "up", Code: "Up"},
		{Name: "right", Code: "Right"},
		{Name: "down", Code: "Down"},
		{Name: "end", Code: "End"},
	}
	for n := 1; n <= 10; n++ {
		named = append(named, &Key{
			Name: fmt.Sprintf("f%v", n),
			Code: fmt.Sprintf("F%v", n),
		})
	}

	namedIndex = make(map[string]*Key, len(named))
	for _, k := range named {
		namedIndex[k.Name] = k
	}
}

func Lookup(name string) (*Key, bool) {
	k, ok := namedIndex[name]
	return k, ok
}

// Names returns every key name in registry order.
func Names() []string {
	names := make([]string, 0, len(named))
	for _, k := range named {
		names = append(names, k.Name)
	}
	return names
}

// Char is a character typed by a key code, possibly with shift held.
type Char struct {
	Char    rune
	Code    string
	Shifted bool
}

var chars = map[rune]*Char{}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		addChar(c, string(c-'a'+'A'), false)
	}
	for c := '0'; c <= '9'; c++ {
		addChar(c, "Kb"+string(c), false)
	}

	shiftedDigits := []rune(")!@#$%^&*(")
	for i, c := range shiftedDigits {
		addChar(c, fmt.Sprintf("Kb%v", i), true)
	}

	for _, p := range []struct {
		plain   rune
		shifted rune
		code    string
	}{
		{'-', '_', "Minus"},
		{'=', '+', "Equal"},
		{'[', '{', "LBracket"},
		{']', '}', "RBracket"},
		{'\\', '|', "Bslash"},
		{';', ':', "SColon"},
		{'\'', '"', "Quote"},
		{'`', '~', "Grave"},
		{',', '<', "Comma"},
		{'.', '>', "Dot"},
		{'/', '?', "Slash"},
	} {
		addChar(p.plain, p.code, false)
		addChar(p.shifted, p.code, true)
	}
}

func addChar(c rune, code string, shifted bool) {
	chars[c] = &Char{
		Char:    c,
		Code:    code,
		Shifted: shifted,
	}
}

func LookupChar(c rune) (*Char, bool) {
	ch, ok := chars[c]
	return ch, ok
}

// Chars returns every known character in code point order.
func Chars() []rune {
	cs := make([]rune, 0, len(chars))
	for c := range chars {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool {
		return cs[i] < cs[j]
	})
	return cs
}
