package hotkey

import (
	"fmt"
	"strconv"
	"strings"
)

// Modifier is a RegisterHotKey modifier mask
type Modifier uint32

const (
	ModNone    Modifier = 0
	ModAlt     Modifier = 0x1
	ModControl Modifier = 0x2
	ModShift   Modifier = 0x4
	ModWin     Modifier = 0x8
)

// virtual-key codes for the named keys ParseKey accepts
var namedKeys = map[string]uint32{
	"SPACE":      0x20,
	"PAGEUP":     0x21,
	"PAGEDOWN":   0x22,
	"END":        0x23,
	"HOME":       0x24,
	"INSERT":     0x2D,
	"DELETE":     0x2E,
	"PAUSE":      0x13,
	"SCROLLLOCK": 0x91,
}

const vkF1 = 0x70

// ParseKey converts a key name (F1-F24, A-Z, 0-9 or a named key such as
// "Insert") into a virtual-key code
func ParseKey(name string) (uint32, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if vk, ok := namedKeys[upper]; ok {
		return vk, nil
	}
	if len(upper) == 1 {
		c := upper[0]
		if ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			return uint32(c), nil
		}
	}
	if rest, ok := strings.CutPrefix(upper, "F"); ok {
		n, err := strconv.Atoi(rest)
		if err == nil && n >= 1 && n <= 24 {
			return vkF1 + uint32(n-1), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// ParseModifiers combines modifier names (alt, ctrl/control, shift, win)
// into a mask
func ParseModifiers(names []string) (Modifier, error) {
	var mask Modifier
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "alt":
			mask |= ModAlt
		case "ctrl", "control":
			mask |= ModControl
		case "shift":
			mask |= ModShift
		case "win", "windows", "super":
			mask |= ModWin
		case "", "none":
		default:
			return 0, fmt.Errorf("unknown modifier %q", name)
		}
	}
	return mask, nil
}

// KeyName renders key+modifiers in lower case with alt first, e.g.
// "alt+ctrl+f10". Terminal key strings use the same order.
func KeyName(key uint32, modifiers Modifier) string {
	var b strings.Builder
	if modifiers&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if modifiers&ModControl != 0 {
		b.WriteString("ctrl+")
	}
	if modifiers&ModShift != 0 {
		b.WriteString("shift+")
	}
	if modifiers&ModWin != 0 {
		b.WriteString("win+")
	}
	b.WriteString(keyBase(key))
	return b.String()
}

func keyBase(key uint32) string {
	switch {
	case key >= vkF1 && key < vkF1+24:
		return "f" + strconv.Itoa(int(key-vkF1)+1)
	case ('A' <= key && key <= 'Z') || ('0' <= key && key <= '9'):
		return strings.ToLower(string(rune(key)))
	}
	for name, vk := range namedKeys {
		if vk == key {
			return strings.ToLower(name)
		}
	}
	return fmt.Sprintf("vk%#x", key)
}
