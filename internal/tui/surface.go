package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"perfoverlay/internal/hotkey"
	"perfoverlay/internal/overlay"
)

// terminalHandle stands in for a native window handle; a terminal is
// always realized
const terminalHandle uintptr = 1

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	valueStyle = lipgloss.NewStyle()
	hiddenHint = lipgloss.NewStyle().Faint(true)
)

// Surface is the terminal rendition of the overlay window
type Surface struct {
	spans   []overlay.Span
	visible bool
}

// NewSurface returns a visible, empty surface
func NewSurface() *Surface {
	return &Surface{visible: true}
}

func (s *Surface) Handle() uintptr { return terminalHandle }

func (s *Surface) Clear() { s.spans = s.spans[:0] }

func (s *Surface) Append(span overlay.Span) { s.spans = append(s.spans, span) }

func (s *Surface) SetVisible(visible bool) { s.visible = visible }

// Render draws the line with bold labels, or nothing while hidden
func (s *Surface) Render() string {
	if !s.visible {
		return ""
	}
	var b strings.Builder
	for _, span := range s.spans {
		if span.Bold {
			b.WriteString(labelStyle.Render(span.Text))
		} else {
			b.WriteString(valueStyle.Render(span.Text))
		}
	}
	return b.String()
}

// Chrome has nothing to restyle on a terminal; it records the requested
// style so the controller's configuration is still observable in logs
type Chrome struct {
	Logger  *slog.Logger
	exStyle uint32
}

func (c *Chrome) ExStyle(hwnd uintptr) (uint32, error) { return c.exStyle, nil }

func (c *Chrome) SetExStyle(hwnd uintptr, style uint32) error {
	c.exStyle = style
	if c.Logger != nil {
		c.Logger.Debug("terminal ignores window style", "style", style)
	}
	return nil
}

func (c *Chrome) SetTopmost(hwnd uintptr) error { return nil }

// Binder maps registered key combinations to hotkey ids. Keys only fire
// while the terminal has focus.
type Binder struct {
	keys map[string]int
}

// NewBinder returns an empty binder
func NewBinder() *Binder {
	return &Binder{keys: make(map[string]int)}
}

func (b *Binder) RegisterHotKey(hwnd uintptr, id int, modifiers hotkey.Modifier, key uint32) error {
	b.keys[hotkey.KeyName(key, modifiers)] = id
	return nil
}

func (b *Binder) UnregisterHotKey(hwnd uintptr, id int) error {
	for name, bound := range b.keys {
		if bound == id {
			delete(b.keys, name)
		}
	}
	return nil
}

// Lookup returns the id bound to a bubbletea key string such as "f10"
func (b *Binder) Lookup(key string) (int, bool) {
	id, ok := b.keys[key]
	return id, ok
}

// Notifier logs notices; a terminal has no modal dialog
type Notifier struct {
	Logger *slog.Logger
}

func (n Notifier) Notify(message string) {
	if n.Logger != nil {
		n.Logger.Error(message)
	}
}
