// Package tui hosts the overlay in a terminal: bubbletea's update loop
// plays the part of the window message loop.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"perfoverlay/internal/hotkey"
	"perfoverlay/internal/overlay"
)

type tickMsg time.Time

type model struct {
	handler overlay.MessageHandler
	surface *Surface
	binder  *Binder
}

func tick() tea.Cmd {
	return tea.Tick(overlay.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.handler.OnTimer()
		return m, tick()
	case tea.KeyMsg:
		key := msg.String()
		if id, ok := m.binder.Lookup(key); ok {
			m.handler.OnMessage(hotkey.WMHotkey, uintptr(id), 0)
			return m, nil
		}
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	if out := m.surface.Render(); out != "" {
		return out + "\n"
	}
	return hiddenHint.Render("(hidden)") + "\n"
}

// Run drives handler until the user quits or ctx is cancelled
func Run(ctx context.Context, handler overlay.MessageHandler, surface *Surface, binder *Binder) error {
	program := tea.NewProgram(model{
		handler: handler,
		surface: surface,
		binder:  binder,
	}, tea.WithContext(ctx))
	_, err := program.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
