package main

import (
	"context"
	"errors"
	"log/slog"

	"perfoverlay/internal/hotkey"
	"perfoverlay/internal/overlay"
	"perfoverlay/internal/tui"
)

var errNoNativeHost = errors.New("no native overlay host")

// host bundles one platform's rendition of the overlay window
type host struct {
	name     string
	surface  overlay.Surface
	chrome   overlay.Chrome
	binder   hotkey.Binder
	notifier hotkey.Notifier
	run      func(ctx context.Context, handler overlay.MessageHandler) error
}

func newTerminalHost(logger *slog.Logger) *host {
	surface := tui.NewSurface()
	binder := tui.NewBinder()
	return &host{
		name:     "terminal",
		surface:  surface,
		chrome:   &tui.Chrome{},
		binder:   binder,
		notifier: tui.Notifier{Logger: logger},
		run: func(ctx context.Context, handler overlay.MessageHandler) error {
			return tui.Run(ctx, handler, surface, binder)
		},
	}
}
