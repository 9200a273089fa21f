package main

import (
	"log/slog"

	"perfoverlay/internal/conf"
	"perfoverlay/internal/winx"
)

const nativeHost = true

func newNativeHost(cfg conf.Overlay, logger *slog.Logger) (*host, error) {
	window, err := winx.NewWindow(winx.Options{
		Title:    "perfoverlay",
		FontFace: cfg.FontFace,
		FontSize: cfg.FontSize,
		X:        cfg.X,
		Y:        cfg.Y,
		Width:    cfg.Width,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &host{
		name:     "window",
		surface:  window,
		chrome:   winx.Chrome{},
		binder:   winx.Binder{},
		notifier: winx.Notifier{Caption: "perfoverlay"},
		run:      window.Run,
	}, nil
}
