//go:build !windows

package main

import (
	"log/slog"

	"perfoverlay/internal/conf"
)

// nativeHost reports whether this platform has a native overlay window
const nativeHost = false

func newNativeHost(cfg conf.Overlay, logger *slog.Logger) (*host, error) {
	return nil, errNoNativeHost
}
