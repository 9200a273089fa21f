package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"perfoverlay/internal/conf"
	"perfoverlay/internal/hotkey"
)

func loadTestConfig(t *testing.T) {
	t.Helper()
	saved, savedPath := conf.Conf, conf.Path
	t.Cleanup(func() { conf.Conf, conf.Path = saved, savedPath })
	conf.Conf = conf.Default()
	if err := conf.LoadConfig(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
}

func TestParseHotkeyDefault(t *testing.T) {
	loadTestConfig(t)

	hk, err := parseHotkey()
	if err != nil {
		t.Fatalf("parseHotkey: %v", err)
	}
	if hk.Key != 0x79 || hk.Modifiers != hotkey.ModNone {
		t.Errorf("hotkey = %+v, want F10 without modifiers", hk)
	}
}

func TestParseHotkeyRejectsUnknownKey(t *testing.T) {
	loadTestConfig(t)
	conf.Conf.Hotkey.Key = "F99"

	if _, err := parseHotkey(); err == nil {
		t.Error("parseHotkey accepted F99")
	}
}

func TestSelectHostTerminal(t *testing.T) {
	loadTestConfig(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h, err := selectHost(logger, true)
	if err != nil {
		t.Fatalf("selectHost: %v", err)
	}
	if h.name != "terminal" {
		t.Errorf("host = %q, want terminal", h.name)
	}
	if h.surface.Handle() == 0 {
		t.Error("terminal surface has no handle")
	}
}
