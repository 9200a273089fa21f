// Package hotkey binds one system-wide keyboard shortcut to a window and
// dispatches it to a callback on the window's own thread.
package hotkey

import (
	"errors"
	"fmt"
	"log/slog"
)

// WMHotkey is the message the OS posts to the bound window when the
// hotkey fires. wParam carries the registration id.
const WMHotkey = 0x0312

var (
	// ErrInvalidHandle means the window has not been realized yet
	ErrInvalidHandle = errors.New("hotkey: window handle is not valid")
	// ErrRegisterFailed means the OS refused the binding, usually because
	// another process owns the same key combination
	ErrRegisterFailed = errors.New("hotkey: registration failed")
)

// Window is the window a hotkey is bound to
type Window interface {
	Handle() uintptr
}

// Binder is the OS side of hotkey registration
type Binder interface {
	RegisterHotKey(hwnd uintptr, id int, modifiers Modifier, key uint32) error
	UnregisterHotKey(hwnd uintptr, id int) error
}

// Notifier shows a blocking notice to the user
type Notifier interface {
	Notify(message string)
}

// Registrar owns a single hotkey binding identified by id. Register and
// HandleMessage must be called from the window's thread.
type Registrar struct {
	id       int
	window   Window
	binder   Binder
	registry *Registry
	notifier Notifier
	logger   *slog.Logger

	hwnd       uintptr
	registered bool
}

// NewRegistrar creates a registrar that stores its callback in registry
// under id
func NewRegistrar(id int, window Window, binder Binder, registry *Registry, notifier Notifier, logger *slog.Logger) *Registrar {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registrar{
		id:       id,
		window:   window,
		binder:   binder,
		registry: registry,
		notifier: notifier,
		logger:   logger,
	}
}

// ID returns the registration id carried in WMHotkey's wParam
func (r *Registrar) ID() int {
	return r.id
}

// Register binds key+modifiers to the window and routes it to callback.
// A zero window handle shows a notice and aborts. Registering again
// replaces the previous binding.
func (r *Registrar) Register(key uint32, modifiers Modifier, callback func()) error {
	hwnd := r.window.Handle()
	if hwnd == 0 {
		if r.notifier != nil {
			r.notifier.Notify("Hwnd of zero is not valid.")
		}
		return ErrInvalidHandle
	}

	if r.registered {
		if err := r.Unregister(); err != nil {
			r.logger.Warn("failed to release previous hotkey", "id", r.id, "error", err)
		}
	}

	r.hwnd = hwnd
	if err := r.binder.RegisterHotKey(hwnd, r.id, modifiers, key); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRegisterFailed, KeyName(key, modifiers), err)
	}
	r.registered = true
	r.registry.Set(r.id, callback)

	r.logger.Info("hotkey registered", "id", r.id, "key", KeyName(key, modifiers))
	return nil
}

// Unregister releases the binding. It does nothing when no binding was
// ever made.
func (r *Registrar) Unregister() error {
	if r.hwnd == 0 || !r.registered {
		return nil
	}
	r.registered = false
	r.registry.Clear(r.id)
	if err := r.binder.UnregisterHotKey(r.hwnd, r.id); err != nil {
		return fmt.Errorf("failed to unregister hotkey %d: %w", r.id, err)
	}
	return nil
}

// HandleMessage dispatches a WMHotkey carrying this registrar's id and
// reports whether the message was consumed
func (r *Registrar) HandleMessage(msg uint32, wParam uintptr) bool {
	if msg != WMHotkey || int(wParam) != r.id {
		return false
	}
	return r.registry.Dispatch(r.id)
}
