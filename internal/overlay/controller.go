// Package overlay drives the sensor overlay: a one-second sampling loop
// that rewrites a styled line, and a hotkey that shows or hides it.
package overlay

import (
	"errors"
	"log/slog"
	"time"

	"perfoverlay/internal/hotkey"
	"perfoverlay/internal/system"
)

// TickInterval is the fixed sampling period
const TickInterval = time.Second

// Extended window style bits applied at startup
const (
	WSExTopmost     uint32 = 0x00000008
	WSExTransparent uint32 = 0x00000020
	WSExLayered     uint32 = 0x00080000
)

// Visibility is the overlay's show/hide state
type Visibility int

const (
	Visible Visibility = iota
	Hidden
)

func (v Visibility) String() string {
	if v == Hidden {
		return "hidden"
	}
	return "visible"
}

// Surface is the window the overlay draws into
type Surface interface {
	Handle() uintptr
	Clear()
	Append(span Span)
	SetVisible(visible bool)
}

// Chrome is the OS window-styling boundary
type Chrome interface {
	ExStyle(hwnd uintptr) (uint32, error)
	SetExStyle(hwnd uintptr, style uint32) error
	SetTopmost(hwnd uintptr) error
}

// Sampler produces one snapshot per call
type Sampler interface {
	Sample() system.Snapshot
}

// Sink receives every snapshot after it has been rendered. Publish must
// not block.
type Sink interface {
	Publish(snapshot system.Snapshot)
}

// MessageHandler is what a platform message loop drives. Both methods are
// called on the loop's single thread.
type MessageHandler interface {
	OnTimer()
	OnMessage(msg uint32, wParam, lParam uintptr) bool
}

// Hotkey is the toggle shortcut
type Hotkey struct {
	Key       uint32
	Modifiers hotkey.Modifier
}

// Controller owns the overlay state. It is not safe for concurrent use;
// everything runs on the message loop's thread.
type Controller struct {
	sampler   Sampler
	surface   Surface
	chrome    Chrome
	registrar *hotkey.Registrar
	sinks     []Sink
	logger    *slog.Logger

	visibility Visibility
	last       system.Snapshot
}

// NewController wires the overlay together. The initial state is Visible.
func NewController(sampler Sampler, surface Surface, chrome Chrome, registrar *hotkey.Registrar, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		sampler:    sampler,
		surface:    surface,
		chrome:     chrome,
		registrar:  registrar,
		logger:     logger,
		visibility: Visible,
	}
}

// AddSink registers a snapshot receiver
func (c *Controller) AddSink(sink Sink) {
	c.sinks = append(c.sinks, sink)
}

// Start styles the window and binds the toggle hotkey. A hotkey that
// cannot be bound is logged; the overlay keeps running without it.
func (c *Controller) Start(hk Hotkey) {
	c.configureWindow()

	err := c.registrar.Register(hk.Key, hk.Modifiers, c.Toggle)
	switch {
	case errors.Is(err, hotkey.ErrInvalidHandle):
		c.logger.Error("hotkey not registered", "error", err)
	case err != nil:
		c.logger.Warn("hotkey not registered, overlay cannot be toggled", "error", err)
	}
}

// configureWindow makes the window topmost, click-through and layered.
// The window is pinned (and shown) even when its style cannot be read.
func (c *Controller) configureWindow() {
	hwnd := c.surface.Handle()
	if style, err := c.chrome.ExStyle(hwnd); err != nil {
		c.logger.Warn("failed to read window style", "error", err)
	} else if err := c.chrome.SetExStyle(hwnd, style|WSExLayered|WSExTransparent|WSExTopmost); err != nil {
		c.logger.Warn("failed to set window style", "error", err)
	}
	if err := c.chrome.SetTopmost(hwnd); err != nil {
		c.logger.Warn("failed to pin window topmost", "error", err)
	}
}

// Tick samples the sensors and replaces the rendered line
func (c *Controller) Tick() {
	snapshot := c.sampler.Sample()
	c.last = snapshot

	c.surface.Clear()
	for _, span := range Compose(snapshot) {
		c.surface.Append(span)
	}

	for _, sink := range c.sinks {
		sink.Publish(snapshot)
	}
}

// Toggle flips between Visible and Hidden
func (c *Controller) Toggle() {
	if c.visibility == Visible {
		c.visibility = Hidden
	} else {
		c.visibility = Visible
	}
	c.surface.SetVisible(c.visibility == Visible)
	c.logger.Debug("overlay toggled", "visibility", c.visibility)
}

// Visibility returns the current state
func (c *Controller) Visibility() Visibility {
	return c.visibility
}

// Last returns the most recent snapshot
func (c *Controller) Last() system.Snapshot {
	return c.last
}

// Close releases the hotkey
func (c *Controller) Close() error {
	return c.registrar.Unregister()
}

// OnTimer implements MessageHandler
func (c *Controller) OnTimer() {
	c.Tick()
}

// OnMessage implements MessageHandler
func (c *Controller) OnMessage(msg uint32, wParam, lParam uintptr) bool {
	return c.registrar.HandleMessage(msg, wParam)
}
