package system

import (
	"context"
	"log/slog"
	"time"
)

// updateTimeout bounds a single hardware refresh
const updateTimeout = 500 * time.Millisecond

// Computer is the concrete Provider. Enable the subsystems to monitor,
// then call Open once; the enumerated hardware lives until Close.
type Computer struct {
	IsCPUEnabled    bool
	IsGPUEnabled    bool
	IsMemoryEnabled bool

	// SysRoot is the sysfs mount used for DRM GPU discovery ("/sys" when empty)
	SysRoot string
	Logger  *slog.Logger

	hardware []Hardware
}

// NewComputer returns a Computer with every subsystem enabled
func NewComputer(logger *slog.Logger) *Computer {
	return &Computer{
		IsCPUEnabled:    true,
		IsGPUEnabled:    true,
		IsMemoryEnabled: true,
		Logger:          logger,
	}
}

// Open enumerates the enabled subsystems. Subsystems that cannot be read
// are left out; that is not an error.
func (c *Computer) Open(ctx context.Context) {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	c.hardware = nil

	if c.IsCPUEnabled {
		if h := newCPUHardware(ctx); h != nil {
			c.add(h)
		}
	}
	if c.IsMemoryEnabled {
		if h := newMemoryHardware(ctx); h != nil {
			c.add(h)
		}
	}
	if c.IsGPUEnabled {
		if h := newNvidiaHardware(ctx, runNvidiaSMI); h != nil {
			c.add(h)
		}
		sysRoot := c.SysRoot
		if sysRoot == "" {
			sysRoot = "/sys"
		}
		for _, h := range scanDRM(sysRoot) {
			c.add(h)
		}
	}

	c.Logger.Info("hardware enumerated", "count", len(c.hardware))
}

func (c *Computer) add(h Hardware) {
	c.Logger.Debug("hardware found", "type", h.Type(), "name", h.Name())
	c.hardware = append(c.hardware, h)
}

// Hardware returns the handles found by Open
func (c *Computer) Hardware() []Hardware {
	return c.hardware
}

// Close drops the enumerated hardware
func (c *Computer) Close() {
	c.hardware = nil
}

func sensorsFrom(load, temp *float64) []Sensor {
	var out []Sensor
	if load != nil {
		out = append(out, Sensor{Type: Load, Name: "load", Value: load})
	}
	if temp != nil {
		out = append(out, Sensor{Type: Temperature, Name: "temperature", Value: temp})
	}
	return out
}
