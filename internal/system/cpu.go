package system

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/sensors"
)

// cpuTempKeys are sensor key fragments that identify a CPU package or die
// temperature, in order of preference
var cpuTempKeys = []string{"package", "tctl", "tdie", "k10temp", "coretemp", "cpu", "core", "thermalzone"}

type cpuHardware struct {
	name string
	load *float64
	temp *float64
}

func newCPUHardware(ctx context.Context) *cpuHardware {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return nil
	}
	name := "Unknown CPU"
	if len(infos) > 0 && infos[0].ModelName != "" {
		name = infos[0].ModelName
	}

	// prime the delta so the first Update reports a real percentage
	cpu.PercentWithContext(ctx, 0, false)
	return &cpuHardware{name: name}
}

func (h *cpuHardware) Type() HardwareType { return CPU }
func (h *cpuHardware) Name() string       { return h.name }

func (h *cpuHardware) Update() {
	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()

	h.load = nil
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		v := pct[0]
		h.load = &v
	}

	h.temp = nil
	// partial results come back alongside a warnings error
	temps, _ := sensors.TemperaturesWithContext(ctx)
	if v, ok := pickCPUTemperature(temps); ok {
		h.temp = &v
	}
}

func (h *cpuHardware) Sensors() []Sensor {
	return sensorsFrom(h.load, h.temp)
}

// pickCPUTemperature returns the first positive reading whose key matches
// the most preferred fragment
func pickCPUTemperature(temps []sensors.TemperatureStat) (float64, bool) {
	for _, fragment := range cpuTempKeys {
		for _, t := range temps {
			key := strings.ToLower(t.SensorKey)
			if strings.Contains(key, fragment) && t.Temperature > 0 {
				return t.Temperature, true
			}
		}
	}
	return 0, false
}
