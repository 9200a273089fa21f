package system

import (
	"context"

	"github.com/shirou/gopsutil/v4/mem"
)

type memoryHardware struct {
	total uint64
	load  *float64
}

func newMemoryHardware(ctx context.Context) *memoryHardware {
	memStat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil
	}
	return &memoryHardware{total: memStat.Total}
}

func (h *memoryHardware) Type() HardwareType { return Memory }

func (h *memoryHardware) Name() string {
	return "Memory " + ProperUnit(h.total)
}

func (h *memoryHardware) Update() {
	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()

	h.load = nil
	memStat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return
	}
	h.total = memStat.Total
	v := memStat.UsedPercent
	h.load = &v
}

func (h *memoryHardware) Sensors() []Sensor {
	return sensorsFrom(h.load, nil)
}
