package system

import "math"

// gpuVendors is the order in which GPU subsystems are consulted
var gpuVendors = []HardwareType{GPUNvidia, GPUAMD, GPUIntel}

// Reader turns the provider's hardware tree into Snapshots
type Reader struct {
	provider Provider
}

// NewReader returns a Reader over the given provider
func NewReader(provider Provider) *Reader {
	return &Reader{provider: provider}
}

// Sample reads all five values. Missing hardware or sensors read as 0.
func (r *Reader) Sample() Snapshot {
	pass := &samplePass{
		hardware: r.provider.Hardware(),
		updated:  make(map[Hardware]bool),
	}

	return Snapshot{
		CPUUsage: pass.read(CPU, Load),
		RAMUsage: pass.read(Memory, Load),
		GPUUsage: pass.readGPU(Load),
		CPUTemp:  pass.read(CPU, Temperature),
		GPUTemp:  pass.readGPU(Temperature),
	}
}

// samplePass refreshes each hardware at most once per Sample so that
// delta-based readings (CPU load) are not reset between metrics.
type samplePass struct {
	hardware []Hardware
	updated  map[Hardware]bool
}

func (p *samplePass) find(t HardwareType) Hardware {
	for _, h := range p.hardware {
		if h.Type() == t {
			if !p.updated[h] {
				h.Update()
				p.updated[h] = true
			}
			return h
		}
	}
	return nil
}

func (p *samplePass) read(hw HardwareType, st SensorType) int {
	h := p.find(hw)
	if h == nil {
		return 0
	}
	sensor, ok := findSensor(h, st)
	if !ok {
		return 0
	}
	return roundValue(sensor.Value)
}

func (p *samplePass) readGPU(st SensorType) int {
	for _, vendor := range gpuVendors {
		h := p.find(vendor)
		if h == nil {
			continue
		}
		if sensor, ok := findSensor(h, st); ok {
			return roundValue(sensor.Value)
		}
	}
	return 0
}

func findSensor(h Hardware, st SensorType) (Sensor, bool) {
	for _, s := range h.Sensors() {
		if s.Type == st {
			return s, true
		}
	}
	return Sensor{}, false
}

func roundValue(v *float64) int {
	if v == nil {
		return 0
	}
	return Round(*v)
}

// Round rounds to the nearest integer, halves rounding up
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}
