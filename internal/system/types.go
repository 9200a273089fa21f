package system

// HardwareType identifies a physical subsystem exposed by a Provider
type HardwareType int

const (
	CPU HardwareType = iota
	Memory
	GPUNvidia
	GPUAMD
	GPUIntel
)

func (t HardwareType) String() string {
	switch t {
	case CPU:
		return "cpu"
	case Memory:
		return "memory"
	case GPUNvidia:
		return "gpu-nvidia"
	case GPUAMD:
		return "gpu-amd"
	case GPUIntel:
		return "gpu-intel"
	default:
		return "unknown"
	}
}

// SensorType identifies the kind of reading a Sensor carries
type SensorType int

const (
	// Load is a utilization percentage
	Load SensorType = iota
	// Temperature is in degrees Celsius
	Temperature
)

func (t SensorType) String() string {
	switch t {
	case Load:
		return "load"
	case Temperature:
		return "temperature"
	default:
		return "unknown"
	}
}

// Sensor is a typed reading attached to a Hardware. Value is nil when the
// sensor exists but has not produced a reading.
type Sensor struct {
	Type  SensorType
	Name  string
	Value *float64
}

// Hardware is a handle to one subsystem. Update refreshes the cached
// readings; Sensors returns what the last Update found.
type Hardware interface {
	Type() HardwareType
	Name() string
	Update()
	Sensors() []Sensor
}

// Provider enumerates the hardware handles of this machine
type Provider interface {
	Hardware() []Hardware
}

// Snapshot is one sample of the five overlay values
type Snapshot struct {
	CPUUsage int `json:"cpu_usage"`
	RAMUsage int `json:"ram_usage"`
	GPUUsage int `json:"gpu_usage"`
	CPUTemp  int `json:"cpu_temp"`
	GPUTemp  int `json:"gpu_temp"`
}

// SystemInfo represents general system information
type SystemInfo struct {
	User   string `json:"user"`
	Host   string `json:"host"`
	OS     string `json:"os"`
	Kernel string `json:"kernel"`
	CPU    string `json:"cpu"`
	Memory string `json:"memory"`
	GPU    string `json:"gpu"`
}
