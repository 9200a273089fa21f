package system

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// drmHardware reads an AMD or Intel GPU through its sysfs device
// directory. Intel drivers publish no busy percentage, so those cards
// carry a temperature sensor only.
type drmHardware struct {
	kind       HardwareType
	name       string
	devicePath string
	load       *float64
	temp       *float64
}

// scanDRM lists amdgpu and i915/xe cards under sysRoot/class/drm.
// NVIDIA cards are skipped; they are read through nvidia-smi.
func scanDRM(sysRoot string) []Hardware {
	drmBase := filepath.Join(sysRoot, "class", "drm")
	entries, err := os.ReadDir(drmBase)
	if err != nil {
		return nil
	}

	var out []Hardware
	for _, entry := range entries {
		if !isCardDevice(entry.Name()) {
			continue
		}
		devicePath := filepath.Join(drmBase, entry.Name(), "device")

		var kind HardwareType
		switch readDriverName(devicePath) {
		case "amdgpu":
			kind = GPUAMD
		case "i915", "xe":
			kind = GPUIntel
		default:
			continue
		}

		name := kind.String()
		if slot := readPCISlot(devicePath); slot != "" {
			name += " " + slot
		}
		out = append(out, &drmHardware{kind: kind, name: name, devicePath: devicePath})
	}
	return out
}

func (h *drmHardware) Type() HardwareType { return h.kind }
func (h *drmHardware) Name() string       { return h.name }

func (h *drmHardware) Update() {
	h.load, h.temp = nil, nil

	if h.kind == GPUAMD {
		if v, ok := readSysfsFloat(filepath.Join(h.devicePath, "gpu_busy_percent")); ok {
			h.load = &v
		}
	}
	if milli, ok := readHwmonTemp(h.devicePath); ok {
		v := milli / 1000
		h.temp = &v
	}
}

func (h *drmHardware) Sensors() []Sensor {
	return sensorsFrom(h.load, h.temp)
}

// isCardDevice matches card0, card1, ... but not connectors (card0-DP-1)
// or render nodes
func isCardDevice(name string) bool {
	suffix, ok := strings.CutPrefix(name, "card")
	if !ok || suffix == "" {
		return false
	}
	for _, c := range suffix {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func readDriverName(devicePath string) string {
	link, err := os.Readlink(filepath.Join(devicePath, "driver"))
	if err != nil {
		return ""
	}
	return filepath.Base(link)
}

func readPCISlot(devicePath string) string {
	data, err := os.ReadFile(filepath.Join(devicePath, "uevent"))
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		if slot, ok := strings.CutPrefix(line, "PCI_SLOT_NAME="); ok {
			return strings.TrimSpace(slot)
		}
	}
	return ""
}

// readHwmonTemp returns temp1_input of the first hwmon directory that has one
func readHwmonTemp(devicePath string) (float64, bool) {
	hwmonBase := filepath.Join(devicePath, "hwmon")
	entries, err := os.ReadDir(hwmonBase)
	if err != nil {
		return 0, false
	}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "hwmon") {
			continue
		}
		if v, ok := readSysfsFloat(filepath.Join(hwmonBase, entry.Name(), "temp1_input")); ok {
			return v, true
		}
	}
	return 0, false
}

func readSysfsFloat(path string) (float64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
