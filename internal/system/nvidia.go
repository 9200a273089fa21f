package system

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
)

// smiRunner executes the nvidia-smi query and returns its stdout
type smiRunner func(ctx context.Context) ([]byte, error)

func runNvidiaSMI(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "nvidia-smi",
		"--query-gpu=name,utilization.gpu,temperature.gpu",
		"--format=csv,noheader,nounits")
	return cmd.Output()
}

type nvidiaHardware struct {
	name string
	run  smiRunner
	load *float64
	temp *float64
}

// newNvidiaHardware returns nil when nvidia-smi is missing or reports no GPU
func newNvidiaHardware(ctx context.Context, run smiRunner) *nvidiaHardware {
	ctx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

	out, err := run(ctx)
	if err != nil {
		return nil
	}
	reading, ok := parseNvidiaSMI(out)
	if !ok {
		return nil
	}
	return &nvidiaHardware{name: reading.name, run: run}
}

func (h *nvidiaHardware) Type() HardwareType { return GPUNvidia }
func (h *nvidiaHardware) Name() string       { return h.name }

func (h *nvidiaHardware) Update() {
	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()

	h.load, h.temp = nil, nil
	out, err := h.run(ctx)
	if err != nil {
		return
	}
	if reading, ok := parseNvidiaSMI(out); ok {
		h.load, h.temp = reading.load, reading.temp
	}
}

func (h *nvidiaHardware) Sensors() []Sensor {
	return sensorsFrom(h.load, h.temp)
}

type smiReading struct {
	name string
	load *float64
	temp *float64
}

// parseNvidiaSMI reads the first GPU line of
// "name, utilization.gpu, temperature.gpu". Fields the driver cannot
// report ("[N/A]", "[Not Supported]") come back nil.
func parseNvidiaSMI(out []byte) (smiReading, bool) {
	line := strings.TrimSpace(string(out))
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return smiReading{}, false
	}

	parse := func(field string) *float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil
		}
		return &v
	}

	return smiReading{
		name: strings.TrimSpace(fields[0]),
		load: parse(fields[1]),
		temp: parse(fields[2]),
	}, true
}
