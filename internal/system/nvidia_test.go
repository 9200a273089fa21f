package system

import (
	"context"
	"errors"
	"testing"
)

func TestParseNvidiaSMI(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		ok       bool
		wantName string
		wantLoad *float64
		wantTemp *float64
	}{
		{
			name:     "single gpu",
			out:      "NVIDIA GeForce RTX 4070, 23, 51\n",
			ok:       true,
			wantName: "NVIDIA GeForce RTX 4070",
			wantLoad: value(23),
			wantTemp: value(51),
		},
		{
			name:     "first of several",
			out:      "NVIDIA A100, 99, 70\nNVIDIA A100, 1, 30\n",
			ok:       true,
			wantName: "NVIDIA A100",
			wantLoad: value(99),
			wantTemp: value(70),
		},
		{
			name:     "unsupported utilization",
			out:      "Quadro K620, [N/A], 40\n",
			ok:       true,
			wantName: "Quadro K620",
			wantTemp: value(40),
		},
		{
			name: "empty",
			out:  "",
		},
		{
			name: "driver error text",
			out:  "NVIDIA-SMI has failed because it couldn't communicate with the NVIDIA driver.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseNvidiaSMI([]byte(tt.out))
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.name != tt.wantName {
				t.Errorf("name = %q, want %q", got.name, tt.wantName)
			}
			if !equalReading(got.load, tt.wantLoad) {
				t.Errorf("load = %v, want %v", got.load, tt.wantLoad)
			}
			if !equalReading(got.temp, tt.wantTemp) {
				t.Errorf("temp = %v, want %v", got.temp, tt.wantTemp)
			}
		})
	}
}

func equalReading(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func TestNvidiaHardwareAbsent(t *testing.T) {
	run := func(context.Context) ([]byte, error) {
		return nil, errors.New("exec: \"nvidia-smi\": executable file not found in $PATH")
	}
	if h := newNvidiaHardware(context.Background(), run); h != nil {
		t.Errorf("newNvidiaHardware = %v, want nil", h)
	}
}

func TestNvidiaHardwareUpdate(t *testing.T) {
	out := "NVIDIA GeForce RTX 3060, 10, 40\n"
	fail := false
	run := func(context.Context) ([]byte, error) {
		if fail {
			return nil, errors.New("nvidia-smi exited with status 9")
		}
		return []byte(out), nil
	}

	h := newNvidiaHardware(context.Background(), run)
	if h == nil {
		t.Fatal("newNvidiaHardware = nil")
	}
	if h.Name() != "NVIDIA GeForce RTX 3060" {
		t.Errorf("Name() = %q", h.Name())
	}

	out = "NVIDIA GeForce RTX 3060, 64, 58\n"
	got := NewReader(fakeProvider{h}).Sample()
	if got.GPUUsage != 64 || got.GPUTemp != 58 {
		t.Errorf("GPU = %d%% %d°C, want 64%% 58°C", got.GPUUsage, got.GPUTemp)
	}

	fail = true
	got = NewReader(fakeProvider{h}).Sample()
	if got.GPUUsage != 0 || got.GPUTemp != 0 {
		t.Errorf("GPU after failed query = %d%% %d°C, want zeros", got.GPUUsage, got.GPUTemp)
	}
}
