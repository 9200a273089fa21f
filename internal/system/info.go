package system

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// GetSystemInfo returns general system information. GPU names come from
// the hardware the provider enumerated.
func GetSystemInfo(ctx context.Context, provider Provider) (*SystemInfo, error) {
	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	users, err := host.UsersWithContext(ctx)
	if err != nil {
		users = nil // Continue without user info
	}

	var userHost string
	if len(users) > 0 && users[0].User != "" {
		userHost = users[0].User + "@" + hostInfo.Hostname
	} else {
		userHost = hostInfo.Hostname
	}

	cpuModel := "Unknown CPU"
	if cpuInfo, err := cpu.InfoWithContext(ctx); err == nil && len(cpuInfo) > 0 {
		cpuModel = cpuInfo[0].ModelName
	}

	var memory string
	if memStat, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		memory = ProperUnit(memStat.Total)
	}

	return &SystemInfo{
		User:   userHost,
		Host:   hostInfo.Hostname,
		OS:     fmt.Sprintf("%s %s %s", hostInfo.Platform, hostInfo.PlatformVersion, hostInfo.KernelArch),
		Kernel: fmt.Sprintf("%s %s", hostInfo.OS, hostInfo.KernelVersion),
		CPU:    cpuModel,
		Memory: memory,
		GPU:    gpuNames(provider),
	}, nil
}

func gpuNames(provider Provider) string {
	if provider == nil {
		return "No GPU"
	}
	var names []string
	for _, h := range provider.Hardware() {
		switch h.Type() {
		case GPUNvidia, GPUAMD, GPUIntel:
			names = append(names, h.Name())
		}
	}
	if len(names) == 0 {
		return "No GPU"
	}
	return strings.Join(names, ", ")
}

func properUnitHelper(bytes uint64, pow uint8, unit string) string {
	quotient := bytes >> pow
	temp := bytes & ((1 << pow) - 1)
	temp = ((temp * 10) + ((1 << pow) >> 1)) >> pow
	if temp == 10 {
		temp = 0
		quotient += 1
	}
	return strconv.FormatUint(quotient, 10) +
		"." + strconv.FormatUint(temp, 10) + " " + unit
}

// ProperUnit converts bytes to human readable format
func ProperUnit(byteNum uint64) (formatted string) {
	if byteNum >= 1<<40 { // TiB
		return properUnitHelper(byteNum, 40, "TiB")
	} else if byteNum >= 1<<30 { // GiB
		return properUnitHelper(byteNum, 30, "GiB")
	} else if byteNum >= 1<<20 { // MiB
		return properUnitHelper(byteNum, 20, "MiB")
	} else if byteNum >= 1<<10 { // KiB
		return properUnitHelper(byteNum, 10, "KiB")
	}
	return strconv.FormatUint(byteNum, 10) + " B"
}
