package system

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostSummary describes the machine a run executed on, for the -stats
// report.
type HostSummary struct {
	LogicalCores int
	TotalMemory  uint64
	UsedMemory   uint64
}

// Host collects CPU and memory figures. Failures degrade to zero values so
// the stats report never blocks a finished render.
func Host() HostSummary {
	var s HostSummary

	if cores, err := cpu.Counts(true); err == nil {
		s.LogicalCores = cores
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.TotalMemory = vm.Total
		s.UsedMemory = vm.Used
	}
	return s
}

func (s HostSummary) String() string {
	const gib = 1024 * 1024 * 1024
	return fmt.Sprintf("%d cores | mem %.1f/%.1f GiB",
		s.LogicalCores,
		float64(s.UsedMemory)/gib,
		float64(s.TotalMemory)/gib,
	)
}
