package system

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Snapshot is a point-in-time view of host and process resources.
type Snapshot struct {
	LogicalCPUs   int
	TotalMemory   uint64
	UsedPercent   float64
	ProcessRSS    uint64
	ProcessCPUPct float64
}

// TakeSnapshot collects what gopsutil can read on this platform. Partial
// failures leave the corresponding fields zero.
func TakeSnapshot() (Snapshot, error) {
	var s Snapshot
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	} else {
		keep(fmt.Errorf("cpu count: %w", err))
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		s.TotalMemory = vm.Total
		s.UsedPercent = vm.UsedPercent
	} else {
		keep(fmt.Errorf("virtual memory: %w", err))
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		keep(fmt.Errorf("process: %w", err))
		return s, firstErr
	}
	if mi, err := proc.MemoryInfo(); err == nil {
		s.ProcessRSS = mi.RSS
	} else {
		keep(fmt.Errorf("process memory: %w", err))
	}
	if pct, err := proc.CPUPercent(); err == nil {
		s.ProcessCPUPct = pct
	} else {
		keep(fmt.Errorf("process cpu: %w", err))
	}
	return s, firstErr
}

func (s Snapshot) String() string {
	return fmt.Sprintf("CPUs: %d | RAM: %.1f GiB (%.0f%% used) | RSS: %.1f MiB | CPU: %.0f%%",
		s.LogicalCPUs, float64(s.TotalMemory)/(1<<30), s.UsedPercent, float64(s.ProcessRSS)/(1<<20), s.ProcessCPUPct)
}
