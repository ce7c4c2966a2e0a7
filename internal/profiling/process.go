package profiling

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats is a sample of the viewer's own resource use.
type ProcessStats struct {
	RSSBytes   uint64
	CPUPercent float64
	Threads    int32
}

// ProcessSampler reads resource use of the current process.
type ProcessSampler struct {
	proc *process.Process
}

func NewProcessSampler() (*ProcessSampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("open own process: %w", err)
	}
	return &ProcessSampler{proc: proc}, nil
}

// Sample returns the current stats. CPUPercent is averaged since the
// process started.
func (s *ProcessSampler) Sample() (ProcessStats, error) {
	mem, err := s.proc.MemoryInfo()
	if err != nil {
		return ProcessStats{}, fmt.Errorf("memory info: %w", err)
	}
	st := ProcessStats{RSSBytes: mem.RSS}
	if cpu, err := s.proc.CPUPercent(); err == nil {
		st.CPUPercent = cpu
	}
	if n, err := s.proc.NumThreads(); err == nil {
		st.Threads = n
	}
	return st, nil
}
