package testsupport

import (
	"sync"

	"tamer/internal/procs"
)

// FakeTable is an in-memory procs.Table for tests. Priorities are tracked
// per PID, and individual operations can be scripted to fail.
type FakeTable struct {
	mu sync.Mutex

	processes  []procs.Process
	priorities map[int]int

	SnapshotErr    error
	PriorityErrs   map[int]error
	SetPriorityErr map[int]error

	SnapshotCalls int
	SetCalls      []SetCall
}

// SetCall records a single SetPriority invocation.
type SetCall struct {
	PID  int
	Nice int
}

// NewFakeTable builds a table populated with the given processes, all at
// nice 0 unless adjusted via SeedPriority.
func NewFakeTable(processes ...procs.Process) *FakeTable {
	table := &FakeTable{
		processes:      processes,
		priorities:     make(map[int]int),
		PriorityErrs:   make(map[int]error),
		SetPriorityErr: make(map[int]error),
	}
	for _, proc := range processes {
		table.priorities[proc.PID] = 0
	}
	return table
}

// SeedPriority sets the current nice value for a PID.
func (f *FakeTable) SeedPriority(pid, nice int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.priorities[pid] = nice
}

// CurrentPriority reports the tracked nice value for a PID.
func (f *FakeTable) CurrentPriority(pid int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.priorities[pid]
}

func (f *FakeTable) Snapshot() ([]procs.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SnapshotCalls++
	if f.SnapshotErr != nil {
		return nil, f.SnapshotErr
	}
	out := make([]procs.Process, len(f.processes))
	copy(out, f.processes)
	return out, nil
}

func (f *FakeTable) Priority(pid int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.PriorityErrs[pid]; err != nil {
		return 0, err
	}
	return f.priorities[pid], nil
}

func (f *FakeTable) SetPriority(pid, nice int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SetPriorityErr[pid]; err != nil {
		return err
	}
	f.SetCalls = append(f.SetCalls, SetCall{PID: pid, Nice: nice})
	f.priorities[pid] = nice
	return nil
}
