package procs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

const defaultProcRoot = "/proc"

type procfsTable struct {
	root string
}

// System returns the live Linux process table backed by /proc and the
// get/setpriority syscalls.
func System() Table {
	return &procfsTable{root: defaultProcRoot}
}

// NewProcfsTable returns a process table reading process entries from an
// alternate procfs root. Priority calls still target the real host; the
// root parameter exists so enumeration can be tested against a fixture
// tree.
func NewProcfsTable(root string) Table {
	return &procfsTable{root: root}
}

// Snapshot lists every live process once. Entries that disappear while the
// walk is in progress are skipped; a process without a readable comm is
// skipped as well rather than failing the whole pass.
func (t *procfsTable) Snapshot() ([]Process, error) {
	entries, err := os.ReadDir(t.root)
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}

	snapshot := make([]Process, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 {
			continue
		}
		comm, err := os.ReadFile(filepath.Join(t.root, entry.Name(), "comm"))
		if err != nil {
			continue
		}
		name := strings.TrimSpace(string(comm))
		if name == "" {
			continue
		}
		snapshot = append(snapshot, Process{PID: pid, Name: name})
	}
	return snapshot, nil
}

// Priority returns the process's nice value.
func (t *procfsTable) Priority(pid int) (int, error) {
	prio, err := unix.Getpriority(unix.PRIO_PROCESS, pid)
	if err != nil {
		return 0, fmt.Errorf("get priority of pid %d: %w", pid, err)
	}
	// The raw getpriority syscall reports 20-nice so it never returns a
	// negative value that could be mistaken for an error.
	return 20 - prio, nil
}

// SetPriority sets the process's nice value.
func (t *procfsTable) SetPriority(pid, nice int) error {
	if err := unix.Setpriority(unix.PRIO_PROCESS, pid, nice); err != nil {
		return fmt.Errorf("set priority of pid %d to %d: %w", pid, nice, err)
	}
	return nil
}
