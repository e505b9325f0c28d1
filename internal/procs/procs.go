package procs

// Process is one entry of an enumeration snapshot. It carries no identity
// beyond the pass that produced it; PIDs may be reused between passes.
type Process struct {
	PID  int
	Name string
}

// Table is the host process table. Snapshot enumerates all live processes
// at one instant; Priority and SetPriority read and write a single
// process's nice value and fail with the OS error when the process is
// protected or already gone.
type Table interface {
	Snapshot() ([]Process, error)
	Priority(pid int) (int, error)
	SetPriority(pid, nice int) error
}
