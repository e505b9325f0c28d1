// Package procs isolates the host process table behind a narrow interface:
// one fresh enumeration snapshot per call plus per-process priority reads
// and writes. The core packages consume the Table interface only, so they
// stay free of direct OS dependencies and run against fakes in tests.
//
// The Linux implementation walks /proc and treats the kernel task comm as
// the process image name. Note the kernel truncates comm to 15 bytes, so
// rules must name processes by their truncated comm when longer.
package procs
