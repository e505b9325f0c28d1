package procs_test

import (
	"os"
	"path/filepath"
	"testing"

	"tamer/internal/procs"
)

func writeProcEntry(t *testing.T, root, pid, comm string) {
	t.Helper()
	dir := filepath.Join(root, pid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create proc entry: %v", err)
	}
	if comm == "" {
		return
	}
	if err := os.WriteFile(filepath.Join(dir, "comm"), []byte(comm+"\n"), 0o644); err != nil {
		t.Fatalf("write comm: %v", err)
	}
}

func TestSnapshotReadsNumericEntries(t *testing.T) {
	root := t.TempDir()
	writeProcEntry(t, root, "1", "init")
	writeProcEntry(t, root, "42", "ffmpeg")
	writeProcEntry(t, root, "sys", "")    // non-numeric, ignored
	writeProcEntry(t, root, "99", "")     // no comm, skipped
	if err := os.WriteFile(filepath.Join(root, "uptime"), []byte("1 1"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	table := procs.NewProcfsTable(root)
	snapshot, err := table.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if len(snapshot) != 2 {
		t.Fatalf("expected 2 processes, got %d: %+v", len(snapshot), snapshot)
	}
	byPID := make(map[int]string, len(snapshot))
	for _, proc := range snapshot {
		byPID[proc.PID] = proc.Name
	}
	if byPID[1] != "init" || byPID[42] != "ffmpeg" {
		t.Fatalf("unexpected snapshot contents: %+v", snapshot)
	}
}

func TestSnapshotMissingRoot(t *testing.T) {
	table := procs.NewProcfsTable(filepath.Join(t.TempDir(), "absent"))
	if _, err := table.Snapshot(); err == nil {
		t.Fatal("expected error for missing procfs root")
	}
}
